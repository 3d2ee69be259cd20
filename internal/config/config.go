package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/pocket-ledger/internal/logging"
	"github.com/example/pocket-ledger/pkg/transaction"
)

// Config represents the application configuration
type Config struct {
	DefaultCategory string         `mapstructure:"default_category"`
	Storage         StorageConfig  `mapstructure:"storage"`
	Log             logging.Config `mapstructure:"log"`
	Filter          FilterConfig   `mapstructure:"filter"`
	Categories      []CategoryRule `mapstructure:"categories"`
	Accounts        []CatalogEntry `mapstructure:"accounts"`
	CategoryList    []CatalogEntry `mapstructure:"category_list"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Backend       string `mapstructure:"backend"` // "file", "redis" or "memory"
	Dir           string `mapstructure:"dir"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

// FilterConfig holds list defaults
type FilterConfig struct {
	SortBy string `mapstructure:"sort_by"`
}

// CategoryRule defines a transaction categorization rule
type CategoryRule struct {
	Pattern  string `mapstructure:"pattern"`
	Category string `mapstructure:"category"`
}

// CatalogEntry seeds an account or category
type CatalogEntry struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

const envPrefix = "POCKET_LEDGER"

// LoadConfig loads configuration from file and environment variables.
// An empty path loads defaults and environment only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_category", "uncategorized")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.key_prefix", "pocket-ledger")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("filter.sort_by", string(transaction.SortNewest))
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if _, err := transaction.ParseSortBy(c.Filter.SortBy); err != nil {
		return fmt.Errorf("invalid filter.sort_by: %w", err)
	}
	if len(c.CategoryList) > 0 && !c.hasCategory(c.DefaultCategory) {
		return fmt.Errorf("default_category %q is not in category_list", c.DefaultCategory)
	}
	return nil
}

func (c *Config) hasCategory(id string) bool {
	for _, cat := range c.CategoryList {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// Rules converts the categorization rules for transaction.NewCategorizer
func (c *Config) Rules() []transaction.Rule {
	out := make([]transaction.Rule, len(c.Categories))
	for i, r := range c.Categories {
		out[i] = transaction.Rule{Pattern: r.Pattern, Category: r.Category}
	}
	return out
}

// SeedAccounts returns the configured account catalog
func (c *Config) SeedAccounts() []transaction.Account {
	out := make([]transaction.Account, len(c.Accounts))
	for i, a := range c.Accounts {
		out[i] = transaction.Account{ID: a.ID, Name: a.Name}
	}
	return out
}

// SeedCategories returns the configured category catalog
func (c *Config) SeedCategories() []transaction.Category {
	out := make([]transaction.Category, len(c.CategoryList))
	for i, cat := range c.CategoryList {
		out[i] = transaction.Category{ID: cat.ID, Name: cat.Name}
	}
	return out
}
