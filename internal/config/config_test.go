package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pocket-ledger/pkg/transaction"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	configPath := writeConfig(t, `
default_category = "misc"

[storage]
backend = "redis"
redis_addr = "cache.local:6380"
redis_db = 2
key_prefix = "ledger-test"

[log]
level = "debug"
format = "json"

[filter]
sort_by = "highest"

[[categories]]
pattern = "WOOLWORTHS.*"
category = "groceries"

[[accounts]]
id = "checking"
name = "Everyday"

[[category_list]]
id = "groceries"
name = "Groceries"

[[category_list]]
id = "misc"
name = "Miscellaneous"
`)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "misc", config.DefaultCategory)

	assert.Equal(t, "redis", config.Storage.Backend)
	assert.Equal(t, "cache.local:6380", config.Storage.RedisAddr)
	assert.Equal(t, 2, config.Storage.RedisDB)
	assert.Equal(t, "ledger-test", config.Storage.KeyPrefix)
	assert.Equal(t, "data", config.Storage.Dir)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "highest", config.Filter.SortBy)

	assert.Equal(t, []transaction.Rule{{Pattern: "WOOLWORTHS.*", Category: "groceries"}}, config.Rules())
	assert.Equal(t, []transaction.Account{{ID: "checking", Name: "Everyday"}}, config.SeedAccounts())
	assert.Equal(t, []transaction.Category{
		{ID: "groceries", Name: "Groceries"},
		{ID: "misc", Name: "Miscellaneous"},
	}, config.SeedCategories())
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "uncategorized", config.DefaultCategory)
	assert.Equal(t, "file", config.Storage.Backend)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "newest", config.Filter.SortBy)
	assert.Empty(t, config.Rules())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("POCKET_LEDGER_STORAGE_BACKEND", "memory")
	t.Setenv("POCKET_LEDGER_LOG_LEVEL", "warn")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "memory", config.Storage.Backend)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("nonexistent.toml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "[storage]\nbackend = \"sqlite\"\n"))
	assert.Nil(t, config)
	assert.ErrorContains(t, err, "invalid storage backend")

	config, err = LoadConfig(writeConfig(t, "[filter]\nsort_by = \"random\"\n"))
	assert.Nil(t, config)
	assert.ErrorContains(t, err, "invalid filter.sort_by")

	config, err = LoadConfig(writeConfig(t, "[[category_list]]\nid = \"food\"\nname = \"Food\"\n"))
	assert.Nil(t, config)
	assert.ErrorContains(t, err, `default_category "uncategorized" is not in category_list`)
}
