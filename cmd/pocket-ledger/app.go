package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/example/pocket-ledger/internal/config"
	"github.com/example/pocket-ledger/internal/logging"
	"github.com/example/pocket-ledger/internal/storage"
	"github.com/example/pocket-ledger/internal/store"
)

type app struct {
	cfg     *config.Config
	log     *logging.Logger
	port    storage.Port
	store   *store.TransactionStore
	closers []func() error
}

func openPort(ctx context.Context, cfg *config.Config) (storage.Port, func() error, error) {
	switch cfg.Storage.Backend {
	case "redis":
		port, client, err := storage.NewRedis(ctx, storage.RedisConfig{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
			Prefix:   cfg.Storage.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return port, client.Close, nil
	case "memory":
		return storage.NewMemory(), nil, nil
	default:
		port, err := storage.NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return port, nil, nil
	}
}

// openApp wires config, logging and storage. The transaction store is only
// opened when withStore is set.
func openApp(ctx context.Context, configPath string, withStore bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, closers: []func() error{log.Close}}

	port, closePort, err := openPort(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.port = port
	if closePort != nil {
		a.closers = append(a.closers, closePort)
	}

	if withStore {
		s, err := store.Open(ctx, port, store.WithLogger(log))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.store = s
	}
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Warn("close failed")
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseTimestamp accepts RFC 3339 or a plain YYYY-MM-DD date
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: use RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}
