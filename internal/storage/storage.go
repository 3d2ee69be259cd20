// Package storage implements the persistence port: whole-collection load and
// save of transactions, accounts and categories over a key-value backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/example/pocket-ledger/pkg/transaction"
)

//go:generate mockgen -destination=mocks/mock_port.go -package=mocks github.com/example/pocket-ledger/internal/storage Port

// Port is the asynchronous boundary to durable storage. Each Save replaces
// the whole collection. A collection that was never saved loads as empty.
type Port interface {
	LoadTransactions(ctx context.Context) ([]transaction.Transaction, error)
	SaveTransactions(ctx context.Context, txs []transaction.Transaction) error
	LoadAccounts(ctx context.Context) ([]transaction.Account, error)
	SaveAccounts(ctx context.Context, accounts []transaction.Account) error
	LoadCategories(ctx context.Context) ([]transaction.Category, error)
	SaveCategories(ctx context.Context, categories []transaction.Category) error
}

// ErrMissing is returned by a Backend for a key that holds no document
var ErrMissing = errors.New("document missing")

// Backend stores opaque documents by key
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Backend keys of the three collections
const (
	KeyTransactions = "transactions"
	KeyAccounts     = "accounts"
	KeyCategories   = "categories"
)

const documentVersion = 1

type document[T any] struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
	Items     []T       `json:"items"`
}

// Store implements Port over a Backend
type Store struct {
	backend Backend
	now     func() time.Time
}

// New creates a Store on top of backend
func New(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// LoadTransactions reads the transaction collection, empty when none was saved
func (s *Store) LoadTransactions(ctx context.Context) ([]transaction.Transaction, error) {
	return load[transaction.Transaction](ctx, s.backend, KeyTransactions)
}

// SaveTransactions replaces the stored transaction collection
func (s *Store) SaveTransactions(ctx context.Context, txs []transaction.Transaction) error {
	return save(ctx, s.backend, KeyTransactions, txs, s.now())
}

// LoadAccounts reads the account catalog
func (s *Store) LoadAccounts(ctx context.Context) ([]transaction.Account, error) {
	return load[transaction.Account](ctx, s.backend, KeyAccounts)
}

// SaveAccounts replaces the stored account catalog
func (s *Store) SaveAccounts(ctx context.Context, accounts []transaction.Account) error {
	return save(ctx, s.backend, KeyAccounts, accounts, s.now())
}

// LoadCategories reads the category catalog
func (s *Store) LoadCategories(ctx context.Context) ([]transaction.Category, error) {
	return load[transaction.Category](ctx, s.backend, KeyCategories)
}

// SaveCategories replaces the stored category catalog
func (s *Store) SaveCategories(ctx context.Context, categories []transaction.Category) error {
	return save(ctx, s.backend, KeyCategories, categories, s.now())
}

func load[T any](ctx context.Context, b Backend, key string) ([]T, error) {
	op := "load " + key
	data, err := b.Get(ctx, key)
	if errors.Is(err, ErrMissing) {
		return []T{}, nil
	}
	if err != nil {
		return nil, transaction.NewStorageError(op, err)
	}

	var doc document[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, transaction.NewStorageError(op, fmt.Errorf("corrupt document: %w", err))
	}
	if doc.Version != documentVersion {
		return nil, transaction.NewStorageError(op, fmt.Errorf("unsupported document version %d", doc.Version))
	}
	if doc.Items == nil {
		doc.Items = []T{}
	}
	return doc.Items, nil
}

func save[T any](ctx context.Context, b Backend, key string, items []T, now time.Time) error {
	op := "save " + key
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(document[T]{Version: documentVersion, UpdatedAt: now.UTC(), Items: items})
	if err != nil {
		return transaction.NewStorageError(op, err)
	}
	if err := b.Put(ctx, key, data); err != nil {
		return transaction.NewStorageError(op, err)
	}
	return nil
}
