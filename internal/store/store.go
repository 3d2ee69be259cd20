// Package store owns the in-memory transaction collection and mediates every
// mutation against the persistence port.
//
// Mutations are validated synchronously, then run one at a time on a
// mutation queue. Each queued mutation works on a copy of the committed
// collection, persists the copy and only then swaps it in, so readers never
// see a change that has not been durably written.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/pocket-ledger/internal/logging"
	"github.com/example/pocket-ledger/internal/queue"
	"github.com/example/pocket-ledger/internal/storage"
	"github.com/example/pocket-ledger/pkg/transaction"
)

// ErrNotReady is returned by mutations issued before a successful Init
var ErrNotReady = errors.New("transaction store not initialized")

// Option configures a TransactionStore
type Option func(*TransactionStore)

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *TransactionStore) { s.log = log }
}

// WithClock replaces time.Now for audit timestamps
func WithClock(now func() time.Time) Option {
	return func(s *TransactionStore) { s.now = now }
}

// WithIDGenerator replaces the uuid id generator
func WithIDGenerator(gen func() string) Option {
	return func(s *TransactionStore) { s.newID = gen }
}

// TransactionStore is the CRUD controller for a user's transactions
type TransactionStore struct {
	port  storage.Port
	queue *queue.Queue
	log   logrus.FieldLogger
	now   func() time.Time
	newID func() string

	mu          sync.RWMutex
	txs         []transaction.Transaction
	accounts    []transaction.Account
	categories  []transaction.Category
	catalog     *transaction.Catalog
	loading     bool
	initialized bool
	err         error

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a store that has not loaded anything yet; call Init before mutating
func New(port storage.Port, opts ...Option) *TransactionStore {
	s := &TransactionStore{
		port:  port,
		log:   logging.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
		txs:   []transaction.Transaction{},
		subs:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queue = queue.New(s.log)
	return s
}

// Open creates a store and loads it
func Open(ctx context.Context, port storage.Port, opts ...Option) (*TransactionStore, error) {
	s := New(port, opts...)
	if err := s.Init(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Init loads transactions, accounts and categories. On failure the collection
// stays empty and Err reports the cause; Init may be retried. Once it has
// succeeded further calls do nothing.
func (s *TransactionStore) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	s.notify()

	ran := false
	err := s.queue.Do(func() error {
		ran = true
		if s.isInitialized() {
			return nil
		}
		return s.load(ctx)
	})
	if !ran {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.notify()
	}
	return err
}

func (s *TransactionStore) load(ctx context.Context) error {
	txs, err := s.port.LoadTransactions(ctx)
	var accounts []transaction.Account
	if err == nil {
		accounts, err = s.port.LoadAccounts(ctx)
	}
	var categories []transaction.Category
	if err == nil {
		categories, err = s.port.LoadCategories(ctx)
	}

	s.mu.Lock()
	s.loading = false
	if err != nil {
		err = transaction.NewStorageError("init", err)
		s.txs = []transaction.Transaction{}
		s.err = err
		s.mu.Unlock()
		s.log.WithError(err).Error("failed to load transactions")
		s.notify()
		return err
	}
	if txs == nil {
		txs = []transaction.Transaction{}
	}
	s.txs = txs
	s.accounts = accounts
	s.categories = categories
	s.catalog = transaction.NewCatalog(accounts, categories)
	s.initialized = true
	s.err = nil
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"transactions": len(txs),
		"accounts":     len(accounts),
		"categories":   len(categories),
	}).Debug("transaction store loaded")
	s.notify()
	return nil
}

// Close stops the mutation queue after pending work finishes and drops subscribers
func (s *TransactionStore) Close() {
	s.queue.Close()
	s.subMu.Lock()
	clear(s.subs)
	s.subMu.Unlock()
}

// Transactions returns a copy of the committed collection in insertion order
func (s *TransactionStore) Transactions() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transaction.CloneAll(s.txs)
}

// Accounts returns the account catalog loaded at Init
func (s *TransactionStore) Accounts() []transaction.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts)
}

// Categories returns the category catalog loaded at Init
func (s *TransactionStore) Categories() []transaction.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// IsLoading reports whether the initial load is in progress
func (s *TransactionStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last storage failure, cleared by the next successful mutation
func (s *TransactionStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Get looks up a committed transaction without touching the queue
func (s *TransactionStore) Get(id string) (transaction.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := transaction.Index(s.txs, id)
	if i < 0 {
		return transaction.Transaction{}, false
	}
	return s.txs[i].Clone(), true
}

// Create validates in, assigns a fresh id and audit timestamps, persists the
// collection with the new record appended and returns the stored record.
func (s *TransactionStore) Create(ctx context.Context, in transaction.CreateInput) (transaction.Transaction, error) {
	candidate := in.Build()
	if err := s.validate("create", candidate); err != nil {
		return transaction.Transaction{}, err
	}

	return queue.Enqueue(s.queue, func() (transaction.Transaction, error) {
		if !s.isInitialized() {
			return transaction.Transaction{}, ErrNotReady
		}
		snapshot := s.snapshot()

		tx := candidate
		tx.ID = s.uniqueID(snapshot)
		now := s.now()
		tx.CreatedAt, tx.UpdatedAt = now, now
		snapshot = append(snapshot, tx)

		if err := s.port.SaveTransactions(ctx, snapshot); err != nil {
			return transaction.Transaction{}, s.fail("create", tx.ID, err)
		}
		s.commit("create", tx.ID, snapshot)
		return tx.Clone(), nil
	})
}

// Update merges the patch into the existing record, validates the merged
// result and persists it. Unknown ids fail with a NotFoundError.
func (s *TransactionStore) Update(ctx context.Context, in transaction.UpdateInput) (transaction.Transaction, error) {
	existing, ok := s.Get(in.ID)
	if !ok {
		return transaction.Transaction{}, &transaction.NotFoundError{ID: in.ID}
	}
	if err := s.validate("update", in.Apply(existing)); err != nil {
		return transaction.Transaction{}, err
	}

	return queue.Enqueue(s.queue, func() (transaction.Transaction, error) {
		snapshot := s.snapshot()
		i := transaction.Index(snapshot, in.ID)
		if i < 0 {
			return transaction.Transaction{}, &transaction.NotFoundError{ID: in.ID}
		}

		// Earlier queued updates may have changed the record since the pre-check.
		prev := snapshot[i]
		merged := in.Apply(prev)
		if err := s.validate("update", merged); err != nil {
			return transaction.Transaction{}, err
		}
		merged.UpdatedAt = s.stamp(prev.UpdatedAt)
		snapshot[i] = merged

		if err := s.port.SaveTransactions(ctx, snapshot); err != nil {
			return transaction.Transaction{}, s.fail("update", in.ID, err)
		}
		s.commit("update", in.ID, snapshot)
		return merged.Clone(), nil
	})
}

// Delete removes the record with id and persists the collection. Deleting an
// unknown id is not an error; the unchanged collection is still saved.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	return s.queue.Do(func() error {
		if !s.isInitialized() {
			return ErrNotReady
		}
		snapshot := s.snapshot()
		if i := transaction.Index(snapshot, id); i >= 0 {
			snapshot = slices.Delete(snapshot, i, i+1)
		}

		if err := s.port.SaveTransactions(ctx, snapshot); err != nil {
			return s.fail("delete", id, err)
		}
		s.commit("delete", id, snapshot)
		return nil
	})
}

// Subscribe registers fn to run after every state change. The returned func
// removes the subscription. fn must not call back into mutations.
func (s *TransactionStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *TransactionStore) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *TransactionStore) validate(op string, t transaction.Transaction) error {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	err := transaction.AsError(catalog.Validate(t))
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": op, "id": t.ID}).WithError(err).Warn("rejected invalid transaction")
	}
	return err
}

func (s *TransactionStore) isInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func (s *TransactionStore) snapshot() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transaction.CloneAll(s.txs)
}

func (s *TransactionStore) uniqueID(txs []transaction.Transaction) string {
	for {
		id := s.newID()
		if id != "" && transaction.Index(txs, id) < 0 {
			return id
		}
	}
}

// stamp returns the current time, nudged forward when the clock has not moved
// past prev so that updatedAt strictly increases.
func (s *TransactionStore) stamp(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (s *TransactionStore) commit(op, id string, snapshot []transaction.Transaction) {
	s.mu.Lock()
	s.txs = snapshot
	s.err = nil
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"op": op, "id": id, "count": len(snapshot)}).Debug("mutation committed")
	s.notify()
}

func (s *TransactionStore) fail(op, id string, err error) error {
	err = transaction.NewStorageError(op, err)
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"op": op, "id": id}).WithError(err).Error("mutation failed")
	s.notify()
	return err
}
