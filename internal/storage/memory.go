package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps documents in process memory. Failures can be injected
// per key to exercise error paths.
type MemoryBackend struct {
	mu       sync.Mutex
	docs     map[string][]byte
	failGet  map[string]error
	failPut  map[string]error
	putCount map[string]int
}

// NewMemoryBackend creates an empty backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		docs:     make(map[string][]byte),
		failGet:  make(map[string]error),
		failPut:  make(map[string]error),
		putCount: make(map[string]int),
	}
}

// NewMemory returns a Store backed by process memory
func NewMemory() *Store {
	return New(NewMemoryBackend())
}

// Get returns a copy of the value for key or the injected failure
func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failGet[key]; err != nil {
		return nil, err
	}
	data, ok := b.docs[key]
	if !ok {
		return nil, ErrMissing
	}
	return slices.Clone(data), nil
}

// Put stores a copy of data unless a failure is injected for key
func (b *MemoryBackend) Put(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.putCount[key]++
	if err := b.failPut[key]; err != nil {
		return err
	}
	b.docs[key] = slices.Clone(data)
	return nil
}

// FailGet makes every Get of key return err until cleared with a nil err
func (b *MemoryBackend) FailGet(key string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failGet[key] = err
}

// FailPut makes every Put of key return err until cleared with a nil err
func (b *MemoryBackend) FailPut(key string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPut[key] = err
}

// Puts reports how many writes of key were attempted
func (b *MemoryBackend) Puts(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.putCount[key]
}
