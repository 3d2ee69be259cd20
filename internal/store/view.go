package store

import (
	"slices"
	"sync"

	"github.com/example/pocket-ledger/pkg/transaction"
)

// View is a filtered, sorted projection of a TransactionStore. It is
// recomputed lazily after the store commits a change or the criteria change.
type View struct {
	store       *TransactionStore
	unsubscribe func()

	mu       sync.Mutex
	criteria transaction.FilterCriteria
	cache    []transaction.Transaction
	dirty    bool
}

// NewView subscribes a projection to s with the given initial criteria
func NewView(s *TransactionStore, criteria transaction.FilterCriteria) *View {
	v := &View{
		store:    s,
		criteria: copyCriteria(criteria),
		dirty:    true,
	}
	v.unsubscribe = s.Subscribe(v.invalidate)
	return v
}

func (v *View) invalidate() {
	v.mu.Lock()
	v.dirty = true
	v.mu.Unlock()
}

// SetFilterCriteria replaces the criteria
func (v *View) SetFilterCriteria(c transaction.FilterCriteria) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = copyCriteria(c)
	v.dirty = true
}

// FilterCriteria returns the current criteria
func (v *View) FilterCriteria() transaction.FilterCriteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return copyCriteria(v.criteria)
}

// FilteredTransactions returns the projection of the latest committed collection
func (v *View) FilteredTransactions() []transaction.Transaction {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.dirty {
		v.dirty = false
		v.cache = transaction.Filter(v.store.Transactions(), v.criteria)
	}
	return transaction.CloneAll(v.cache)
}

// ActiveFilterCount reports how many filter dimensions are not at their default
func (v *View) ActiveFilterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria.ActiveFilterCount()
}

// Close detaches the view from the store
func (v *View) Close() {
	v.unsubscribe()
}

func copyCriteria(c transaction.FilterCriteria) transaction.FilterCriteria {
	out := c
	if c.TypeFilter != nil {
		t := *c.TypeFilter
		out.TypeFilter = &t
	}
	out.SelectedCategories = slices.Clone(c.SelectedCategories)
	return out
}
