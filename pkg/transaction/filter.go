package transaction

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortBy selects the ordering of a filtered view
type SortBy string

const (
	SortNewest  SortBy = "newest"
	SortOldest  SortBy = "oldest"
	SortHighest SortBy = "highest"
	SortLowest  SortBy = "lowest"
)

// ParseSortBy converts user input into a SortBy. Empty input means newest.
func ParseSortBy(s string) (SortBy, error) {
	switch v := SortBy(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortHighest, SortLowest:
		return v, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// FilterCriteria parameterizes the read-side projection.
// A nil TypeFilter and an empty SelectedCategories mean "show everything".
type FilterCriteria struct {
	TypeFilter         *Type
	SelectedCategories []string
	SortBy             SortBy
}

// ActiveFilterCount counts the filter dimensions that deviate from the default.
// Each selected category counts on its own.
func (c FilterCriteria) ActiveFilterCount() int {
	n := 0
	if c.TypeFilter != nil {
		n++
	}
	return n + len(c.categorySet())
}

func (c FilterCriteria) categorySet() map[string]struct{} {
	if len(c.SelectedCategories) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(c.SelectedCategories))
	for _, id := range c.SelectedCategories {
		set[id] = struct{}{}
	}
	return set
}

// Filter derives the display list. The input is never modified; the output
// is a fresh slice sorted stably so equal keys keep their input order.
func Filter(txs []Transaction, c FilterCriteria) []Transaction {
	cats := c.categorySet()
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if c.TypeFilter != nil && t.Type != *c.TypeFilter {
			continue
		}
		if cats != nil {
			if _, ok := cats[t.Category]; !ok {
				continue
			}
		}
		out = append(out, t.Clone())
	}

	slices.SortStableFunc(out, comparator(c.SortBy))
	return out
}

func comparator(by SortBy) func(a, b Transaction) int {
	switch by {
	case SortOldest:
		return func(a, b Transaction) int { return a.Timestamp.Compare(b.Timestamp) }
	case SortHighest:
		return func(a, b Transaction) int { return cmp.Compare(b.Amount, a.Amount) }
	case SortLowest:
		return func(a, b Transaction) int { return cmp.Compare(a.Amount, b.Amount) }
	default:
		return func(a, b Transaction) int { return b.Timestamp.Compare(a.Timestamp) }
	}
}
