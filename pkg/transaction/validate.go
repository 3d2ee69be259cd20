package transaction

import (
	"math"
	"strings"
)

// Validate checks a candidate transaction and returns every broken rule.
// An empty result means the candidate may be stored.
func Validate(t Transaction) []Violation {
	var out []Violation

	switch {
	case math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0):
		out = append(out, Violation{Field: "amount", Reason: "amount must be a number"})
	case t.Amount == 0:
		out = append(out, Violation{Field: "amount", Reason: "amount required"})
	case t.Amount < 0:
		out = append(out, Violation{Field: "amount", Reason: "amount must be positive"})
	}

	if strings.TrimSpace(t.Category) == "" {
		out = append(out, Violation{Field: "category", Reason: "category required"})
	}

	if !t.Type.Valid() {
		out = append(out, Violation{Field: "type", Reason: "type must be income, expense or transfer"})
		return out
	}

	needFrom := t.Type == TypeExpense || t.Type == TypeTransfer
	needTo := t.Type == TypeIncome || t.Type == TypeTransfer
	if needFrom && isBlank(t.FromAccount) {
		out = append(out, Violation{Field: "fromAccount", Reason: string(t.Type) + " requires fromAccount"})
	}
	if needTo && isBlank(t.ToAccount) {
		out = append(out, Violation{Field: "toAccount", Reason: string(t.Type) + " requires toAccount"})
	}
	return out
}

// AsError converts violations into a *ValidationError, or nil when there are none
func AsError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// Catalog holds the known accounts and categories used for cross-reference checks.
// An empty side of the catalog disables the check for that side.
type Catalog struct {
	accounts   map[string]struct{}
	categories map[string]struct{}
}

// NewCatalog indexes accounts and categories by id
func NewCatalog(accounts []Account, categories []Category) *Catalog {
	c := &Catalog{
		accounts:   make(map[string]struct{}, len(accounts)),
		categories: make(map[string]struct{}, len(categories)),
	}
	for _, a := range accounts {
		c.accounts[a.ID] = struct{}{}
	}
	for _, cat := range categories {
		c.categories[cat.ID] = struct{}{}
	}
	return c
}

// Validate runs the field rules and then the reference rules
func (c *Catalog) Validate(t Transaction) []Violation {
	out := Validate(t)
	if c == nil {
		return out
	}
	if len(c.categories) > 0 && t.Category != "" {
		if _, ok := c.categories[t.Category]; !ok {
			out = append(out, Violation{Field: "category", Reason: "unknown category"})
		}
	}
	if len(c.accounts) > 0 {
		for _, ref := range []struct {
			field string
			id    *string
		}{{"fromAccount", t.FromAccount}, {"toAccount", t.ToAccount}} {
			if isBlank(ref.id) {
				continue
			}
			if _, ok := c.accounts[*ref.id]; !ok {
				out = append(out, Violation{Field: ref.field, Reason: "unknown account"})
			}
		}
	}
	return out
}

func isBlank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}
