package transaction

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Type classifies the direction of money movement
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

// Types lists every valid transaction type
var Types = []Type{TypeIncome, TypeExpense, TypeTransfer}

// Valid reports whether t is one of the enumerated types
func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}

// ParseType converts user input into a Type
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction represents a single financial transaction
type Transaction struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Type        Type      `json:"type"`
	FromAccount *string   `json:"fromAccount,omitempty"`
	ToAccount   *string   `json:"toAccount,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Note        string    `json:"note,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers never share pointer or slice
// storage with the owner of the original.
func (t Transaction) Clone() Transaction {
	out := t
	out.FromAccount = cloneRef(t.FromAccount)
	out.ToAccount = cloneRef(t.ToAccount)
	if t.Attachments != nil {
		out.Attachments = slices.Clone(t.Attachments)
	}
	return out
}

// CreateInput carries every caller-supplied field of a new transaction
type CreateInput struct {
	Amount      float64
	Type        Type
	FromAccount *string
	ToAccount   *string
	Category    string
	Description string
	Note        string
	Attachments []string
	Timestamp   time.Time
}

// Build turns the input into an unsaved transaction without id or audit fields
func (in CreateInput) Build() Transaction {
	return Transaction{
		Amount:      in.Amount,
		Type:        in.Type,
		FromAccount: cloneRef(in.FromAccount),
		ToAccount:   cloneRef(in.ToAccount),
		Category:    in.Category,
		Description: in.Description,
		Note:        in.Note,
		Attachments: slices.Clone(in.Attachments),
		Timestamp:   in.Timestamp,
	}
}

// UpdateInput is a partial patch; nil fields are left unchanged.
// ClearFromAccount and ClearToAccount null out an account reference.
type UpdateInput struct {
	ID               string
	Amount           *float64
	Type             *Type
	FromAccount      *string
	ToAccount        *string
	ClearFromAccount bool
	ClearToAccount   bool
	Category         *string
	Description      *string
	Note             *string
	Attachments      *[]string
	Timestamp        *time.Time
}

// Apply merges the patch into a copy of t. Id and audit fields are never touched.
func (in UpdateInput) Apply(t Transaction) Transaction {
	out := t.Clone()
	if in.Amount != nil {
		out.Amount = *in.Amount
	}
	if in.Type != nil {
		out.Type = *in.Type
	}
	switch {
	case in.ClearFromAccount:
		out.FromAccount = nil
	case in.FromAccount != nil:
		out.FromAccount = cloneRef(in.FromAccount)
	}
	switch {
	case in.ClearToAccount:
		out.ToAccount = nil
	case in.ToAccount != nil:
		out.ToAccount = cloneRef(in.ToAccount)
	}
	if in.Category != nil {
		out.Category = *in.Category
	}
	if in.Description != nil {
		out.Description = *in.Description
	}
	if in.Note != nil {
		out.Note = *in.Note
	}
	if in.Attachments != nil {
		out.Attachments = slices.Clone(*in.Attachments)
	}
	if in.Timestamp != nil {
		out.Timestamp = *in.Timestamp
	}
	return out
}

// Account is a money container referenced by FromAccount/ToAccount
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category groups transactions for display and reporting
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ref returns a pointer to s, or nil when s is empty
func Ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneRef(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Index returns the position of the transaction with the given id, or -1
func Index(txs []Transaction, id string) int {
	return slices.IndexFunc(txs, func(t Transaction) bool { return t.ID == id })
}

// CloneAll deep-copies a collection
func CloneAll(txs []Transaction) []Transaction {
	if txs == nil {
		return nil
	}
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.Clone()
	}
	return out
}
