package transaction

import (
	"github.com/shopspring/decimal"
)

// Summary holds totals over a set of transactions. Transfers move money
// between the user's own accounts and are counted but not totalled.
type Summary struct {
	Count      int                        `json:"count"`
	Income     decimal.Decimal            `json:"income"`
	Expense    decimal.Decimal            `json:"expense"`
	Net        decimal.Decimal            `json:"net"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

// Summarize totals income and expense, and expense per category
func Summarize(txs []Transaction) Summary {
	s := Summary{
		Count:      len(txs),
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, t := range txs {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case TypeIncome:
			s.Income = s.Income.Add(amount)
		case TypeExpense:
			s.Expense = s.Expense.Add(amount)
			s.ByCategory[t.Category] = s.ByCategory[t.Category].Add(amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
