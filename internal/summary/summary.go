// Package summary computes display aggregates from the currently loaded
// transaction page. The aggregation is deliberately page-scoped: callers
// wanting a full-period summary must fetch with a page size large enough to
// hold the period.
package summary

import (
	"sort"

	"github.com/dompetku/dompetku/internal/category"
	"github.com/dompetku/dompetku/internal/model"
)

// Totals are the income/expense/balance aggregates for one page.
type Totals struct {
	Income  float64
	Expense float64
	Balance float64
}

// Compute sums the page's income and expense amounts. Balance is always
// exactly Income - Expense.
func Compute(transactions []model.Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		switch tx.Type {
		case model.TypeIncome:
			t.Income += tx.Amount
		case model.TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// CategoryAmount is one slice of the expense breakdown.
type CategoryAmount struct {
	Key     string
	Label   string
	Amount  float64
	Percent float64
}

// ExpenseBreakdown groups the page's expenses by category, computes each
// category's share of the expense total, and sorts descending by amount.
// Categories with nothing spent are excluded.
func ExpenseBreakdown(transactions []model.Transaction) []CategoryAmount {
	amounts := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Type != model.TypeExpense {
			continue
		}
		amounts[tx.Category] += tx.Amount
	}

	var total float64
	for _, amount := range amounts {
		total += amount
	}

	breakdown := make([]CategoryAmount, 0, len(amounts))
	for key, amount := range amounts {
		if amount <= 0 {
			continue
		}
		entry := CategoryAmount{
			Key:    key,
			Label:  category.LabelFor(key),
			Amount: amount,
		}
		if total > 0 {
			entry.Percent = amount / total * 100
		}
		breakdown = append(breakdown, entry)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Key < breakdown[j].Key
	})
	return breakdown
}
