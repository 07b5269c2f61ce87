// Package summary derives financial aggregates from complete, unfiltered
// collections. Everything here is a pure function of its inputs and is
// recomputed, never patched, when a collection changes.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Summarize totals both collections and derives the balance. Amount
// parsing is defensive: a non-numeric amount contributes zero instead of
// poisoning the sum. Filters and sorts never apply here.
func Summarize(incomes, expenses []model.Transaction) model.Summary {
	totalIncome := sumAmounts(incomes)
	totalExpense := sumAmounts(expenses)
	return model.Summary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome.Sub(totalExpense),
	}
}

// BreakdownByCategory groups one transaction type by category name,
// summing amounts per group. Group order is the insertion order of each
// name's first occurrence; transactions without a category fall into an
// "(uncategorized)" group.
func BreakdownByCategory(transactions []model.Transaction) []model.CategoryTotal {
	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		name := t.CategoryName
		if name == "" {
			name = "(uncategorized)"
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] = totals[name].Add(t.AmountValue())
	}

	breakdown := make([]model.CategoryTotal, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, model.CategoryTotal{
			CategoryName: name,
			TotalAmount:  totals[name],
		})
	}
	return breakdown
}

func sumAmounts(transactions []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.AmountValue())
	}
	return total
}
