package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// categoryTotalWire tolerates total_amount arriving as either a JSON
// number or a string; the backend's aggregate serializer is not consistent
// about it.
type categoryTotalWire struct {
	CategoryName string          `json:"category_name"`
	TotalAmount  json.RawMessage `json:"total_amount"`
}

func (w categoryTotalWire) toModel() model.CategoryTotal {
	raw := strings.Trim(strings.TrimSpace(string(w.TotalAmount)), `"`)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		amount = decimal.Zero
	}
	return model.CategoryTotal{CategoryName: w.CategoryName, TotalAmount: amount}
}

// ExpensesByCategory fetches the backend's pre-aggregated expense
// breakdown. Ordering is the backend's, trusted verbatim.
func (g *Gateway) ExpensesByCategory(ctx context.Context) ([]model.CategoryTotal, error) {
	return g.categorySummary(ctx, "/transactions/summary/expenses-by-category/")
}

// IncomesByCategory fetches the backend's pre-aggregated income breakdown.
func (g *Gateway) IncomesByCategory(ctx context.Context) ([]model.CategoryTotal, error) {
	return g.categorySummary(ctx, "/transactions/summary/incomes-by-category/")
}

func (g *Gateway) categorySummary(ctx context.Context, path string) ([]model.CategoryTotal, error) {
	var wire []categoryTotalWire
	if err := g.Get(ctx, path, &wire); err != nil {
		return nil, err
	}
	totals := make([]model.CategoryTotal, 0, len(wire))
	for _, w := range wire {
		totals = append(totals, w.toModel())
	}
	return totals, nil
}
