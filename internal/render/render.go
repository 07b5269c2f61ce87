// Package render turns fetched and derived state into terminal output.
// Every function returns a plain string so tests can assert content
// without a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// TransactionTable renders a projected transaction list as an aligned
// table. An empty projection renders a short notice instead of headers.
func TransactionTable(transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return mutedStyle.Render("no transactions to show") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s  %-10s  %-30s  %12s  %-18s  %-9s",
		"ID", "DATE", "DESCRIPTION", "AMOUNT", "CATEGORY", "REPEATS")))
	b.WriteString("\n")
	for _, t := range transactions {
		desc := t.Description
		if desc == "" {
			desc = "(no description)"
		}
		if len(desc) > 30 {
			desc = desc[:27] + "..."
		}
		category := t.CategoryName
		if category == "" {
			category = "(uncategorized)"
		}
		recurrence := string(t.Recurrence)
		if recurrence == "" || t.Recurrence == model.RecurrenceNone {
			recurrence = "-"
		}
		b.WriteString(fmt.Sprintf("%-6d  %-10s  %-30s  %12s  %-18s  %-9s\n",
			t.ID, t.Date, desc, t.AmountValue().StringFixed(2), category, recurrence))
	}
	return b.String()
}

// CategoryList renders the category snapshot, marking global ones.
func CategoryList(categories []model.Category) string {
	if len(categories) == 0 {
		return mutedStyle.Render("no categories defined") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s  %-30s  %s", "ID", "NAME", "SCOPE")))
	b.WriteString("\n")
	for _, c := range categories {
		scope := "personal"
		if c.Global() {
			scope = "global"
		}
		b.WriteString(fmt.Sprintf("%-6d  %-30s  %s\n", c.ID, c.Name, scope))
	}
	return b.String()
}

// SummaryBlock renders the income/expense/balance totals. The balance
// takes the income color when non-negative and the expense color
// otherwise.
func SummaryBlock(s model.Summary) string {
	balanceStyle := incomeStyle
	if s.Balance.IsNegative() {
		balanceStyle = expenseStyle
	}
	lines := []string{
		fmt.Sprintf("%s %s", headerStyle.Render("Total income: "), incomeStyle.Render(s.TotalIncome.StringFixed(2))),
		fmt.Sprintf("%s %s", headerStyle.Render("Total expense:"), expenseStyle.Render(s.TotalExpense.StringFixed(2))),
		fmt.Sprintf("%s %s", headerStyle.Render("Balance:      "), balanceStyle.Render(s.Balance.StringFixed(2))),
	}
	return strings.Join(lines, "\n") + "\n"
}

// BreakdownBars renders per-category totals as proportional horizontal
// bars, the terminal stand-in for the original pie charts. Order is
// preserved as given.
func BreakdownBars(totals []model.CategoryTotal, width int) string {
	if len(totals) == 0 {
		return mutedStyle.Render("no data to break down") + "\n"
	}
	if width <= 0 {
		width = 40
	}

	max := totals[0].TotalAmount
	nameWidth := len(totals[0].CategoryName)
	for _, t := range totals[1:] {
		if t.TotalAmount.GreaterThan(max) {
			max = t.TotalAmount
		}
		if len(t.CategoryName) > nameWidth {
			nameWidth = len(t.CategoryName)
		}
	}

	var b strings.Builder
	for _, t := range totals {
		bar := ""
		if max.IsPositive() {
			cells := t.TotalAmount.Div(max).Mul(decimal.NewFromInt(int64(width))).IntPart()
			if cells < 1 && t.TotalAmount.IsPositive() {
				cells = 1
			}
			bar = strings.Repeat("█", int(cells))
		}
		b.WriteString(fmt.Sprintf("%-*s  %12s  %s\n",
			nameWidth, t.CategoryName, t.TotalAmount.StringFixed(2), barStyle.Render(bar)))
	}
	return b.String()
}

// ProfileBlock renders the account record.
func ProfileBlock(p model.Profile) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", headerStyle.Render("Username: "), p.Username))
	b.WriteString(fmt.Sprintf("%s %s\n", headerStyle.Render("Email:    "), p.Email))
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", headerStyle.Render("Name:     "), name))
	}
	return b.String()
}
