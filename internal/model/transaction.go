package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/apierr"
)

// Recurrence is how often a transaction repeats.
type Recurrence string

const (
	RecurrenceNone     Recurrence = "none"
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiweekly Recurrence = "biweekly"
	RecurrenceMonthly  Recurrence = "monthly"
	RecurrenceYearly   Recurrence = "yearly"
)

// Recurrences lists the accepted values in display order.
var Recurrences = []Recurrence{
	RecurrenceNone,
	RecurrenceDaily,
	RecurrenceWeekly,
	RecurrenceBiweekly,
	RecurrenceMonthly,
	RecurrenceYearly,
}

// Valid reports whether r is a member of the recurrence enum.
func (r Recurrence) Valid() bool {
	for _, known := range Recurrences {
		if r == known {
			return true
		}
	}
	return false
}

// DateLayout is the calendar-date wire format; the backend attaches no
// meaningful time component.
const DateLayout = "2006-01-02"

// Transaction is the shape shared by incomes and expenses. The backend
// serializes decimal amounts as strings, so Amount stays a string here and
// is parsed on demand.
type Transaction struct {
	ID           int        `json:"id"`
	Amount       string     `json:"amount"`
	Date         string     `json:"date"`
	Category     *int       `json:"category"`
	CategoryName string     `json:"category_name"`
	Source       string     `json:"source"`
	Recurrence   Recurrence `json:"recurrence"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AmountValue parses the amount defensively: anything unparseable counts
// as zero rather than poisoning downstream sums and comparisons.
func (t Transaction) AmountValue() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DateValue parses the calendar date; the zero time stands in for an
// unparseable date so sorting stays total.
func (t Transaction) DateValue() time.Time {
	ts, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// TransactionDraft is the payload for creating or updating a transaction.
// Category carries the category id; "category" is the canonical field name
// on every mutation path.
type TransactionDraft struct {
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Category    *int       `json:"category"`
	Source      string     `json:"source,omitempty"`
	Recurrence  Recurrence `json:"recurrence"`
	Description string     `json:"description"`
}

// Validate enforces the data-model invariants locally so an invalid draft
// never reaches the wire: strictly positive decimal amount, calendar date,
// a category reference, and a known recurrence.
func (d TransactionDraft) Validate() error {
	ve := &apierr.ValidationError{}

	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil {
		ve.Add("amount", "amount must be a decimal number")
	} else if !amount.IsPositive() {
		ve.Add("amount", "amount must be strictly positive")
	}

	if strings.TrimSpace(d.Date) == "" {
		ve.Add("date", "date is required")
	} else if _, err := time.Parse(DateLayout, d.Date); err != nil {
		ve.Add("date", "date must be in YYYY-MM-DD format")
	}

	if d.Category == nil {
		ve.Add("category", "category is required")
	}

	if d.Recurrence != "" && !d.Recurrence.Valid() {
		ve.Add("recurrence", "recurrence must be one of: none, daily, weekly, biweekly, monthly, yearly")
	}

	if ve.Empty() {
		return nil
	}
	return ve
}
