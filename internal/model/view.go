package model

import "github.com/shopspring/decimal"

// SortField selects the transaction attribute a list is ordered by.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortSpec is a transient, client-only ordering choice.
type SortSpec struct {
	Field SortField
	Order SortOrder
}

// DefaultSort mirrors the backend's default list ordering.
var DefaultSort = SortSpec{Field: SortByDate, Order: Descending}

// Filter restricts a list to one category; a nil Category means no filter.
type Filter struct {
	Category *Category
}

// Summary holds the aggregate totals over complete, unfiltered collections.
// Balance is always TotalIncome - TotalExpense, never stored independently.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	CategoryName string
	TotalAmount  decimal.Decimal
}

// Profile is the authenticated user's account record.
type Profile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
