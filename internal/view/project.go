// Package view computes the sequence a list page actually shows: the raw
// collection narrowed by an optional category filter and stable-sorted by
// a transient sort specification. It is a pure projection with no memory;
// callers re-invoke it whenever any input changes.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Project filters then stable-sorts a transaction snapshot. The input
// slice is never mutated; ties keep their original relative order, and
// flipping the direction only flips the comparator's sign.
func Project(items []model.Transaction, spec model.SortSpec, filter model.Filter) []model.Transaction {
	projected := make([]model.Transaction, 0, len(items))
	for _, item := range items {
		if filter.Category != nil {
			if item.Category == nil || *item.Category != filter.Category.ID {
				continue
			}
		}
		projected = append(projected, item)
	}

	less := comparator(spec.Field)
	descending := spec.Order == model.Descending
	sort.SliceStable(projected, func(i, j int) bool {
		cmp := less(projected[i], projected[j])
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return projected
}

// comparator returns a three-way comparison for the sort field. Amounts
// compare as decimals (unparseable values count as zero), dates
// chronologically, descriptions lexicographically.
func comparator(field model.SortField) func(a, b model.Transaction) int {
	switch field {
	case model.SortByAmount:
		return func(a, b model.Transaction) int {
			return a.AmountValue().Cmp(b.AmountValue())
		}
	case model.SortByDescription:
		return func(a, b model.Transaction) int {
			return strings.Compare(a.Description, b.Description)
		}
	default: // date
		return func(a, b model.Transaction) int {
			return a.DateValue().Compare(b.DateValue())
		}
	}
}

// ParseSortSpec validates user-supplied field and order names.
func ParseSortSpec(field, order string) (model.SortSpec, error) {
	spec := model.SortSpec{
		Field: model.SortField(strings.ToLower(strings.TrimSpace(field))),
		Order: model.SortOrder(strings.ToLower(strings.TrimSpace(order))),
	}
	switch spec.Field {
	case model.SortByDate, model.SortByAmount, model.SortByDescription:
	default:
		return model.SortSpec{}, fmt.Errorf("unknown sort field %q (want date, amount, or description)", field)
	}
	switch spec.Order {
	case model.Ascending, model.Descending:
	default:
		return model.SortSpec{}, fmt.Errorf("unknown sort order %q (want asc or desc)", order)
	}
	return spec, nil
}
