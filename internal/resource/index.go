package resource

import (
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// CategoryIndex provides in-memory lookup over a fetched category
// snapshot, for resolving filter arguments and rendering names.
type CategoryIndex struct {
	categories []model.Category
	byID       map[int]model.Category
}

// NewCategoryIndex builds an index from a category snapshot.
func NewCategoryIndex(categories []model.Category) *CategoryIndex {
	byID := make(map[int]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &CategoryIndex{categories: categories, byID: byID}
}

// All returns the snapshot in fetch order.
func (ix *CategoryIndex) All() []model.Category {
	return ix.categories
}

// Get returns a category by id.
func (ix *CategoryIndex) Get(id int) (model.Category, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// Exists reports whether a category id is in the snapshot.
func (ix *CategoryIndex) Exists(id int) bool {
	_, ok := ix.byID[id]
	return ok
}

// ByName finds a category by case-insensitive name match.
func (ix *CategoryIndex) ByName(name string) (model.Category, bool) {
	for _, c := range ix.categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Category{}, false
}

// NameOf returns the category name for an id, or a placeholder for a nil
// or unknown reference.
func (ix *CategoryIndex) NameOf(id *int) string {
	if id == nil {
		return "(uncategorized)"
	}
	if c, ok := ix.byID[*id]; ok {
		return c.Name
	}
	return "(unknown)"
}
