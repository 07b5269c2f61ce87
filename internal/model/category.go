package model

import (
	"strings"

	"github.com/fintrack-dev/fintrack/internal/apierr"
)

// Category groups transactions. Owner is nil for global categories shared
// by every user; name uniqueness per owner scope is enforced server-side.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Owner *int   `json:"user"`
}

// Global reports whether the category is shared rather than user-owned.
func (c Category) Global() bool {
	return c.Owner == nil
}

// CategoryDraft is the payload for creating or renaming a category.
type CategoryDraft struct {
	Name string `json:"name"`
}

// Validate rejects blank names before any network call.
func (d CategoryDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apierr.NewValidation("name", "category name must not be blank")
	}
	return nil
}
