package resource

import (
	"context"
	"fmt"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Client is the slice of the API gateway a collection needs.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Draft is a mutation payload that can check the data-model invariants
// before a network round trip.
type Draft interface {
	Validate() error
}

// Collection wraps one backend-managed list of entities with a uniform
// list/create/update/delete surface. The same generic shape backs incomes,
// expenses, and categories; incomes and expenses share model.Transaction.
type Collection[T any, D Draft] struct {
	api      Client
	basePath string
	name     string
}

func newCollection[T any, D Draft](api Client, basePath, name string) *Collection[T, D] {
	return &Collection[T, D]{api: api, basePath: basePath, name: name}
}

// Incomes returns the income collection.
func Incomes(api Client) *Collection[model.Transaction, model.TransactionDraft] {
	return newCollection[model.Transaction, model.TransactionDraft](api, "/transactions/incomes/", "income")
}

// Expenses returns the expense collection.
func Expenses(api Client) *Collection[model.Transaction, model.TransactionDraft] {
	return newCollection[model.Transaction, model.TransactionDraft](api, "/transactions/expenses/", "expense")
}

// Categories returns the category collection.
func Categories(api Client) *Collection[model.Category, model.CategoryDraft] {
	return newCollection[model.Category, model.CategoryDraft](api, "/transactions/categories/", "category")
}

// Name identifies the collection in messages and the activity log.
func (c *Collection[T, D]) Name() string {
	return c.name
}

// List fetches the full current server-side collection; no pagination, no
// partial refresh. The returned slice wholly replaces any prior snapshot.
func (c *Collection[T, D]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.api.Get(ctx, c.basePath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create validates the draft locally, then submits it. A locally invalid
// draft never reaches the wire; a server-side rejection surfaces through
// the same ValidationError shape.
func (c *Collection[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var created T
	if err := draft.Validate(); err != nil {
		return created, err
	}
	if err := c.api.Post(ctx, c.basePath, draft, &created); err != nil {
		return created, err
	}
	return created, nil
}

// Update validates the draft locally, then replaces the entity.
func (c *Collection[T, D]) Update(ctx context.Context, id int, draft D) (T, error) {
	var updated T
	if err := draft.Validate(); err != nil {
		return updated, err
	}
	if err := c.api.Put(ctx, c.itemPath(id), draft, &updated); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes the entity. Terminal and unconditional; confirmation is
// the caller's concern.
func (c *Collection[T, D]) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, c.itemPath(id))
}

func (c *Collection[T, D]) itemPath(id int) string {
	return fmt.Sprintf("%s%d/", c.basePath, id)
}
