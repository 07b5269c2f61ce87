package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/export"
	"github.com/fintrack-dev/fintrack/internal/importer"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
	"github.com/fintrack-dev/fintrack/internal/resource"
	"github.com/fintrack-dev/fintrack/internal/view"
)

// kind parameterizes the command tree shared by incomes and expenses; the
// two resources are independent collections of the same Transaction shape,
// so the whole workflow is written once and instantiated twice.
type kind struct {
	name       string // singular, e.g. "income"
	plural     string
	collection func(a *app) *resource.Collection[model.Transaction, model.TransactionDraft]
}

var incomeKind = kind{
	name:       "income",
	plural:     "incomes",
	collection: (*app).incomes,
}

var expenseKind = kind{
	name:       "expense",
	plural:     "expenses",
	collection: (*app).expenses,
}

func newTransactionCommand(k kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.name,
		Short: fmt.Sprintf("Manage %s", k.plural),
	}

	cmd.AddCommand(newTransactionListCommand(k))
	cmd.AddCommand(newTransactionAddCommand(k))
	cmd.AddCommand(newTransactionEditCommand(k))
	cmd.AddCommand(newTransactionDeleteCommand(k))
	cmd.AddCommand(newTransactionExportCommand(k))
	cmd.AddCommand(newTransactionImportCommand(k))

	return cmd
}

func newTransactionListCommand(k kind) *cobra.Command {
	var sortField string
	var sortOrder string
	var categoryArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s, optionally sorted and filtered", k.plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			spec, err := view.ParseSortSpec(sortField, sortOrder)
			if err != nil {
				return err
			}

			filter := model.Filter{}
			if categoryArg != "" {
				ix, err := fetchCategoryIndex(ctx, app)
				if err != nil {
					return app.observe(err)
				}
				category, err := resolveCategory(ix, categoryArg)
				if err != nil {
					return err
				}
				filter.Category = &category
			}

			items, err := k.collection(app).List(ctx)
			if err != nil {
				return app.observe(err)
			}

			projected := view.Project(items, spec, filter)
			fmt.Fprint(cmd.OutOrStdout(), render.TransactionTable(projected))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortField, "sort", string(model.DefaultSort.Field), "sort field: date, amount, or description")
	cmd.Flags().StringVar(&sortOrder, "order", string(model.DefaultSort.Order), "sort order: asc or desc")
	cmd.Flags().StringVar(&categoryArg, "category", "", "only show this category (name or id)")

	return cmd
}

func newTransactionAddCommand(k kind) *cobra.Command {
	var amount string
	var date string
	var categoryArg string
	var source string
	var recurrence string
	var description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Record a new %s", k.name),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			ix, err := fetchCategoryIndex(ctx, app)
			if err != nil {
				return app.observe(err)
			}
			category, err := resolveCategory(ix, categoryArg)
			if err != nil {
				return err
			}

			draft := model.TransactionDraft{
				Amount:      amount,
				Date:        date,
				Category:    &category.ID,
				Source:      source,
				Recurrence:  model.Recurrence(recurrence),
				Description: description,
			}

			created, err := k.collection(app).Create(ctx, draft)
			if err != nil {
				return app.observe(err)
			}
			app.recordActivity("created", k.name, fmt.Sprintf("id=%d amount=%s", created.ID, created.Amount))
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %d\n", k.name, created.ID)

			return showRefreshedList(ctx, cmd, app, k)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, strictly positive (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "calendar date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&categoryArg, "category", "", "category name or id (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&source, "source", "", "where the money came from or went")
	cmd.Flags().StringVar(&recurrence, "recurrence", string(model.RecurrenceNone), "none, daily, weekly, biweekly, monthly, or yearly")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")

	return cmd
}

func newTransactionEditCommand(k kind) *cobra.Command {
	var amount string
	var date string
	var categoryArg string
	var source string
	var recurrence string
	var description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: fmt.Sprintf("Update an existing %s", k.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing id %q: %w", args[0], err)
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			col := k.collection(app)
			existing, err := findTransaction(ctx, col, id)
			if err != nil {
				return app.observe(err)
			}

			// Start from the current record; only changed flags override.
			draft := model.TransactionDraft{
				Amount:      existing.Amount,
				Date:        existing.Date,
				Category:    existing.Category,
				Source:      existing.Source,
				Recurrence:  existing.Recurrence,
				Description: existing.Description,
			}
			if cmd.Flags().Changed("amount") {
				draft.Amount = amount
			}
			if cmd.Flags().Changed("date") {
				draft.Date = date
			}
			if cmd.Flags().Changed("category") {
				ix, err := fetchCategoryIndex(ctx, app)
				if err != nil {
					return app.observe(err)
				}
				category, err := resolveCategory(ix, categoryArg)
				if err != nil {
					return err
				}
				draft.Category = &category.ID
			}
			if cmd.Flags().Changed("source") {
				draft.Source = source
			}
			if cmd.Flags().Changed("recurrence") {
				draft.Recurrence = model.Recurrence(recurrence)
			}
			if cmd.Flags().Changed("description") {
				draft.Description = description
			}

			updated, err := col.Update(ctx, id, draft)
			if err != nil {
				return app.observe(err)
			}
			app.recordActivity("updated", k.name, fmt.Sprintf("id=%d", updated.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %d\n", k.name, updated.ID)

			return showRefreshedList(ctx, cmd, app, k)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&date, "date", "", "new date YYYY-MM-DD")
	cmd.Flags().StringVar(&categoryArg, "category", "", "new category name or id")
	cmd.Flags().StringVar(&source, "source", "", "new source")
	cmd.Flags().StringVar(&recurrence, "recurrence", "", "new recurrence")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newTransactionDeleteCommand(k kind) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", k.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing id %q: %w", args[0], err)
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			if !yes {
				prompt := fmt.Sprintf("Delete %s %d? This cannot be undone", k.name, id)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if err := k.collection(app).Delete(ctx, id); err != nil {
				return app.observe(err)
			}
			app.recordActivity("deleted", k.name, fmt.Sprintf("id=%d", id))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", k.name, id)

			return showRefreshedList(ctx, cmd, app, k)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newTransactionExportCommand(k kind) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: fmt.Sprintf("Export %s as CSV", k.plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}

			items, err := k.collection(app).List(cmd.Context())
			if err != nil {
				return app.observe(err)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.WriteTransactions(w, items); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", len(items), k.plural, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (stdout when omitted)")

	return cmd
}

func newTransactionImportCommand(k kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: fmt.Sprintf("Bulk-create %s from a CSV file", k.plural),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			drafts, parseErrs, err := importer.ReadDrafts(f)
			if err != nil {
				return err
			}

			result := importer.Run(ctx, k.collection(app), drafts, app.log)
			if result.Created > 0 {
				app.recordActivity("imported", k.name, fmt.Sprintf("created=%d file=%s", result.Created, args[0]))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s\n", result.Created, k.plural)
			for _, re := range parseErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", re)
			}
			for _, re := range result.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "rejected %v\n", re)
			}
			if len(parseErrs)+len(result.Failed) > 0 {
				return fmt.Errorf("%d rows failed", len(parseErrs)+len(result.Failed))
			}
			return nil
		},
	}

	return cmd
}

// showRefreshedList refetches the collection after a mutation and renders
// the default projection, so what the user sees is always post-refetch
// server state, never a local patch.
func showRefreshedList(ctx context.Context, cmd *cobra.Command, app *app, k kind) error {
	items, err := k.collection(app).List(ctx)
	if err != nil {
		return app.observe(err)
	}
	projected := view.Project(items, model.DefaultSort, model.Filter{})
	fmt.Fprint(cmd.OutOrStdout(), render.TransactionTable(projected))
	return nil
}

func fetchCategoryIndex(ctx context.Context, app *app) (*resource.CategoryIndex, error) {
	categories, err := app.categories().List(ctx)
	if err != nil {
		return nil, err
	}
	return resource.NewCategoryIndex(categories), nil
}

// findTransaction locates one record via a full list fetch; the backend
// collection endpoints are the only read surface the client uses.
func findTransaction(ctx context.Context, col *resource.Collection[model.Transaction, model.TransactionDraft], id int) (model.Transaction, error) {
	items, err := col.List(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("no %s with id %d", col.Name(), id)
}
