package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(newCategoryListCommand())
	cmd.AddCommand(newCategoryAddCommand())
	cmd.AddCommand(newCategoryRenameCommand())
	cmd.AddCommand(newCategoryDeleteCommand())

	return cmd
}

func newCategoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories visible to the user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			categories, err := app.categories().List(cmd.Context())
			if err != nil {
				return app.observe(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.CategoryList(categories))
			return nil
		},
	}
}

func newCategoryAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			// Name uniqueness per owner is the backend's call; a conflict
			// comes back as a ValidationError on the name field.
			created, err := app.categories().Create(ctx, model.CategoryDraft{Name: name})
			if err != nil {
				return app.observe(err)
			}
			app.recordActivity("created", "category", fmt.Sprintf("id=%d name=%s", created.ID, created.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s)\n", created.ID, created.Name)

			categories, err := app.categories().List(ctx)
			if err != nil {
				return app.observe(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.CategoryList(categories))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoryRenameCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Rename a category",
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

			updated, err := app.categories().Update(cmd.Context(), id, model.CategoryDraft{Name: name})
			if err != nil {
				return app.observe(err)
			}
			app.recordActivity("updated", "category", fmt.Sprintf("id=%d name=%s", updated.ID, updated.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %d to %s\n", updated.ID, updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new category name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoryDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
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

			if !yes {
				prompt := fmt.Sprintf("Delete category %d? Transactions keep their records but lose this category", id)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if err := app.categories().Delete(cmd.Context(), id); err != nil {
				return app.observe(err)
			}
			app.recordActivity("deleted", "category", fmt.Sprintf("id=%d", id))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
