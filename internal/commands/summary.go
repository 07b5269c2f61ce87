package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
	"github.com/fintrack-dev/fintrack/internal/summary"
)

func newSummaryCommand() *cobra.Command {
	var byCategory string
	var remote bool
	var width int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, balance, and category breakdowns",
		Long: "Totals and balance are always computed over the complete income and\n" +
			"expense collections; list filters and sorts never apply here.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if byCategory != "" {
				var totals []model.CategoryTotal
				switch byCategory {
				case "incomes", "income":
					if remote {
						totals, err = app.gateway.IncomesByCategory(ctx)
					} else {
						items, listErr := app.incomes().List(ctx)
						if listErr != nil {
							return app.observe(listErr)
						}
						totals = summary.BreakdownByCategory(items)
					}
				case "expenses", "expense":
					if remote {
						totals, err = app.gateway.ExpensesByCategory(ctx)
					} else {
						items, listErr := app.expenses().List(ctx)
						if listErr != nil {
							return app.observe(listErr)
						}
						totals = summary.BreakdownByCategory(items)
					}
				default:
					return fmt.Errorf("unknown breakdown %q (want incomes or expenses)", byCategory)
				}
				if err != nil {
					return app.observe(err)
				}
				fmt.Fprint(out, render.BreakdownBars(totals, width))
				return nil
			}

			incomes, err := app.incomes().List(ctx)
			if err != nil {
				return app.observe(err)
			}
			expenses, err := app.expenses().List(ctx)
			if err != nil {
				return app.observe(err)
			}
			fmt.Fprint(out, render.SummaryBlock(summary.Summarize(incomes, expenses)))
			return nil
		},
	}

	cmd.Flags().StringVar(&byCategory, "by-category", "", "break one collection down per category: incomes or expenses")
	cmd.Flags().BoolVar(&remote, "remote", false, "use the backend's pre-aggregated breakdown instead of computing locally")
	cmd.Flags().IntVar(&width, "width", 40, "bar chart width in cells")

	return cmd
}
