package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fintrack",
		Short:   "Personal finance tracking against a fintrack backend",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newLogoutCommand())
	rootCmd.AddCommand(newRegisterCommand())
	rootCmd.AddCommand(newSessionCommand())
	rootCmd.AddCommand(newProfileCommand())
	rootCmd.AddCommand(newTransactionCommand(incomeKind))
	rootCmd.AddCommand(newTransactionCommand(expenseKind))
	rootCmd.AddCommand(newCategoryCommand())
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newActivityCommand())

	return rootCmd
}
