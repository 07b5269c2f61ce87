package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/activitylog"
)

func newActivityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show the local audit trail of mutations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			entries, err := activitylog.Read(app.dataDir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded activity")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %-8s  %s\n",
					e.Timestamp.Format(time.RFC3339), e.Action, e.Resource, e.Detail)
			}
			return nil
		},
	}
}
