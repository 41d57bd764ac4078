package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack/internal/tracker"
)

func newRemindCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show applications that need attention",
		Long: "Show every application whose status is not_applied or applied and that has not " +
			"been dismissed in the current cycle. Dismissals reset automatically once the cycle expires.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				pending, err := tr.Pending()
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, pending)
				}

				out := cmd.OutOrStdout()
				if len(pending) == 0 {
					fmt.Fprintln(out, "Nothing needs attention right now.")
					return nil
				}
				fmt.Fprintln(out, renderTable(out, recordHeaders, recordRows(pending)))
				fmt.Fprintf(out, "%d application(s) need attention. Snooze one with 'jobtrack dismiss <id>' or all with 'jobtrack dismiss --all'.\n", len(pending))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newDismissCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "dismiss [id]",
		Short: "Snooze reminders until the next cycle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("provide either an id or --all")
			}
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				out := cmd.OutOrStdout()
				if all {
					n, err := tr.DismissPending()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Dismissed %d reminder(s)\n", n)
					return nil
				}
				if err := tr.Dismiss(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Dismissed %s until the next cycle\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Dismiss every pending reminder")
	return cmd
}
