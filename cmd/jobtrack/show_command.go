package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack/internal/records"
	"jobtrack/internal/tracker"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one application in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				rec, ok := tr.Get(args[0])
				if !ok {
					return &records.NotFoundError{ID: args[0]}
				}

				if jsonOut {
					return writeJSON(cmd, rec)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:          %s\n", rec.ID)
				fmt.Fprintf(out, "Company:     %s\n", rec.Company)
				fmt.Fprintf(out, "Position:    %s\n", rec.Position)
				fmt.Fprintf(out, "Applied:     %s\n", rec.AppliedDate)
				fmt.Fprintf(out, "Status:      %s\n", rec.Status.Display())
				if location := rec.Location(); location != "" {
					fmt.Fprintf(out, "Location:    %s\n", location)
				}
				if rec.Link != "" {
					fmt.Fprintf(out, "Link:        %s\n", rec.Link)
				}
				if rec.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", rec.Description)
				}
				if rec.Comments != "" {
					fmt.Fprintf(out, "Comments:    %s\n", rec.Comments)
				}
				if age, ok := tr.DismissalAge(rec.ID); ok {
					fmt.Fprintf(out, "Reminder:    dismissed %s ago\n", age.Round(timeRounding))
				} else if !rec.Status.Terminal() {
					fmt.Fprintln(out, "Reminder:    pending")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	return cmd
}
