package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack/internal/records"
	"jobtrack/internal/tracker"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var draft records.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a job application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				rec, err := tr.Create(draft)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s at %s (id %s)\n", rec.Position, rec.Company, rec.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.Company, "company", "", "Company name (required)")
	cmd.Flags().StringVar(&draft.Position, "position", "", "Position title (required)")
	cmd.Flags().StringVar(&draft.Status, "status", "", "Initial status (default not_applied)")
	cmd.Flags().StringVar(&draft.AppliedDate, "date", "", "Applied date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&draft.Country, "country", "", "Country")
	cmd.Flags().StringVar(&draft.State, "state", "", "State or region")
	cmd.Flags().StringVar(&draft.Link, "link", "", "Posting URL")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&draft.Comments, "comments", "", "Free-text comments")
	cmd.MarkFlagRequired("company")
	cmd.MarkFlagRequired("position")

	return cmd
}
