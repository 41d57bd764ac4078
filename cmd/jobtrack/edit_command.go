package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack/internal/records"
	"jobtrack/internal/tracker"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		company     string
		position    string
		status      string
		date        string
		country     string
		state       string
		link        string
		description string
		comments    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				rec, ok := tr.Get(args[0])
				if !ok {
					return &records.NotFoundError{ID: args[0]}
				}

				flags := cmd.Flags()
				if flags.Changed("company") {
					rec.Company = company
				}
				if flags.Changed("position") {
					rec.Position = position
				}
				if flags.Changed("status") {
					parsed, err := records.ParseStatus(status)
					if err != nil {
						return err
					}
					rec.Status = parsed
				}
				if flags.Changed("date") {
					parsed, err := records.ParseDate(date)
					if err != nil {
						return err
					}
					rec.AppliedDate = parsed
				}
				if flags.Changed("country") {
					rec.Country = country
				}
				if flags.Changed("state") {
					rec.State = state
				}
				if flags.Changed("link") {
					rec.Link = link
				}
				if flags.Changed("description") {
					rec.Description = description
				}
				if flags.Changed("comments") {
					rec.Comments = comments
				}

				if err := tr.Update(rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", rec.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&position, "position", "", "Position title")
	cmd.Flags().StringVar(&status, "status", "", "Status: not_applied, applied, approved, rejected")
	cmd.Flags().StringVar(&date, "date", "", "Applied date YYYY-MM-DD")
	cmd.Flags().StringVar(&country, "country", "", "Country")
	cmd.Flags().StringVar(&state, "state", "", "State or region")
	cmd.Flags().StringVar(&link, "link", "", "Posting URL")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&comments, "comments", "", "Free-text comments")

	return cmd
}
