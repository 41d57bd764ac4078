package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack/internal/tracker"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		sortColumn   string
		descending   bool
		hideRejected bool
		country      string
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sort") {
				sortColumn = cfg.Display.DefaultSort
			}
			if !cmd.Flags().Changed("hide-rejected") {
				hideRejected = cfg.Display.HideRejected
			}

			return ctx.withTracker(func(tr *tracker.Tracker) error {
				recs := filterRecords(tr.List(), hideRejected, country)
				recs, err := sortRecords(recs, sortColumn, descending)
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, recs)
				}

				out := cmd.OutOrStdout()
				if len(recs) == 0 {
					fmt.Fprintln(out, "No job applications yet. Add one with 'jobtrack add'.")
					return nil
				}
				fmt.Fprintln(out, renderTable(out, recordHeaders, recordRows(recs)))
				fmt.Fprintf(out, "%d application(s)\n", len(recs))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sortColumn, "sort", "date", "Sort column: company, position, date, status")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort in descending order")
	cmd.Flags().BoolVar(&hideRejected, "hide-rejected", false, "Hide rejected applications")
	cmd.Flags().StringVar(&country, "country", "", "Only show applications for this country")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")

	return cmd
}
