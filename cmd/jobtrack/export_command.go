package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobtrack/internal/export"
	"jobtrack/internal/tracker"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag string
		dirFlag    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the record set to a timestamped file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := dirFlag
			if dir == "" {
				dir = cfg.Paths.ExportDir
			}

			return ctx.withTracker(func(tr *tracker.Tracker) error {
				path, err := export.Write(dir, format, tr.List(), time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d application(s) to %s\n", len(tr.List()), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "json", "Export format: json, csv, txt")
	cmd.Flags().StringVar(&dirFlag, "dir", "", "Destination directory (default from config)")
	return cmd
}
