package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack/internal/records"
	"jobtrack/internal/tracker"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change an application's status",
		Long:  "Change an application's status. Approved and rejected applications stop appearing in reminders.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := records.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				rec, err := tr.SetStatus(args[0], status)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s at %s is now %s\n", rec.Position, rec.Company, rec.Status.Display())
				return nil
			})
		},
	}
}

func newCommentCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Replace an application's comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				rec, err := tr.SetComments(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved comments for %s\n", rec.ID)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(func(tr *tracker.Tracker) error {
				rec, ok := tr.Get(args[0])
				if !ok {
					return &records.NotFoundError{ID: args[0]}
				}
				if !force {
					return fmt.Errorf("refusing to delete %s at %s without --force", rec.Position, rec.Company)
				}
				if err := tr.Delete(rec.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s at %s\n", rec.Position, rec.Company)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")
	return cmd
}
