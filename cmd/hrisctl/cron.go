package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/app"
	"github.com/spf13/cobra"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Inspect and trigger background jobs",
}

var cronListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			for _, name := range a.Scheduler().Jobs() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

var cronRunCmd = &cobra.Command{
	Use:   "run [job]",
	Short: "Run one job, or every job when none is named",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			s := a.Scheduler()
			if len(args) == 0 {
				return s.RunOnce(ctx)
			}
			if err := s.Run(ctx, args[0]); err != nil {
				return err
			}
			slog.Info("Job finished", "job", args[0])
			return nil
		})
	},
}

func init() {
	cronCmd.AddCommand(cronListCmd, cronRunCmd)
}
