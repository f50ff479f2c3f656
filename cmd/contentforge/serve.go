package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ContentForge/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the weekly and poll pipelines on their cron schedules",
	Long: `Starts a long-running process that executes the weekly pipeline and
the repository poll on their configured cron expressions. Stops cleanly
on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("poll", func(ctx context.Context, a *app.Application) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
