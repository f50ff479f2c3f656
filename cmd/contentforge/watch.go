package main

import (
	"context"

	"github.com/spf13/cobra"

	"ContentForge/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process unseen commits on the watched repository",
	Long: `Fetches recent commits on the watched repository's default branch and
runs the commit pipeline for each one not yet in the processed-SHA log.
The log is bounded and saved once at the end of the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("watch", func(ctx context.Context, a *app.Application) error {
			return a.RunWatch(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
