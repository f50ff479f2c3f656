package main

import (
	"context"

	"github.com/spf13/cobra"

	"ContentForge/internal/app"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Poll all repositories for showcase and progress posts",
	Long: `Walks every active repository of the configured owner. Repositories
without a showcase post are evaluated for one; showcased repositories
are checked for notable progress since the last post. State is kept in
a local JSON file and saved once per run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("poll", func(ctx context.Context, a *app.Application) error {
			return a.RunPoll(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(pollCmd)
}
