package main

import (
	"context"

	"github.com/spf13/cobra"

	"ContentForge/internal/app"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a blog post from one commit",
	Long: `Reads COMMIT_MESSAGE, COMMIT_DIFF, and optionally COMMIT_AUTHOR from
the environment, gates the commit through the skip rules and the
worthiness score, and publishes a draft if it passes. A gated commit
exits successfully without publishing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("commit", func(ctx context.Context, a *app.Application) error {
			return a.RunCommit(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
