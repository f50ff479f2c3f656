package main

import (
	"context"

	"github.com/spf13/cobra"

	"ContentForge/internal/app"
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Publish this week's thought-leadership article",
	Long: `Selects the pillar and angle deterministically from the current ISO
week number and publishes one thought-leadership draft. Running twice in
the same week generates the same topic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode("weekly", func(ctx context.Context, a *app.Application) error {
			return a.RunWeekly(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(weeklyCmd)
}
