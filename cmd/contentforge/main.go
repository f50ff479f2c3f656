// Command contentforge runs the automated blog-content pipelines:
// commit-triggered posts, weekly thought leadership, repository polling,
// single-repo watching, and a long-running scheduled mode.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ContentForge/internal/app"
	"ContentForge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "contentforge",
	Short: "Automated blog content pipeline",
	Long: `ContentForge turns development activity into published blog drafts:
commit diffs, repository milestones, and a weekly thought-leadership
calendar all feed the same generate-and-publish chain.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMode loads config, builds the application for the given mode, and
// executes fn. All subcommands share this startup path.
func runMode(mode string, fn func(context.Context, *app.Application) error) error {
	cfg := config.Load()
	application, err := app.New(cfg, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if err := fn(context.Background(), application); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s pipeline failed: %v\n", mode, err)
		return err
	}
	return nil
}
