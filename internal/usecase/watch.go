package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ContentForge/internal/classifier"
	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
	"ContentForge/internal/state"
)

// WatchDeps wires the single-repository watcher.
type WatchDeps struct {
	Host   ports.RepoHost
	Commit *CommitPipeline
	ShaLog *state.ShaLog
	Logger *slog.Logger

	Repo   string
	Branch string
	Window int
	Out    io.Writer
}

// WatchPipeline polls one repository's branch and runs the commit pipeline
// for every commit not yet in the processed-SHA log. The log is bounded;
// oldest entries are evicted as new ones arrive.
type WatchPipeline struct {
	deps WatchDeps
}

// WatchSummary is the JSON document written to stdout after a run.
type WatchSummary struct {
	Repo             string `json:"repo"`
	CommitsSeen      int    `json:"commitsSeen"`
	CommitsProcessed int    `json:"commitsProcessed"`
}

func NewWatchPipeline(deps WatchDeps) *WatchPipeline {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Window <= 0 {
		deps.Window = progressCommitWindow
	}
	return &WatchPipeline{deps: deps}
}

// Run processes all unseen commits, oldest first so generated posts
// follow commit order. A commit whose pipeline errors is left out of the
// log and retried on the next run; gated commits are marked processed.
// The log is saved once at the end of the run.
func (p *WatchPipeline) Run(ctx context.Context) error {
	d := p.deps

	commits, err := d.Host.ListCommits(ctx, d.Repo, d.Branch, d.Window)
	if err != nil {
		return fmt.Errorf("list commits for %s: %w", d.Repo, err)
	}

	summary := WatchSummary{Repo: d.Repo, CommitsSeen: len(commits)}

	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		if d.ShaLog.Contains(c.SHA) {
			continue
		}

		// Cheap gates first: no diff fetch, no scorer call.
		if classifier.ShouldSkip(c.Message, c.Author) {
			d.Logger.Info("skipping commit: matches skip pattern", "sha", c.SHA)
			d.ShaLog.Add(c.SHA)
			continue
		}

		diff, err := d.Host.CommitDiff(ctx, d.Repo, c.SHA)
		if err != nil {
			d.Logger.Error("diff fetch failed", "sha", c.SHA, "error", err)
			continue
		}

		err = d.Commit.Run(ctx, domain.CommitEvent{
			Message:     c.Message,
			Diff:        diff,
			AuthorLogin: c.Author,
		})
		if err != nil {
			d.Logger.Error("commit processing failed", "sha", c.SHA, "error", err)
			continue
		}

		d.ShaLog.Add(c.SHA)
		summary.CommitsProcessed++
	}

	if err := d.ShaLog.Save(); err != nil {
		return fmt.Errorf("save sha log: %w", err)
	}

	d.Logger.Info("watch finished", "repo", d.Repo,
		"seen", summary.CommitsSeen, "processed", summary.CommitsProcessed)
	return writeSummary(d.Out, summary)
}
