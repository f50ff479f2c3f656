package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"ContentForge/internal/domain"
	"ContentForge/internal/state"
)

func newShaLog(t *testing.T) *state.ShaLog {
	t.Helper()
	return state.LoadShaLog(filepath.Join(t.TempDir(), "sha-log.json"), 500)
}

func watchCommits() []domain.CommitRef {
	// Hosting APIs list newest first; the watcher must process oldest first.
	return []domain.CommitRef{
		{SHA: "ccc3333", Message: "feat: newest change", Author: "dev"},
		{SHA: "bbb2222", Message: "Merge pull request #4", Author: "dev"},
		{SHA: "aaa1111", Message: "feat: oldest change", Author: "dev"},
	}
}

// commitPipelineForWatch builds a commit pipeline whose scorer records the
// order of evaluated messages.
func commitPipelineForWatch(scorer *orderScorer) *CommitPipeline {
	return NewCommitPipeline(CommitDeps{
		Scorer:    scorer,
		Generator: &fakeGenerator{post: domain.GeneratedPost{Title: "T", Slug: "t", HTMLContent: "<p>x</p>"}},
		Publisher: &fakePublisher{},
		Logger:    testLogger(),
		Threshold: 7,
		Out:       &bytes.Buffer{},
	})
}

type orderScorer struct {
	fakeScorer
	messages []string
}

func (o *orderScorer) EvaluateCommit(ctx context.Context, message, diff string) (domain.WorthinessEvaluation, error) {
	o.messages = append(o.messages, message)
	return o.fakeScorer.EvaluateCommit(ctx, message, diff)
}

func TestWatchProcessesOldestFirst(t *testing.T) {
	t.Parallel()

	host := &fakeHost{
		commits: map[string][]domain.CommitRef{"octo/taskforge": watchCommits()},
		diffs: map[string]string{
			"octo/taskforge@ccc3333": "diff c",
			"octo/taskforge@aaa1111": "diff a",
		},
	}
	scorer := &orderScorer{fakeScorer: fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 9, TopicSummary: "x"}}}
	log := newShaLog(t)
	out := &bytes.Buffer{}
	p := NewWatchPipeline(WatchDeps{
		Host: host, Commit: commitPipelineForWatch(scorer), ShaLog: log,
		Logger: testLogger(), Repo: "octo/taskforge", Branch: "main", Out: out,
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"feat: oldest change", "feat: newest change"}
	if len(scorer.messages) != len(want) {
		t.Fatalf("evaluated %v, want %v", scorer.messages, want)
	}
	for i := range want {
		if scorer.messages[i] != want[i] {
			t.Errorf("evaluation order[%d] = %q, want %q", i, scorer.messages[i], want[i])
		}
	}

	// All three land in the log: two processed, one gated merge commit.
	for _, sha := range []string{"aaa1111", "bbb2222", "ccc3333"} {
		if !log.Contains(sha) {
			t.Errorf("sha %s not marked processed", sha)
		}
	}

	var summary WatchSummary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("summary not valid JSON: %v", err)
	}
	if summary.CommitsSeen != 3 || summary.CommitsProcessed != 2 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestWatchSkipsAlreadyProcessed(t *testing.T) {
	t.Parallel()

	host := &fakeHost{
		commits: map[string][]domain.CommitRef{"octo/taskforge": watchCommits()},
		diffs: map[string]string{
			"octo/taskforge@ccc3333": "diff c",
		},
	}
	scorer := &orderScorer{fakeScorer: fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 9}}}
	log := newShaLog(t)
	log.Add("aaa1111")
	p := NewWatchPipeline(WatchDeps{
		Host: host, Commit: commitPipelineForWatch(scorer), ShaLog: log,
		Logger: testLogger(), Repo: "octo/taskforge", Branch: "main", Out: &bytes.Buffer{},
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(scorer.messages) != 1 || scorer.messages[0] != "feat: newest change" {
		t.Errorf("evaluated %v, want only the unseen non-merge commit", scorer.messages)
	}
}

func TestWatchLeavesFailedCommitForRetry(t *testing.T) {
	t.Parallel()

	// No diff registered for aaa1111, so its fetch fails; ccc3333 succeeds.
	host := &fakeHost{
		commits: map[string][]domain.CommitRef{"octo/taskforge": watchCommits()},
		diffs: map[string]string{
			"octo/taskforge@ccc3333": "diff c",
		},
	}
	scorer := &orderScorer{fakeScorer: fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 9}}}
	log := newShaLog(t)
	out := &bytes.Buffer{}
	p := NewWatchPipeline(WatchDeps{
		Host: host, Commit: commitPipelineForWatch(scorer), ShaLog: log,
		Logger: testLogger(), Repo: "octo/taskforge", Branch: "main", Out: out,
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, one commit's failure must not abort the run", err)
	}

	if log.Contains("aaa1111") {
		t.Errorf("failed commit marked processed; it would never be retried")
	}
	if !log.Contains("ccc3333") {
		t.Errorf("successful commit not marked processed")
	}

	var summary WatchSummary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("summary not valid JSON: %v", err)
	}
	if summary.CommitsProcessed != 1 {
		t.Errorf("processed = %d, want 1", summary.CommitsProcessed)
	}
}

func TestWatchPersistsLogAcrossRuns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sha-log.json")
	host := &fakeHost{
		commits: map[string][]domain.CommitRef{"octo/taskforge": watchCommits()},
		diffs: map[string]string{
			"octo/taskforge@ccc3333": "diff c",
			"octo/taskforge@aaa1111": "diff a",
		},
	}
	scorer := &orderScorer{fakeScorer: fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 9}}}
	first := NewWatchPipeline(WatchDeps{
		Host: host, Commit: commitPipelineForWatch(scorer), ShaLog: state.LoadShaLog(path, 500),
		Logger: testLogger(), Repo: "octo/taskforge", Branch: "main", Out: &bytes.Buffer{},
	})
	if err := first.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	rescorer := &orderScorer{fakeScorer: fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 9}}}
	second := NewWatchPipeline(WatchDeps{
		Host: host, Commit: commitPipelineForWatch(rescorer), ShaLog: state.LoadShaLog(path, 500),
		Logger: testLogger(), Repo: "octo/taskforge", Branch: "main", Out: &bytes.Buffer{},
	})
	if err := second.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if len(rescorer.messages) != 0 {
		t.Errorf("second run re-evaluated commits: %v", rescorer.messages)
	}
}
