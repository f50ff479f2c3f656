package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

func TestCommitRunSkipsMergeCommitBeforeScoring(t *testing.T) {
	t.Parallel()

	scorer := &fakeScorer{}
	gen := &fakeGenerator{}
	pub := &fakePublisher{}
	out := &bytes.Buffer{}
	p := NewCommitPipeline(CommitDeps{
		Scorer: scorer, Generator: gen, Publisher: pub,
		Logger: testLogger(), Threshold: 7, Out: out,
	})

	err := p.Run(context.Background(), domain.CommitEvent{
		Message: "Merge branch 'main' into feature",
		Diff:    "diff --git a/x b/x",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if scorer.commitCalls != 0 {
		t.Errorf("scorer called %d times for a merge commit, want 0", scorer.commitCalls)
	}
	if len(pub.created) != 0 {
		t.Errorf("post created for a merge commit")
	}
	if out.Len() != 0 {
		t.Errorf("summary written for a gated commit: %q", out.String())
	}
}

func TestCommitRunSkipsBelowThresholdBeforeGenerating(t *testing.T) {
	t.Parallel()

	scorer := &fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 6, TopicSummary: "minor tweak"}}
	gen := &fakeGenerator{}
	pub := &fakePublisher{}
	out := &bytes.Buffer{}
	p := NewCommitPipeline(CommitDeps{
		Scorer: scorer, Generator: gen, Publisher: pub,
		Logger: testLogger(), Threshold: 7, Out: out,
	})

	err := p.Run(context.Background(), domain.CommitEvent{
		Message: "feat: add retry budget to the sync client",
		Diff:    "diff --git a/sync.go b/sync.go",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if scorer.commitCalls != 1 {
		t.Errorf("scorer calls = %d, want 1", scorer.commitCalls)
	}
	if gen.calls != 0 {
		t.Errorf("generator called for a sub-threshold commit")
	}
	if len(pub.created) != 0 {
		t.Errorf("post created for a sub-threshold commit")
	}
}

func TestCommitRunPublishesAndSummarizes(t *testing.T) {
	t.Parallel()

	scorer := &fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 9, TopicSummary: "streaming ingestion rewrite"}}
	gen := &fakeGenerator{post: domain.GeneratedPost{
		Title:       "Rewriting Ingestion for Streaming",
		Slug:        "rewriting-ingestion",
		HTMLContent: "<p>body</p>",
	}}
	shots := &fakeCapturer{result: ports.Acquisition{Images: []domain.Image{
		{Filename: "screenshot-1.png", Bytes: []byte{1}},
	}}}
	photos := &fakePhotos{result: ports.Acquisition{Images: []domain.Image{
		{Filename: "unsplash-abc.jpg", Bytes: []byte{2}, Attribution: `<p class="photo-credit">Photo by A on Unsplash</p>`},
	}}}
	pub := &fakePublisher{}
	notifier := &fakeNotifier{}
	out := &bytes.Buffer{}
	p := NewCommitPipeline(CommitDeps{
		Scorer: scorer, Generator: gen, Screenshots: shots, Photos: photos,
		Publisher: pub, Notifier: notifier,
		Logger: testLogger(), Threshold: 7,
		ScreenshotURLs: []string{"https://app.example.com"}, StockPhotoCount: 1,
		Out: out,
	})

	err := p.Run(context.Background(), domain.CommitEvent{
		Message: "feat: streaming ingestion",
		Diff:    "diff --git a/ingest.go b/ingest.go",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(pub.created) != 1 {
		t.Fatalf("posts created = %d, want 1", len(pub.created))
	}
	created := pub.created[0]
	if !strings.Contains(created.HTMLContent, "unsplash-attribution") {
		t.Errorf("stock attribution not appended to content: %q", created.HTMLContent)
	}
	if got := pub.createdMedia[0]; len(got) != 2 {
		t.Errorf("media ids attached = %v, want both uploads", got)
	}
	if len(notifier.notes) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.notes))
	}
	if notifier.notes[0].Kind != domain.KindCommit || notifier.notes[0].Score != 9 {
		t.Errorf("notification = %+v", notifier.notes[0])
	}

	var summary CommitSummary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("summary not valid JSON: %v", err)
	}
	if summary.WorthinessScore != 9 || summary.Title != "Rewriting Ingestion for Streaming" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.PostID == 0 || summary.PostURL == "" {
		t.Errorf("summary missing post identity: %+v", summary)
	}
}

func TestCommitRunToleratesDegradedMedia(t *testing.T) {
	t.Parallel()

	scorer := &fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 8, TopicSummary: "cache layer"}}
	gen := &fakeGenerator{post: domain.GeneratedPost{Title: "Cache Layer", Slug: "cache-layer", HTMLContent: "<p>x</p>"}}
	shots := &fakeCapturer{result: ports.Acquisition{Degraded: []string{"https://app.example.com: browser launch failed"}}}
	photos := &fakePhotos{result: ports.Acquisition{Degraded: []string{"unsplash: 503"}}}
	pub := &fakePublisher{}
	out := &bytes.Buffer{}
	p := NewCommitPipeline(CommitDeps{
		Scorer: scorer, Generator: gen, Screenshots: shots, Photos: photos,
		Publisher: pub, Logger: testLogger(), Threshold: 7,
		ScreenshotURLs: []string{"https://app.example.com"}, StockPhotoCount: 1,
		Out: out,
	})

	err := p.Run(context.Background(), domain.CommitEvent{
		Message: "feat: cache layer",
		Diff:    "diff --git a/cache.go b/cache.go",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(pub.created) != 1 {
		t.Fatalf("post not created despite degraded media")
	}
	if len(pub.createdMedia[0]) != 0 {
		t.Errorf("media ids attached with no images uploaded: %v", pub.createdMedia[0])
	}
	if len(gen.lastScreenshots) != 0 {
		t.Errorf("generator received images from a degraded capture")
	}
}

func TestCommitRunToleratesPartialUploadFailure(t *testing.T) {
	t.Parallel()

	scorer := &fakeScorer{commitEval: domain.WorthinessEvaluation{Score: 8, TopicSummary: "api gateway"}}
	gen := &fakeGenerator{post: domain.GeneratedPost{Title: "Gateway", Slug: "gateway", HTMLContent: "<p>x</p>"}}
	shots := &fakeCapturer{result: ports.Acquisition{Images: []domain.Image{
		{Filename: "screenshot-1.png"},
		{Filename: "screenshot-2.png"},
	}}}
	pub := &fakePublisher{uploadErrFor: map[string]bool{"screenshot-1.png": true}}
	out := &bytes.Buffer{}
	p := NewCommitPipeline(CommitDeps{
		Scorer: scorer, Generator: gen, Screenshots: shots,
		Publisher: pub, Logger: testLogger(), Threshold: 7,
		ScreenshotURLs: []string{"https://app.example.com"},
		Out:            out,
	})

	err := p.Run(context.Background(), domain.CommitEvent{
		Message: "feat: gateway",
		Diff:    "diff --git a/gw.go b/gw.go",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := pub.createdMedia[0]; len(got) != 1 {
		t.Errorf("media ids = %v, want the one successful upload", got)
	}
}
