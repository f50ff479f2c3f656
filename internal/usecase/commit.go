package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"ContentForge/internal/classifier"
	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

// CommitDeps wires the commit pipeline's adapters.
type CommitDeps struct {
	Scorer      Scorer
	Generator   Generator
	Screenshots ports.ScreenshotCapturer
	Photos      ports.PhotoSource
	Publisher   ports.Publisher
	Notifier    ports.Notifier
	PublishLog  ports.PublishLog
	Logger      *slog.Logger

	Threshold       int
	ScreenshotURLs  []string
	StockPhotoCount int
	Out             io.Writer
}

// CommitPipeline turns a single worthy commit into a published draft:
// classifier gate, worthiness gate, parallel media acquisition, article
// generation, publish, notify.
type CommitPipeline struct {
	deps CommitDeps
}

// CommitSummary is the JSON document written to stdout on completion.
type CommitSummary struct {
	PostID          int    `json:"postId"`
	PostURL         string `json:"postUrl"`
	WorthinessScore int    `json:"worthinessScore"`
	Title           string `json:"title"`
	Status          string `json:"status"`
}

func NewCommitPipeline(deps CommitDeps) *CommitPipeline {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	return &CommitPipeline{deps: deps}
}

// Run executes the pipeline for one commit. A gated commit (skip rules or
// sub-threshold score) returns nil without publishing; gating is a normal
// outcome, not an error.
func (p *CommitPipeline) Run(ctx context.Context, commit domain.CommitEvent) error {
	d := p.deps

	if classifier.ShouldSkip(commit.Message, commit.AuthorLogin) {
		d.Logger.Info("skipping commit: matches skip pattern")
		return nil
	}

	eval, err := d.Scorer.EvaluateCommit(ctx, commit.Message, commit.Diff)
	if err != nil {
		return fmt.Errorf("evaluate worthiness: %w", err)
	}
	d.Logger.Info("worthiness evaluated", "score", eval.Score, "topic", eval.TopicSummary)

	if eval.Score < d.Threshold {
		d.Logger.Info("skipping commit: below threshold", "score", eval.Score, "threshold", d.Threshold)
		return nil
	}

	screenshots, stock := acquireMedia(ctx, d.Screenshots, d.Photos,
		d.ScreenshotURLs, eval.TopicSummary, d.StockPhotoCount, d.Logger)

	post, err := d.Generator.FromCommit(ctx, commit, eval, screenshots.Images)
	if err != nil {
		return err
	}
	post = appendAttributions(post, stock.Images)

	allImages := append(screenshots.Images, stock.Images...)
	mediaIDs := uploadImages(ctx, d.Publisher, allImages, d.Logger)

	published, err := d.Publisher.CreatePost(ctx, post, mediaIDs)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	d.Logger.Info("post created", "link", published.Link, "status", published.Status)

	if d.Notifier != nil {
		d.Notifier.NotifyPublished(ctx, ports.Notification{
			Title: post.Title,
			Link:  published.Link,
			Kind:  domain.KindCommit,
			Score: eval.Score,
		})
	}

	recordPublish(ctx, d.PublishLog, domain.PublishRecord{
		PostID:    published.ID,
		Title:     post.Title,
		Link:      published.Link,
		Kind:      domain.KindCommit,
		Score:     eval.Score,
		Status:    published.Status,
		CreatedAt: time.Now().UTC(),
	}, d.Logger)

	return writeSummary(d.Out, CommitSummary{
		PostID:          published.ID,
		PostURL:         published.Link,
		WorthinessScore: eval.Score,
		Title:           post.Title,
		Status:          published.Status,
	})
}
