// Package usecase holds the pipeline orchestrators: commit, weekly,
// poll, and watch. Each pipeline wires the same driven adapters behind
// a Deps struct and reports a JSON summary on success.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"ContentForge/internal/domain"
	"ContentForge/internal/pillars"
	"ContentForge/internal/ports"
)

// Scorer gates content-worthiness decisions for all pipelines.
type Scorer interface {
	EvaluateCommit(ctx context.Context, message, diff string) (domain.WorthinessEvaluation, error)
	EvaluateShowcase(ctx context.Context, info domain.ProjectInfo) (domain.WorthinessEvaluation, error)
	EvaluateProgress(ctx context.Context, info domain.ProjectInfo, commits []domain.CommitRef) (domain.WorthinessEvaluation, error)
}

// Generator produces a structured article for each content kind.
type Generator interface {
	FromCommit(ctx context.Context, commit domain.CommitEvent, eval domain.WorthinessEvaluation, screenshots []domain.Image) (domain.GeneratedPost, error)
	FromPillar(ctx context.Context, sel pillars.Selection) (domain.GeneratedPost, error)
	ShowcasePost(ctx context.Context, info domain.ProjectInfo, screenshots []domain.Image) (domain.GeneratedPost, error)
	ProgressPost(ctx context.Context, info domain.ProjectInfo, milestone string, commits []domain.CommitRef, screenshots []domain.Image) (domain.GeneratedPost, error)
}

// acquireMedia fans out screenshot capture and stock-photo search, then
// joins both results. Neither producer can fail the caller; degradation
// reasons are logged and the smaller result set is used as-is.
func acquireMedia(ctx context.Context, shots ports.ScreenshotCapturer, photos ports.PhotoSource,
	urls []string, keyword string, count int, logger *slog.Logger) (screenshots, stock ports.Acquisition) {

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if shots != nil {
			screenshots = shots.Capture(ctx, urls)
		}
	}()
	go func() {
		defer wg.Done()
		if photos != nil {
			stock = photos.Search(ctx, keyword, count)
		}
	}()
	wg.Wait()

	for _, reason := range append(screenshots.Degraded, stock.Degraded...) {
		logger.Warn("media acquisition degraded", "reason", reason)
	}
	return screenshots, stock
}

// appendAttributions merges stock-photo credit HTML into the post body.
func appendAttributions(post domain.GeneratedPost, stock []domain.Image) domain.GeneratedPost {
	var credits []string
	for _, img := range stock {
		if img.Attribution != "" {
			credits = append(credits, img.Attribution)
		}
	}
	if len(credits) == 0 {
		return post
	}
	post.HTMLContent += "\n\n<!-- Unsplash Attribution -->\n<div class=\"unsplash-attribution\">\n" +
		strings.Join(credits, "\n") + "\n</div>"
	return post
}

// uploadImages pushes every image to the publisher, tolerating per-item
// failures. Returned ids preserve input order of the successful uploads.
func uploadImages(ctx context.Context, publisher ports.Publisher, images []domain.Image, logger *slog.Logger) []int {
	var ids []int
	for _, img := range images {
		id, _, err := publisher.UploadMedia(ctx, img)
		if err != nil {
			logger.Warn("media upload failed", "filename", img.Filename, "error", err)
			continue
		}
		logger.Info("media uploaded", "filename", img.Filename, "id", id)
		ids = append(ids, id)
	}
	return ids
}

// writeSummary emits the machine-readable run summary to stdout (or the
// injected writer in tests).
func writeSummary(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// recordPublish appends to the audit log; persistence failure never fails
// a pipeline that already published.
func recordPublish(ctx context.Context, log ports.PublishLog, rec domain.PublishRecord, logger *slog.Logger) {
	if log == nil {
		return
	}
	if err := log.Record(ctx, rec); err != nil {
		logger.Warn("publish log record failed", "postId", rec.PostID, "error", err)
	}
}
