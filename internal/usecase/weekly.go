package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/pillars"
	"ContentForge/internal/ports"
)

// WeeklyDeps wires the thought-leadership pipeline's adapters.
type WeeklyDeps struct {
	Generator  Generator
	Photos     ports.PhotoSource
	Publisher  ports.Publisher
	Notifier   ports.Notifier
	PublishLog ports.PublishLog
	Logger     *slog.Logger

	StockPhotoCount int
	Out             io.Writer
}

// WeeklyPipeline publishes one thought-leadership article for the current
// ISO week's deterministic pillar/angle pair. No worthiness gate: the
// schedule itself is the gate.
type WeeklyPipeline struct {
	deps WeeklyDeps
}

// WeeklySummary is the JSON document written to stdout on completion.
type WeeklySummary struct {
	PostID      int    `json:"postId"`
	PostURL     string `json:"postUrl"`
	PillarIndex int    `json:"pillarIndex"`
	AngleIndex  int    `json:"angleIndex"`
	WeekNumber  int    `json:"weekNumber"`
	PillarName  string `json:"pillarName"`
	Angle       string `json:"angle"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}

func NewWeeklyPipeline(deps WeeklyDeps) *WeeklyPipeline {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	return &WeeklyPipeline{deps: deps}
}

// Run generates and publishes the article for the given date.
func (p *WeeklyPipeline) Run(ctx context.Context, date time.Time) error {
	d := p.deps

	sel := pillars.Select(date)
	d.Logger.Info("pillar selected",
		"week", sel.WeekNumber,
		"pillar", sel.Pillar.Name, "pillarIndex", sel.PillarIndex,
		"angle", sel.Angle, "angleIndex", sel.AngleIndex)

	// Thought leadership has no screenshots; stock photos only.
	var stock ports.Acquisition
	if d.Photos != nil {
		stock = d.Photos.Search(ctx, sel.Pillar.Name, d.StockPhotoCount)
		for _, reason := range stock.Degraded {
			d.Logger.Warn("media acquisition degraded", "reason", reason)
		}
	}

	post, err := d.Generator.FromPillar(ctx, sel)
	if err != nil {
		return err
	}
	post = appendAttributions(post, stock.Images)

	mediaIDs := uploadImages(ctx, d.Publisher, stock.Images, d.Logger)

	published, err := d.Publisher.CreatePost(ctx, post, mediaIDs)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	d.Logger.Info("post created", "link", published.Link, "status", published.Status)

	if d.Notifier != nil {
		d.Notifier.NotifyPublished(ctx, ports.Notification{
			Title:  post.Title,
			Link:   published.Link,
			Kind:   domain.KindWeekly,
			Pillar: sel.Pillar.Name,
			Angle:  sel.Angle,
			Week:   sel.WeekNumber,
		})
	}

	recordPublish(ctx, d.PublishLog, domain.PublishRecord{
		PostID:    published.ID,
		Title:     post.Title,
		Link:      published.Link,
		Kind:      domain.KindWeekly,
		Status:    published.Status,
		CreatedAt: time.Now().UTC(),
	}, d.Logger)

	return writeSummary(d.Out, WeeklySummary{
		PostID:      published.ID,
		PostURL:     published.Link,
		PillarIndex: sel.PillarIndex,
		AngleIndex:  sel.AngleIndex,
		WeekNumber:  sel.WeekNumber,
		PillarName:  sel.Pillar.Name,
		Angle:       sel.Angle,
		Title:       post.Title,
		Status:      published.Status,
	})
}
