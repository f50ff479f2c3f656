package ports

import (
	"context"
	"time"

	"ContentForge/internal/domain"
)

// Completer sends a prompt pair to the language-model service and returns
// raw structured JSON text. Implementations fail on any non-success response.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest carries one completion call's inputs. Images are optional
// vision attachments prepended to the user message.
type CompletionRequest struct {
	System    string
	User      string
	Images    []domain.Image
	MaxTokens int
}

// ScreenshotCapturer rasterizes live page URLs. Never returns an error for
// per-URL or launch failures; degradation reasons travel in the result.
type ScreenshotCapturer interface {
	Capture(ctx context.Context, urls []string) Acquisition
}

// PhotoSource searches a stock-photo service by keyword. Absent credentials
// yield an empty Acquisition without a network call.
type PhotoSource interface {
	Search(ctx context.Context, keyword string, count int) Acquisition
}

// ImageFetcher downloads static image files directly, for repository
// screenshots that are plain PNG/JPG URLs needing no browser.
type ImageFetcher interface {
	Fetch(ctx context.Context, urls []string) Acquisition
}

// Acquisition is the Ok/Degraded result of a best-effort media producer:
// always a valid (possibly empty) image set, with per-failure reasons kept
// instead of errors.
type Acquisition struct {
	Images   []domain.Image
	Degraded []string
}

// Publisher is the content-management backend surface.
type Publisher interface {
	UploadMedia(ctx context.Context, img domain.Image) (id int, url string, err error)
	ResolveCategories(ctx context.Context, slugs []string) ([]int, error)
	ResolveOrCreateTags(ctx context.Context, names []string) ([]int, error)
	CreatePost(ctx context.Context, post domain.GeneratedPost, mediaIDs []int) (domain.PublishedPost, error)
}

// Notifier delivers best-effort operator notifications. Implementations
// never propagate failures and no-op silently without credentials.
type Notifier interface {
	NotifyPublished(ctx context.Context, n Notification)
}

// Notification describes a successfully created draft.
type Notification struct {
	Title    string
	Link     string
	Kind     string
	RepoName string
	Pillar   string
	Angle    string
	Week     int
	Score    int
}

// RepoHost is the source-control hosting API consumed by the pollers.
type RepoHost interface {
	ListRepositories(ctx context.Context, owner string) ([]domain.ProjectInfo, error)
	GatherProjectInfo(ctx context.Context, info domain.ProjectInfo) (domain.ProjectInfo, error)
	ListCommits(ctx context.Context, fullName, branch string, limit int) ([]domain.CommitRef, error)
	CommitDiff(ctx context.Context, fullName, sha string) (string, error)
}

// PublishLog records published posts for audit/history. A nil-backed
// implementation is a no-op.
type PublishLog interface {
	Record(ctx context.Context, rec domain.PublishRecord) error
	Recent(ctx context.Context, limit int) ([]domain.PublishRecord, error)
}

// Scheduler controls when recurring pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, spec string, job func(time.Time)) error
	Stop(ctx context.Context) error
}
