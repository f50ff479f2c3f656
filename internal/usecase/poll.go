package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
	"ContentForge/internal/state"
)

const (
	maxScreenshotSources = 5
	progressCommitWindow = 30
	sparseCommitMinimum  = 3
)

var imageURLRe = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|webp)(\?|$)`)

func isImageURL(u string) bool {
	return imageURLRe.MatchString(u)
}

// PollDeps wires the repository poller's adapters.
type PollDeps struct {
	Host        ports.RepoHost
	Scorer      Scorer
	Generator   Generator
	Screenshots ports.ScreenshotCapturer
	Fetcher     ports.ImageFetcher
	Photos      ports.PhotoSource
	Publisher   ports.Publisher
	Notifier    ports.Notifier
	PublishLog  ports.PublishLog
	States      *state.RepoStateStore
	Logger      *slog.Logger

	Owner           string
	SelfRepo        string
	Threshold       int
	StockPhotoCount int
	Out             io.Writer
}

// PollPipeline walks every active repository of the configured owner.
// Repositories without a showcase record are evaluated for a first
// showcase post; showcased repositories are checked for progress since
// the stored commit cursor.
type PollPipeline struct {
	deps PollDeps
}

// PollSummary is the JSON document written to stdout after a full run.
type PollSummary struct {
	ReposScanned     int `json:"reposScanned"`
	ShowcasesCreated int `json:"showcasesCreated"`
	ProgressCreated  int `json:"progressCreated"`
}

func NewPollPipeline(deps PollDeps) *PollPipeline {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	return &PollPipeline{deps: deps}
}

// Run executes one full poll. A single repository's failure is logged and
// the loop continues; the state file is saved once at the end, so a crash
// mid-run loses in-memory cursor advances, an accepted trade-off for a
// single scheduled runner.
func (p *PollPipeline) Run(ctx context.Context) error {
	d := p.deps
	st := d.States.Load()

	repos, err := d.Host.ListRepositories(ctx, d.Owner)
	if err != nil {
		return fmt.Errorf("list repositories: %w", err)
	}
	d.Logger.Info("poll started", "owner", d.Owner, "repos", len(repos), "threshold", d.Threshold)

	summary := PollSummary{ReposScanned: len(repos)}

	for _, repo := range repos {
		if repo.FullName == d.SelfRepo {
			d.Logger.Info("skipping self repo", "repo", repo.FullName)
			continue
		}

		repoState, showcased := st.PostedRepos[repo.FullName]
		var runErr error
		if !showcased {
			runErr = p.runShowcase(ctx, repo, &st, &summary)
		} else {
			runErr = p.runProgress(ctx, repo, repoState, &st, &summary)
		}
		if runErr != nil {
			d.Logger.Error("repository processing failed", "repo", repo.FullName, "error", runErr)
		}
	}

	if err := d.States.Save(st); err != nil {
		return fmt.Errorf("save poll state: %w", err)
	}

	d.Logger.Info("poll finished",
		"scanned", summary.ReposScanned,
		"showcases", summary.ShowcasesCreated,
		"progress", summary.ProgressCreated)
	return writeSummary(d.Out, summary)
}

// runShowcase handles a repository with no showcase record yet.
func (p *PollPipeline) runShowcase(ctx context.Context, repo domain.ProjectInfo, st *state.RepoStateFile, summary *PollSummary) error {
	d := p.deps

	info, err := d.Host.GatherProjectInfo(ctx, repo)
	if err != nil {
		return fmt.Errorf("gather project info: %w", err)
	}

	// Too sparse to evaluate; no scorer call spent on it.
	if info.CommitsSampled < sparseCommitMinimum && info.Readme == "" {
		d.Logger.Info("skipping repo: too sparse", "repo", info.FullName,
			"commits", info.CommitsSampled)
		return nil
	}

	eval, err := d.Scorer.EvaluateShowcase(ctx, info)
	if err != nil {
		return fmt.Errorf("evaluate showcase: %w", err)
	}
	d.Logger.Info("showcase evaluated", "repo", info.FullName, "score", eval.Score, "reasoning", eval.Reasoning)

	if eval.Score < d.Threshold {
		d.Logger.Info("skipping repo: below showcase threshold", "repo", info.FullName, "score", eval.Score)
		return nil
	}

	screenshots := p.gatherScreenshots(ctx, info)

	post, err := d.Generator.ShowcasePost(ctx, info, screenshots)
	if err != nil {
		return err
	}

	published, err := p.publish(ctx, &post, screenshots, info.Name)
	if err != nil {
		return err
	}
	d.Logger.Info("showcase published", "repo", info.FullName, "link", published.Link)

	cursor := ""
	if len(info.RecentCommits) > 0 {
		cursor = info.RecentCommits[0].SHA
	}
	st.PostedRepos[info.FullName] = domain.RepoPollState{
		ShowcasePostID:  published.ID,
		ShowcaseDate:    time.Now().UTC().Format(time.RFC3339),
		LastProgressSHA: cursor,
	}

	p.finish(ctx, post, published, info.FullName, domain.KindShowcase, eval.Score)
	summary.ShowcasesCreated++
	return nil
}

// runProgress handles a repository whose showcase already exists.
func (p *PollPipeline) runProgress(ctx context.Context, repo domain.ProjectInfo, repoState domain.RepoPollState, st *state.RepoStateFile, summary *PollSummary) error {
	d := p.deps

	commits, err := d.Host.ListCommits(ctx, repo.FullName, repo.DefaultBranch, progressCommitWindow)
	if err != nil {
		d.Logger.Info("skipping repo: could not fetch commits", "repo", repo.FullName, "error", err)
		return nil
	}

	// Collect commits newer than the cursor; stop scanning at the first
	// SHA matching the stored prefix.
	var newCommits []domain.CommitRef
	for _, c := range commits {
		if repoState.LastProgressSHA != "" && strings.HasPrefix(c.SHA, repoState.LastProgressSHA) {
			break
		}
		newCommits = append(newCommits, c)
	}
	if len(newCommits) == 0 {
		d.Logger.Info("skipping repo: no new commits", "repo", repo.FullName)
		return nil
	}
	d.Logger.Info("new commits since last post", "repo", repo.FullName, "count", len(newCommits))

	info, err := d.Host.GatherProjectInfo(ctx, repo)
	if err != nil {
		return fmt.Errorf("gather project info: %w", err)
	}

	eval, err := d.Scorer.EvaluateProgress(ctx, info, newCommits)
	if err != nil {
		return fmt.Errorf("evaluate progress: %w", err)
	}
	d.Logger.Info("progress evaluated", "repo", info.FullName, "score", eval.Score, "reasoning", eval.Reasoning)

	if eval.Score < d.Threshold {
		d.Logger.Info("skipping repo: below progress threshold", "repo", info.FullName, "score", eval.Score)
		return nil
	}

	screenshots := p.gatherScreenshots(ctx, info)

	post, err := d.Generator.ProgressPost(ctx, info, eval.TopicSummary, newCommits, screenshots)
	if err != nil {
		return err
	}

	published, err := p.publish(ctx, &post, screenshots, info.Name)
	if err != nil {
		return err
	}
	d.Logger.Info("progress published", "repo", info.FullName, "link", published.Link)

	repoState.LastProgressSHA = newCommits[0].SHA
	repoState.LastProgressDate = time.Now().UTC().Format(time.RFC3339)
	st.PostedRepos[info.FullName] = repoState

	p.finish(ctx, post, published, info.FullName, domain.KindProgress, eval.Score)
	summary.ProgressCreated++
	return nil
}

// gatherScreenshots collects candidate visuals: the live homepage through
// the browser, static images from the repository's screenshots directory
// and readme, capped at five sources total.
func (p *PollPipeline) gatherScreenshots(ctx context.Context, info domain.ProjectInfo) []domain.Image {
	d := p.deps

	var live, direct []string
	seen := map[string]bool{}
	add := func(u string) {
		if u == "" || seen[u] || len(live)+len(direct) >= maxScreenshotSources {
			return
		}
		seen[u] = true
		if isImageURL(u) {
			direct = append(direct, u)
		} else {
			live = append(live, u)
		}
	}

	add(info.Homepage)
	for _, u := range info.RepoScreenshots {
		add(u)
	}
	for _, u := range info.ReadmeImages {
		add(u)
	}

	var images []domain.Image
	if len(live) > 0 && d.Screenshots != nil {
		acq := d.Screenshots.Capture(ctx, live)
		for _, reason := range acq.Degraded {
			d.Logger.Warn("media acquisition degraded", "reason", reason)
		}
		images = append(images, acq.Images...)
	}
	if len(direct) > 0 && d.Fetcher != nil {
		acq := d.Fetcher.Fetch(ctx, direct)
		for _, reason := range acq.Degraded {
			d.Logger.Warn("media acquisition degraded", "reason", reason)
		}
		images = append(images, acq.Images...)
	}
	return images
}

// publish uploads screenshots, falling back to stock photos when none
// uploaded, then creates the post.
func (p *PollPipeline) publish(ctx context.Context, post *domain.GeneratedPost, screenshots []domain.Image, fallbackKeyword string) (domain.PublishedPost, error) {
	d := p.deps

	mediaIDs := uploadImages(ctx, d.Publisher, screenshots, d.Logger)

	if len(mediaIDs) == 0 && d.Photos != nil {
		keyword := fallbackKeyword + " software"
		d.Logger.Info("no screenshots uploaded, searching stock photos", "keyword", keyword)
		stock := d.Photos.Search(ctx, keyword, d.StockPhotoCount)
		for _, reason := range stock.Degraded {
			d.Logger.Warn("media acquisition degraded", "reason", reason)
		}
		*post = appendAttributions(*post, stock.Images)
		mediaIDs = uploadImages(ctx, d.Publisher, stock.Images, d.Logger)
	}

	published, err := d.Publisher.CreatePost(ctx, *post, mediaIDs)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("create post: %w", err)
	}
	return published, nil
}

func (p *PollPipeline) finish(ctx context.Context, post domain.GeneratedPost, published domain.PublishedPost, repoName, kind string, score int) {
	d := p.deps

	if d.Notifier != nil {
		d.Notifier.NotifyPublished(ctx, ports.Notification{
			Title:    post.Title,
			Link:     published.Link,
			Kind:     kind,
			RepoName: repoName,
			Score:    score,
		})
	}

	recordPublish(ctx, d.PublishLog, domain.PublishRecord{
		PostID:    published.ID,
		Title:     post.Title,
		Link:      published.Link,
		Kind:      kind,
		RepoName:  repoName,
		Score:     score,
		Status:    published.Status,
		CreatedAt: time.Now().UTC(),
	}, d.Logger)
}
