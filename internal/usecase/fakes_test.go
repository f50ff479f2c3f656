package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"ContentForge/internal/domain"
	"ContentForge/internal/pillars"
	"ContentForge/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeScorer struct {
	commitEval   domain.WorthinessEvaluation
	showcaseEval domain.WorthinessEvaluation
	progressEval domain.WorthinessEvaluation
	err          error

	commitCalls   int
	showcaseCalls int
	progressCalls int
}

func (f *fakeScorer) EvaluateCommit(context.Context, string, string) (domain.WorthinessEvaluation, error) {
	f.commitCalls++
	return f.commitEval, f.err
}

func (f *fakeScorer) EvaluateShowcase(context.Context, domain.ProjectInfo) (domain.WorthinessEvaluation, error) {
	f.showcaseCalls++
	return f.showcaseEval, f.err
}

func (f *fakeScorer) EvaluateProgress(context.Context, domain.ProjectInfo, []domain.CommitRef) (domain.WorthinessEvaluation, error) {
	f.progressCalls++
	return f.progressEval, f.err
}

type fakeGenerator struct {
	post  domain.GeneratedPost
	err   error
	calls int

	lastScreenshots []domain.Image
}

func (f *fakeGenerator) FromCommit(_ context.Context, _ domain.CommitEvent, _ domain.WorthinessEvaluation, shots []domain.Image) (domain.GeneratedPost, error) {
	f.calls++
	f.lastScreenshots = shots
	return f.post, f.err
}

func (f *fakeGenerator) FromPillar(context.Context, pillars.Selection) (domain.GeneratedPost, error) {
	f.calls++
	return f.post, f.err
}

func (f *fakeGenerator) ShowcasePost(_ context.Context, _ domain.ProjectInfo, shots []domain.Image) (domain.GeneratedPost, error) {
	f.calls++
	f.lastScreenshots = shots
	return f.post, f.err
}

func (f *fakeGenerator) ProgressPost(_ context.Context, _ domain.ProjectInfo, _ string, _ []domain.CommitRef, shots []domain.Image) (domain.GeneratedPost, error) {
	f.calls++
	f.lastScreenshots = shots
	return f.post, f.err
}

type fakeCapturer struct {
	result ports.Acquisition
	calls  int
}

func (f *fakeCapturer) Capture(context.Context, []string) ports.Acquisition {
	f.calls++
	return f.result
}

type fakePhotos struct {
	result      ports.Acquisition
	calls       int
	lastKeyword string
}

func (f *fakePhotos) Search(_ context.Context, keyword string, _ int) ports.Acquisition {
	f.calls++
	f.lastKeyword = keyword
	return f.result
}

type fakeFetcher struct {
	result ports.Acquisition
}

func (f *fakeFetcher) Fetch(context.Context, []string) ports.Acquisition {
	return f.result
}

type fakePublisher struct {
	uploadErrFor map[string]bool
	nextMediaID  int
	created      []domain.GeneratedPost
	createdMedia [][]int
	createErr    error
}

func (f *fakePublisher) UploadMedia(_ context.Context, img domain.Image) (int, string, error) {
	if f.uploadErrFor[img.Filename] {
		return 0, "", fmt.Errorf("upload rejected")
	}
	f.nextMediaID++
	return f.nextMediaID, "https://cdn.example.com/" + img.Filename, nil
}

func (f *fakePublisher) ResolveCategories(context.Context, []string) ([]int, error) {
	return nil, nil
}

func (f *fakePublisher) ResolveOrCreateTags(context.Context, []string) ([]int, error) {
	return nil, nil
}

func (f *fakePublisher) CreatePost(_ context.Context, post domain.GeneratedPost, mediaIDs []int) (domain.PublishedPost, error) {
	if f.createErr != nil {
		return domain.PublishedPost{}, f.createErr
	}
	f.created = append(f.created, post)
	f.createdMedia = append(f.createdMedia, mediaIDs)
	return domain.PublishedPost{ID: 100 + len(f.created), Link: "https://blog.example.com/" + post.Slug, Status: "draft"}, nil
}

type fakeNotifier struct {
	notes []ports.Notification
}

func (f *fakeNotifier) NotifyPublished(_ context.Context, n ports.Notification) {
	f.notes = append(f.notes, n)
}

type fakeHost struct {
	repos     []domain.ProjectInfo
	listErr   error
	gathered  map[string]domain.ProjectInfo
	gatherErr map[string]error
	commits   map[string][]domain.CommitRef
	diffs     map[string]string

	gatherCalls int
}

func (f *fakeHost) ListRepositories(context.Context, string) ([]domain.ProjectInfo, error) {
	return f.repos, f.listErr
}

func (f *fakeHost) GatherProjectInfo(_ context.Context, info domain.ProjectInfo) (domain.ProjectInfo, error) {
	f.gatherCalls++
	if err := f.gatherErr[info.FullName]; err != nil {
		return info, err
	}
	if full, ok := f.gathered[info.FullName]; ok {
		return full, nil
	}
	return info, nil
}

func (f *fakeHost) ListCommits(_ context.Context, fullName, _ string, _ int) ([]domain.CommitRef, error) {
	commits, ok := f.commits[fullName]
	if !ok {
		return nil, fmt.Errorf("no commits for %s", fullName)
	}
	return commits, nil
}

func (f *fakeHost) CommitDiff(_ context.Context, fullName, sha string) (string, error) {
	diff, ok := f.diffs[fullName+"@"+sha]
	if !ok {
		return "", fmt.Errorf("no diff for %s@%s", fullName, sha)
	}
	return diff, nil
}
