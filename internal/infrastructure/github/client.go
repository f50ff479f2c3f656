// Package github implements the repository-hosting adapter against the
// GitHub REST API: repo listing, project intelligence gathering, commit
// history and diffs.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const (
	apiBase        = "https://api.github.com"
	apiVersion     = "2022-11-28"
	acceptJSON     = "application/vnd.github+json"
	acceptRaw      = "application/vnd.github.raw"
	readmeMaxBytes = 8000
	diffMaxBytes   = 100_000
	commitSample   = 30
)

var _ ports.RepoHost = (*Client)(nil)

// Client is a token-authenticated GitHub REST client.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(token string, logger *slog.Logger) *Client {
	return &Client{
		token:      token,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// WithBaseURL points the client at a different API root, for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type repoRecord struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	HTMLURL       string   `json:"html_url"`
	Homepage      string   `json:"homepage"`
	Topics        []string `json:"topics"`
	DefaultBranch string   `json:"default_branch"`
	CreatedAt     string   `json:"created_at"`
	PushedAt      string   `json:"pushed_at"`
	Stars         int      `json:"stargazers_count"`
	Archived      bool     `json:"archived"`
	Fork          bool     `json:"fork"`
}

type commitRecord struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
}

type contentRecord struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// ListRepositories pages through the owner's repositories, trying the org
// endpoint first and falling back to the user endpoint, and filters out
// archived and forked repos.
func (c *Client) ListRepositories(ctx context.Context, owner string) ([]domain.ProjectInfo, error) {
	var all []repoRecord
	useOrg := true
	page := 1
	for {
		endpoint := fmt.Sprintf("/orgs/%s/repos?type=all&sort=pushed&per_page=100&page=%d", owner, page)
		if !useOrg {
			endpoint = fmt.Sprintf("/users/%s/repos?sort=pushed&per_page=100&page=%d", owner, page)
		}

		var batch []repoRecord
		if err := c.getJSON(ctx, endpoint, &batch); err != nil {
			if page == 1 && useOrg {
				c.debug("org endpoint unavailable, trying user endpoint", "owner", owner)
				useOrg = false
				continue
			}
			return nil, fmt.Errorf("list repositories for %s: %w", owner, err)
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		page++
	}

	infos := make([]domain.ProjectInfo, 0, len(all))
	for _, r := range all {
		if r.Archived || r.Fork {
			continue
		}
		infos = append(infos, domain.ProjectInfo{
			Name:          r.Name,
			FullName:      r.FullName,
			Description:   r.Description,
			URL:           r.HTMLURL,
			Homepage:      r.Homepage,
			Topics:        r.Topics,
			DefaultBranch: r.DefaultBranch,
			CreatedAt:     parseTime(r.CreatedAt),
			PushedAt:      parseTime(r.PushedAt),
			Stars:         r.Stars,
		})
	}
	return infos, nil
}

// GatherProjectInfo enriches a listed repository with languages, readme,
// root files, a recent commit sample and candidate screenshot sources.
// Each sub-fetch failure degrades to an empty value rather than aborting.
func (c *Client) GatherProjectInfo(ctx context.Context, info domain.ProjectInfo) (domain.ProjectInfo, error) {
	full := info.FullName
	if full == "" {
		return info, fmt.Errorf("gather project info: repository full name is empty")
	}

	if err := c.getJSON(ctx, "/repos/"+full+"/languages", &info.Languages); err != nil {
		c.debug("languages unavailable", "repo", full, "error", err)
		info.Languages = map[string]int{}
	}

	readme, err := c.getRaw(ctx, "/repos/"+full+"/readme")
	if err != nil {
		c.debug("readme unavailable", "repo", full, "error", err)
	} else {
		if len(readme) > readmeMaxBytes {
			readme = readme[:readmeMaxBytes] + "\n\n[README truncated]"
		}
		info.Readme = readme
	}

	var rootContents []contentRecord
	if err := c.getJSON(ctx, "/repos/"+full+"/contents/", &rootContents); err != nil {
		c.debug("root listing unavailable", "repo", full, "error", err)
	}
	for _, f := range rootContents {
		info.RootFiles = append(info.RootFiles, f.Name)
	}

	commits, err := c.ListCommits(ctx, full, info.DefaultBranch, commitSample)
	if err != nil {
		c.debug("commit sample unavailable", "repo", full, "error", err)
	}
	info.RecentCommits = commits
	info.CommitsSampled = len(commits)

	info.ReadmeImages = extractReadmeImages(info.Readme, full, info.DefaultBranch)
	info.RepoScreenshots = c.screenshotsDir(ctx, full)

	return info, nil
}

// ListCommits returns up to limit commits on the given branch, newest first.
// SHAs are shortened to 7 characters and messages cut at the first line.
func (c *Client) ListCommits(ctx context.Context, fullName, branch string, limit int) ([]domain.CommitRef, error) {
	endpoint := fmt.Sprintf("/repos/%s/commits?sha=%s&per_page=%d", fullName, branch, limit)
	var records []commitRecord
	if err := c.getJSON(ctx, endpoint, &records); err != nil {
		return nil, fmt.Errorf("list commits for %s: %w", fullName, err)
	}

	refs := make([]domain.CommitRef, 0, len(records))
	for _, r := range records {
		author := r.Commit.Author.Name
		if r.Author != nil && r.Author.Login != "" {
			author = r.Author.Login
		}
		refs = append(refs, domain.CommitRef{
			SHA:     shortSHA(r.SHA),
			Message: firstLine(r.Commit.Message),
			Date:    parseTime(r.Commit.Author.Date),
			Author:  author,
		})
	}
	return refs, nil
}

// CommitDiff fetches a single commit's unified diff, capped with a
// truncation marker when it exceeds the size limit.
func (c *Client) CommitDiff(ctx context.Context, fullName, sha string) (string, error) {
	diff, err := c.get(ctx, "/repos/"+fullName+"/commits/"+sha, "application/vnd.github.diff")
	if err != nil {
		return "", fmt.Errorf("fetch diff %s@%s: %w", fullName, sha, err)
	}
	if len(diff) > diffMaxBytes {
		diff = diff[:diffMaxBytes] + "\n\n[diff truncated]"
	}
	return diff, nil
}

// screenshotsDir lists image files in a repo's screenshots/ directory,
// preferring desktop variants and falling back to any first five images.
func (c *Client) screenshotsDir(ctx context.Context, fullName string) []string {
	var contents []contentRecord
	if err := c.getJSON(ctx, "/repos/"+fullName+"/contents/screenshots", &contents); err != nil {
		return nil
	}

	var images, desktop []string
	for _, f := range contents {
		if !imageFileRe.MatchString(f.Name) {
			continue
		}
		images = append(images, f.DownloadURL)
		if strings.Contains(f.Name, "desktop") {
			desktop = append(desktop, f.DownloadURL)
		}
	}
	if len(desktop) > 0 {
		return desktop
	}
	if len(images) > 5 {
		images = images[:5]
	}
	return images
}

var (
	imageFileRe = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|webp)$`)
	mdImageRe   = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
)

// badgeHosts flags readme image URLs that are CI/status badges, not
// screenshots worth showing.
var badgeHosts = []string{
	"shields.io", "img.shields.io", "badge", "travis-ci", "circleci",
	"coveralls", "codecov", "david-dm", "snyk.io", "npmjs.com",
}

func extractReadmeImages(readme, fullName, defaultBranch string) []string {
	if readme == "" {
		return nil
	}
	var images []string
	for _, m := range mdImageRe.FindAllStringSubmatch(readme, -1) {
		u := strings.TrimSpace(m[1])
		if isBadge(u) {
			continue
		}
		if !strings.HasPrefix(u, "http") {
			u = fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s",
				fullName, defaultBranch, strings.TrimPrefix(u, "./"))
		}
		images = append(images, u)
	}
	return images
}

func isBadge(u string) bool {
	lower := strings.ToLower(u)
	for _, h := range badgeHosts {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	body, err := c.get(ctx, endpoint, acceptJSON)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), v)
}

func (c *Client) getRaw(ctx context.Context, endpoint string) (string, error) {
	return c.get(ctx, endpoint, acceptRaw)
}

func (c *Client) get(ctx context.Context, endpoint, accept string) (string, error) {
	url := endpoint
	if !strings.HasPrefix(url, "http") {
		url = c.baseURL + endpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return "", fmt.Errorf("github api %d: %s", resp.StatusCode, preview)
	}
	return string(body), nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
