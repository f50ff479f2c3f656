// Package wordpress implements the publishing client against the WordPress
// REST API: binary media uploads, get-or-create taxonomy resolution, and
// post creation with SEO plugin metadata.
package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

var _ ports.Publisher = (*Client)(nil)

// Client talks to a single WordPress site using an application password.
type Client struct {
	baseURL    string
	authHeader string
	seoPlugin  string
	status     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a publishing client. baseURL is the wp-json root,
// e.g. https://example.com/wp-json. seoPlugin is "yoast", "rankmath", or
// "both"; status is the post status applied on creation.
func NewClient(baseURL, user, appPassword, seoPlugin, status string, logger *slog.Logger) *Client {
	token := base64.StdEncoding.EncodeToString([]byte(user + ":" + appPassword))
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + token,
		seoPlugin:  seoPlugin,
		status:     status,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// UploadMedia POSTs raw image bytes to the media library. WordPress expects
// a binary body with a Content-Disposition filename, not multipart form data.
func (c *Client) UploadMedia(ctx context.Context, img domain.Image) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp/v2/media", bytes.NewReader(img.Bytes))
	if err != nil {
		return 0, "", fmt.Errorf("build media request: %w", err)
	}
	mime := img.MimeType
	if mime == "" {
		mime = "image/png"
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", mime)
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", img.Filename))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("upload media %s: %w", img.Filename, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "media upload"); err != nil {
		return 0, "", err
	}

	var media struct {
		ID        int    `json:"id"`
		SourceURL string `json:"source_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return 0, "", fmt.Errorf("decode media response: %w", err)
	}
	return media.ID, media.SourceURL, nil
}

// ResolveCategories maps category slugs to term IDs, creating missing
// categories with a title-cased display name derived from the slug.
func (c *Client) ResolveCategories(ctx context.Context, slugs []string) ([]int, error) {
	ids := make([]int, 0, len(slugs))
	for _, slug := range slugs {
		id, err := c.resolveTerm(ctx, "categories", slug, slugToName(slug), slug)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ResolveOrCreateTags maps tag display names to term IDs. The lookup key is
// a sanitized slug; creation keeps the original casing as the display name.
func (c *Client) ResolveOrCreateTags(ctx context.Context, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		slug := tagSlug(name)
		id, err := c.resolveTerm(ctx, "tags", slug, name, slug)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveTerm is the get-or-create upsert shared by both taxonomies.
func (c *Client) resolveTerm(ctx context.Context, taxonomy, searchSlug, name, createSlug string) (int, error) {
	endpoint := c.baseURL + "/wp/v2/" + taxonomy

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?slug="+url.QueryEscape(searchSlug), nil)
	if err != nil {
		return 0, fmt.Errorf("build %s search request: %w", taxonomy, err)
	}
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("search %s %q: %w", taxonomy, searchSlug, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, taxonomy+" search"); err != nil {
		return 0, err
	}

	var existing []struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&existing); err != nil {
		return 0, fmt.Errorf("decode %s search response: %w", taxonomy, err)
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	payload, _ := json.Marshal(map[string]string{"name": name, "slug": createSlug})
	createReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build %s create request: %w", taxonomy, err)
	}
	createReq.Header.Set("Authorization", c.authHeader)
	createReq.Header.Set("Content-Type", "application/json")

	createResp, err := c.httpClient.Do(createReq)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", taxonomy, createSlug, err)
	}
	defer createResp.Body.Close()

	if err := checkStatus(createResp, taxonomy+" creation"); err != nil {
		return 0, err
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("decode %s create response: %w", taxonomy, err)
	}
	c.debug("created term", "taxonomy", taxonomy, "slug", createSlug, "id", created.ID)
	return created.ID, nil
}

// CreatePost resolves taxonomy, attaches SEO metadata per the configured
// plugin mode, sets the first uploaded media id as featured image, and
// creates the post with the configured status.
func (c *Client) CreatePost(ctx context.Context, post domain.GeneratedPost, mediaIDs []int) (domain.PublishedPost, error) {
	categoryIDs, err := c.ResolveCategories(ctx, post.Categories)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("resolve categories: %w", err)
	}
	tagIDs, err := c.ResolveOrCreateTags(ctx, post.Tags)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("resolve tags: %w", err)
	}

	body := map[string]any{
		"title":      post.Title,
		"slug":       post.Slug,
		"content":    post.HTMLContent,
		"excerpt":    post.Excerpt,
		"status":     c.status,
		"categories": categoryIDs,
		"tags":       tagIDs,
		"meta":       c.seoMeta(post),
	}
	if len(mediaIDs) > 0 {
		body["featured_media"] = mediaIDs[0]
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("marshal post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp/v2/posts", bytes.NewReader(payload))
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("build post request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PublishedPost{}, fmt.Errorf("create post: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "post creation"); err != nil {
		return domain.PublishedPost{}, err
	}

	var created struct {
		ID     int    `json:"id"`
		Link   string `json:"link"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.PublishedPost{}, fmt.Errorf("decode post response: %w", err)
	}

	c.debug("post created", "id", created.ID, "status", created.Status)
	return domain.PublishedPost{ID: created.ID, Link: created.Link, Status: created.Status}, nil
}

// seoMeta builds the plugin-specific meta keys. Mode "both" merges the
// Yoast and RankMath key sets so either plugin picks up the values.
func (c *Client) seoMeta(post domain.GeneratedPost) map[string]string {
	meta := make(map[string]string)
	if c.seoPlugin == "yoast" || c.seoPlugin == "both" {
		meta["_yoast_wpseo_metadesc"] = post.MetaDescription
		meta["_yoast_wpseo_focuskw"] = post.FocusKeyword
		meta["_yoast_wpseo_title"] = post.SEOTitle
	}
	if c.seoPlugin == "rankmath" || c.seoPlugin == "both" {
		meta["rank_math_focus_keyword"] = post.FocusKeyword
		meta["rank_math_description"] = post.MetaDescription
		meta["rank_math_title"] = post.SEOTitle
	}
	return meta
}

func checkStatus(resp *http.Response, action string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed (%d): %s", action, resp.StatusCode, string(body))
}

// slugToName turns "web-development" into "Web Development".
func slugToName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9-]`)
)

// tagSlug sanitizes a tag display name into a URL-safe lookup slug.
func tagSlug(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRe.ReplaceAllString(s, "-")
	return nonSlugRe.ReplaceAllString(s, "")
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
