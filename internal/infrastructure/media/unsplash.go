package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

var _ ports.PhotoSource = (*UnsplashClient)(nil)

// UnsplashClient fetches landscape stock photos with photographer
// attribution. Without an access key every search is an empty no-op;
// no network calls are made at all.
type UnsplashClient struct {
	accessKey   string
	referralTag string
	searchURL   string
	httpClient  *http.Client
	logger      *slog.Logger
}

func NewUnsplashClient(accessKey, referralTag string, logger *slog.Logger) *UnsplashClient {
	return &UnsplashClient{
		accessKey:   accessKey,
		referralTag: referralTag,
		searchURL:   unsplashSearchURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

type unsplashPhoto struct {
	ID   string `json:"id"`
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

type unsplashSearchResponse struct {
	Results []unsplashPhoto `json:"results"`
}

// Search returns up to count photos for the keyword. Individual photo
// failures are reported as degraded and the rest of the batch proceeds.
func (c *UnsplashClient) Search(ctx context.Context, keyword string, count int) ports.Acquisition {
	if c.accessKey == "" {
		c.debug("unsplash not configured, skipping stock photos")
		return ports.Acquisition{}
	}

	photos, err := c.search(ctx, keyword, count)
	if err != nil {
		c.warn("unsplash search failed", "keyword", keyword, "error", err)
		return ports.Acquisition{Degraded: []string{fmt.Sprintf("unsplash search %q: %v", keyword, err)}}
	}
	if len(photos) == 0 {
		c.debug("no unsplash results", "keyword", keyword)
		return ports.Acquisition{}
	}

	var result ports.Acquisition
	for _, photo := range photos {
		img, err := c.fetchPhoto(ctx, photo)
		if err != nil {
			c.warn("unsplash photo failed", "photo", photo.ID, "error", err)
			result.Degraded = append(result.Degraded, fmt.Sprintf("unsplash photo %s: %v", photo.ID, err))
			continue
		}
		result.Images = append(result.Images, img)
	}
	return result
}

func (c *UnsplashClient) search(ctx context.Context, keyword string, count int) ([]unsplashPhoto, error) {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("per_page", fmt.Sprintf("%d", count))
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var parsed unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.Results, nil
}

func (c *UnsplashClient) fetchPhoto(ctx context.Context, photo unsplashPhoto) (domain.Image, error) {
	// Download tracking is required by the API guidelines. Its failure
	// is logged and the download proceeds anyway.
	c.trackDownload(ctx, photo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photo.URLs.Regular, nil)
	if err != nil {
		return domain.Image{}, fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Image{}, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Image{}, fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Image{}, fmt.Errorf("read image bytes: %w", err)
	}

	filename := "unsplash-" + photo.ID + ".jpg"
	if photo.ID == "" {
		filename = "unsplash-" + uuid.NewString() + ".jpg"
	}

	return domain.Image{
		Bytes:       data,
		Filename:    filename,
		MimeType:    "image/jpeg",
		SourceURL:   photo.URLs.Regular,
		Attribution: c.attribution(photo),
	}, nil
}

func (c *UnsplashClient) trackDownload(ctx context.Context, photo unsplashPhoto) {
	if photo.Links.DownloadLocation == "" {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photo.Links.DownloadLocation, nil)
	if err != nil {
		c.warn("download tracking request failed", "photo", photo.ID, "error", err)
		return
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.warn("download tracking failed", "photo", photo.ID, "error", err)
		return
	}
	resp.Body.Close()
}

// attribution builds the photographer credit HTML required by the API
// guidelines, with UTM referral parameters on both links.
func (c *UnsplashClient) attribution(photo unsplashPhoto) string {
	utm := "?utm_source=" + c.referralTag + "&utm_medium=referral"
	photographerURL := photo.User.Links.HTML + utm
	unsplashURL := "https://unsplash.com/" + utm
	return fmt.Sprintf(`<p class="photo-credit">Photo by <a href="%s">%s</a> on <a href="%s">Unsplash</a></p>`,
		photographerURL, photo.User.Name, unsplashURL)
}

func (c *UnsplashClient) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *UnsplashClient) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
