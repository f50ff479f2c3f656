package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

var imageURLRe = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|webp)(\?|$)`)

// IsImageURL reports whether a URL points at a static image file rather
// than a live page needing a browser.
func IsImageURL(u string) bool {
	return imageURLRe.MatchString(u)
}

var _ ports.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads static image files over plain HTTP.
type ImageFetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewImageFetcher(logger *slog.Logger) *ImageFetcher {
	return &ImageFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Fetch downloads each URL; individual failures degrade that URL only.
func (f *ImageFetcher) Fetch(ctx context.Context, urls []string) ports.Acquisition {
	var result ports.Acquisition
	for _, u := range urls {
		img, err := f.fetchOne(ctx, u)
		if err != nil {
			if f.logger != nil {
				f.logger.Warn("image download failed", "url", u, "error", err)
			}
			result.Degraded = append(result.Degraded, fmt.Sprintf("image %s: %v", u, err))
			continue
		}
		result.Images = append(result.Images, img)
	}
	return result
}

func (f *ImageFetcher) fetchOne(ctx context.Context, u string) (domain.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Image{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domain.Image{}, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Image{}, fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Image{}, fmt.Errorf("read bytes: %w", err)
	}

	ext := extension(u)
	return domain.Image{
		Bytes:     data,
		Filename:  filenameFromURL(u, ext),
		MimeType:  mimeForExt(ext),
		SourceURL: u,
	}, nil
}

func extension(u string) string {
	m := imageURLRe.FindStringSubmatch(u)
	if len(m) > 1 {
		return strings.ToLower(m[1])
	}
	return "png"
}

func mimeForExt(ext string) string {
	if ext == "jpg" || ext == "jpeg" {
		return "image/jpeg"
	}
	return "image/" + ext
}

// filenameFromURL keeps the original basename when it looks like an image
// file, otherwise generates one.
func filenameFromURL(u, ext string) string {
	base := u
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	if base != "" && imageURLRe.MatchString(base) {
		return base
	}
	return "image-" + uuid.NewString() + "." + ext
}
