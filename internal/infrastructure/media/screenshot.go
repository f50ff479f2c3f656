// Package media provides the visual asset adapters: headless-browser
// screenshots of live project pages and stock photography search.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const (
	viewportWidth  = 1280
	viewportHeight = 800
	renderTimeout  = 30 * time.Second
)

var _ ports.ScreenshotCapturer = (*ScreenshotCapturer)(nil)

// ScreenshotCapturer renders pages in a headless Chromium and captures
// viewport screenshots. One browser is launched per Capture batch.
type ScreenshotCapturer struct {
	logger *slog.Logger
}

func NewScreenshotCapturer(logger *slog.Logger) *ScreenshotCapturer {
	return &ScreenshotCapturer{logger: logger}
}

// Capture screenshots every URL it can and reports the rest as degraded.
// A browser launch failure degrades the whole batch; the pipeline proceeds
// without screenshots rather than aborting the run.
func (c *ScreenshotCapturer) Capture(ctx context.Context, urls []string) ports.Acquisition {
	if len(urls) == 0 {
		return ports.Acquisition{}
	}

	browser, cleanup, err := c.launch(ctx)
	if err != nil {
		c.warn("browser launch failed, skipping screenshots", "error", err)
		return ports.Acquisition{Degraded: degradeAll(urls, err)}
	}
	defer cleanup()

	var result ports.Acquisition
	for i, url := range urls {
		img, err := c.captureOne(ctx, browser, url, i)
		if err != nil {
			c.warn("screenshot failed", "url", url, "error", err)
			result.Degraded = append(result.Degraded, fmt.Sprintf("screenshot %s: %v", url, err))
			continue
		}
		result.Images = append(result.Images, img)
	}
	return result
}

func (c *ScreenshotCapturer) launch(ctx context.Context) (*rod.Browser, func(), error) {
	controlURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, nil, fmt.Errorf("connect to browser: %w", err)
	}
	return browser, func() { _ = browser.Close() }, nil
}

func (c *ScreenshotCapturer) captureOne(ctx context.Context, browser *rod.Browser, url string, index int) (domain.Image, error) {
	page, err := stealth.Page(browser)
	if err != nil {
		return domain.Image{}, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Timeout(renderTimeout)

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}).Call(page); err != nil {
		return domain.Image{}, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.Navigate(url); err != nil {
		return domain.Image{}, fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return domain.Image{}, fmt.Errorf("wait for load: %w", err)
	}
	// Let late-mounting frontends settle before the capture.
	time.Sleep(2 * time.Second)

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("capture: %w", err)
	}

	return domain.Image{
		Bytes:     data,
		Filename:  fmt.Sprintf("screenshot-%d.png", index+1),
		MimeType:  "image/png",
		SourceURL: url,
	}, nil
}

func degradeAll(urls []string, err error) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, fmt.Sprintf("screenshot %s: %v", u, err))
	}
	return out
}

func (c *ScreenshotCapturer) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
