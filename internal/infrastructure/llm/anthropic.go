package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ContentForge/internal/ports"
)

const defaultMaxTokens = 8192

// Client implements ports.Completer on the Anthropic Messages API.
type Client struct {
	api    *anthropic.Client
	model  string
	logger *slog.Logger
}

var _ ports.Completer = (*Client)(nil)

// NewClient builds the completion client. The API key must already be
// validated; an empty model falls back to the configured default upstream.
func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	api := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		api:    &api,
		model:  model,
		logger: logger,
	}
}

// Complete sends one system+user exchange and returns the concatenated text
// content. Any non-success response propagates: a missing completion blocks
// the pipeline meaningfully and is never silently recovered.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(req.Images)+1)
	for _, img := range req.Images {
		mime := img.MimeType
		if mime == "" {
			mime = "image/png"
		}
		encoded := base64.StdEncoding.EncodeToString(img.Bytes)
		blocks = append(blocks, anthropic.NewImageBlockBase64(mime, encoded))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.User))

	resp, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	c.debug("completion done",
		"model", c.model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	return text.String(), nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
