// Package telegram delivers success-only draft notifications to an
// operator chat.
package telegram

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier posts an HTML-formatted message per published draft. Missing
// credentials make every call a silent no-op; delivery failures are logged
// and never propagate: a broken bot must not fail a successful publish.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewNotifier connects the bot API client. Empty token or chat id yields
// a disabled notifier, not an error.
func NewNotifier(botToken, chatID string, logger *slog.Logger) *Notifier {
	n := &Notifier{logger: logger}
	if botToken == "" || chatID == "" {
		return n
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		n.warn("invalid telegram chat id, notifications disabled", "chatID", chatID)
		return n
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		n.warn("telegram bot init failed, notifications disabled", "error", err)
		return n
	}

	n.bot = bot
	n.chatID = id
	return n
}

// NotifyPublished sends the draft-created message. All user-generated text
// is HTML-escaped before interpolation.
func (n *Notifier) NotifyPublished(_ context.Context, note ports.Notification) {
	if n.bot == nil {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, n.format(note))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		n.warn("telegram notification failed", "error", err)
	}
}

func (n *Notifier) format(note ports.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>New %s Draft</b>\n\n", kindLabel(note.Kind))
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(note.Title))
	if note.RepoName != "" {
		fmt.Fprintf(&b, "Repo: %s\n", html.EscapeString(note.RepoName))
	}
	if note.Pillar != "" {
		fmt.Fprintf(&b, "Pillar: %s\nAngle: %s\nWeek: %d\n",
			html.EscapeString(note.Pillar), html.EscapeString(note.Angle), note.Week)
	}
	if note.Score > 0 {
		fmt.Fprintf(&b, "Score: %d/10\n", note.Score)
	}
	b.WriteString("Status: Draft\n\n")
	fmt.Fprintf(&b, `<a href="%s">Review Post →</a>`, note.Link)
	return b.String()
}

func kindLabel(kind string) string {
	switch kind {
	case domain.KindShowcase:
		return "Project Showcase"
	case domain.KindProgress:
		return "Progress Update"
	case domain.KindWeekly:
		return "Thought Leadership"
	default:
		return "Blog Post"
	}
}

func (n *Notifier) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}
