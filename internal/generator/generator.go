// Package generator turns commit, pillar, or project context into a complete
// structured article via the completion service, then repairs the returned
// HTML so both JSON-LD blocks are always embedded.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ContentForge/internal/brand"
	"ContentForge/internal/domain"
	"ContentForge/internal/infrastructure/llm"
	"ContentForge/internal/pillars"
	"ContentForge/internal/ports"
)

const generateMaxTokens = 8192

// Generator assembles prompts from the content pool and invokes the model.
type Generator struct {
	completer ports.Completer
	pool      *brand.Pool
	logger    *slog.Logger
	now       func() time.Time
}

// New builds a Generator. The clock is injectable for deterministic tests.
func New(completer ports.Completer, pool *brand.Pool, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		pool:      pool,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// FromCommit generates a portfolio post about a single worthy commit.
// Screenshots, when present, ride along as vision input.
func (g *Generator) FromCommit(ctx context.Context, commit domain.CommitEvent, eval domain.WorthinessEvaluation, screenshots []domain.Image) (domain.GeneratedPost, error) {
	system := g.buildSystemPrompt(
		fmt.Sprintf("Write a portfolio blog post about a development milestone for %s.\nThis post shows potential clients what %s builds, framed entirely around outcomes and business value.",
			g.pool.Brand.Name, g.pool.Brand.Name),
		"")
	user := fmt.Sprintf("Write a blog post about this development work.\n\nTopic: %s\n\nCommit message: %s\n\nDiff:\n%s",
		eval.TopicSummary, commit.Message, commit.Diff)

	return g.generate(ctx, system, user, screenshots)
}

// FromPillar generates a thought-leadership article for the week's
// deterministic pillar/angle selection. No commit framing, no screenshots.
func (g *Generator) FromPillar(ctx context.Context, sel pillars.Selection) (domain.GeneratedPost, error) {
	task := fmt.Sprintf(`Write a thought leadership article.

TOPIC: %q
ANGLE: %q

- Write from the perspective of an expert practitioner, not a marketer
- This is a thought leadership article, not a portfolio piece — but naturally weave in %s's capabilities
- No code snippets — business outcomes and strategic insight only`,
		sel.Pillar.Name, sel.Angle, g.pool.Brand.Name)

	system := g.buildSystemPrompt(task, "")
	user := fmt.Sprintf(`Generate a thought leadership article on the following topic and angle.

TOPIC: %q
ANGLE: %q
ISO WEEK: %d
Today's date (ISO): %s

This is NOT a commit-based post — do not reference any specific code changes or commits. Write a strategic, insight-driven article that demonstrates %s's expertise in the topic area and naturally positions us as the right partner for businesses facing this challenge.`,
		sel.Pillar.Name, sel.Angle, sel.WeekNumber, g.today(), g.pool.Brand.Name)

	return g.generate(ctx, system, user, nil)
}

// ShowcasePost generates the first-ever article about a repository.
func (g *Generator) ShowcasePost(ctx context.Context, info domain.ProjectInfo, screenshots []domain.Image) (domain.GeneratedPost, error) {
	task := fmt.Sprintf(`Write a portfolio showcase blog post about the project %q.
This post introduces the project to potential clients and demonstrates what %s builds.
Cover: what the project does, what business problem it solves, the tech stack and why it was chosen, key features and architecture decisions, measurable outcomes.`,
		info.Name, g.pool.Brand.Name)

	system := g.buildSystemPrompt(task, servicesBlock(g.pool.Brand))
	user := "Write a portfolio showcase blog post about this project:\n\n" + info.ContextBlock()

	return g.generate(ctx, system, user, screenshots)
}

// ProgressPost generates an update article about new activity on an
// already-showcased repository.
func (g *Generator) ProgressPost(ctx context.Context, info domain.ProjectInfo, milestone string, commits []domain.CommitRef, screenshots []domain.Image) (domain.GeneratedPost, error) {
	task := fmt.Sprintf(`Write a progress update blog post about new developments on %q.
This post shows that %s is actively building and shipping.

MILESTONE: %s

Cover: what's new, why these changes matter for users/clients, engineering decisions made, what's coming next.`,
		info.Name, g.pool.Brand.Name, milestone)

	var commitContext strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&commitContext, "%s %s\n", c.SHA, c.Message)
	}

	system := g.buildSystemPrompt(task, servicesBlock(g.pool.Brand))
	user := fmt.Sprintf("Write a progress update about recent development on %q.\n\nProject: %s\nURL: %s\n\nRecent commits:\n%s",
		info.Name, info.Description, info.URL, commitContext.String())

	return g.generate(ctx, system, user, screenshots)
}

func (g *Generator) generate(ctx context.Context, system, user string, screenshots []domain.Image) (domain.GeneratedPost, error) {
	if len(screenshots) > 0 {
		user = "Above are screenshots of the live project. Reference what you see in the screenshots when writing the post.\n\n" + user
	}

	text, err := g.completer.Complete(ctx, ports.CompletionRequest{
		System:    system,
		User:      user,
		Images:    screenshots,
		MaxTokens: generateMaxTokens,
	})
	if err != nil {
		return domain.GeneratedPost{}, fmt.Errorf("generate post: %w", err)
	}

	var post domain.GeneratedPost
	if err := llm.DecodeJSON(text, &post); err != nil {
		return domain.GeneratedPost{}, fmt.Errorf("generate post: %w", err)
	}
	if post.Title == "" || post.HTMLContent == "" {
		return domain.GeneratedPost{}, fmt.Errorf("generate post: response missing title or htmlContent")
	}

	// Repair runs after every generation call, not only on the happy path:
	// the model regularly emits the schemas as fields without embedding them.
	post = EnsureSchemas(post)

	g.debug("post generated", "title", post.Title, "categories", len(post.Categories), "tags", len(post.Tags))
	return post, nil
}

// buildSystemPrompt combines the brand voice, one rotated urgency message,
// three sampled FAQ templates, one random CTA, and the fixed structural
// requirements into the instruction block for a single call.
func (g *Generator) buildSystemPrompt(task, extra string) string {
	b := g.pool.Brand
	urgency := g.pool.NextUrgency()
	faqs := g.pool.SampleFAQs(3)
	cta := g.pool.RandomCTA()

	var rules strings.Builder
	for i, rule := range b.VoiceRules {
		fmt.Fprintf(&rules, "%d. %s\n", i+1, rule)
	}

	var faqLines strings.Builder
	for _, f := range faqs {
		fmt.Fprintf(&faqLines, "- Q: %s\n  Direction: %s\n", f.Question, f.AnswerScaffold)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "You are a senior technical content writer for %s, a software development and AI integration company.\n", b.Name)
	fmt.Fprintf(&prompt, "Author: %s\nAuthor title: %s\n\n", b.Author, b.AuthorTitle)
	fmt.Fprintf(&prompt, "YOUR TASK: %s\n\n", task)
	fmt.Fprintf(&prompt, "VOICE RULES — follow these strictly:\n%s\n", rules.String())
	if extra != "" {
		prompt.WriteString(extra)
		prompt.WriteString("\n")
	}
	fmt.Fprintf(&prompt, `CONTENT STRUCTURE:
- Target 1500-2500 words
- Keyword-rich H2 and H3 headings optimized for search queries related to the topic
- Write in a confident, direct builder tone that demonstrates domain expertise

ANSWER-FIRST BLOCK:
Generate an "answerFirstBlock" field containing exactly 40-60 words that directly answers the core question implied by the topic. Optimized for AI Overview snippets — it should be a standalone, self-contained answer that makes sense without reading the full post.

FAQ SECTION:
Generate 3-5 FAQ items (faqItems array). Use the following FAQ templates as inspiration — adapt the questions and answers to be specifically relevant to the topic:
%sDo NOT copy the templates verbatim. Adapt each question to relate to the specific topic while maintaining the same search intent categories.

URGENCY BLOCK (weave into the body naturally — do NOT make it a standalone section):
%q

CTA BLOCK:
End the post with a call-to-action section:
- Heading: %s
- Body: %s
- Link URL: %s
- Button/link text: %s
Format this as an HTML section with appropriate heading and a styled link.

SCHEMA GENERATION:
1. blogPostingSchema: a complete BlogPosting JSON-LD as a string containing a <script type="application/ld+json"> tag, with @context https://schema.org, @type BlogPosting, headline, author {@type: Person, name: %q}, publisher {@type: Organization, name: %q}, datePublished %s, and a keywords array.
2. faqPageSchema: a complete FAQPage JSON-LD as a string containing a <script type="application/ld+json"> tag, with mainEntity Question objects built from the same faqItems.

CATEGORIES AND TAGS:
- Generate 2-3 category slugs (e.g., "ai-strategy", "portfolio", "custom-software")
- Generate 3-8 tag strings relevant to the post topic

OUTPUT FORMAT:
Return ONLY a raw JSON object with exactly these fields: title, slug, seoTitle, metaDescription, focusKeyword, secondaryKeywords (array), excerpt, htmlContent, categories (array of slugs), tags (array), answerFirstBlock, faqItems (array of {question, answer}), blogPostingSchema, faqPageSchema. The htmlContent field contains the full post HTML. No markdown fences, no commentary.`,
		faqLines.String(), urgency.Text,
		cta.Heading, cta.Body, cta.URL, cta.Action,
		b.Author, b.Name, g.today())

	return prompt.String()
}

func servicesBlock(b brand.Profile) string {
	var s strings.Builder
	s.WriteString("SERVICES WE OFFER:\n")
	for _, svc := range b.Services {
		fmt.Fprintf(&s, "- %s: %s\n", svc.Name, svc.Tagline)
	}
	return s.String()
}

func (g *Generator) today() string {
	return g.now().UTC().Format("2006-01-02")
}

func (g *Generator) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
