// Package scorer rates commits and repositories for blog worthiness via the
// completion service. Scores are 1-10; callers gate on a configurable
// threshold. A failed call or unparseable response propagates; a missing
// evaluation blocks the rest of the pipeline meaningfully.
package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ContentForge/internal/domain"
	"ContentForge/internal/infrastructure/llm"
	"ContentForge/internal/ports"
)

const scoreMaxTokens = 1024

// Scorer wraps the completer with the three evaluation rubrics.
type Scorer struct {
	completer ports.Completer
	logger    *slog.Logger
}

// New builds a Scorer.
func New(completer ports.Completer, logger *slog.Logger) *Scorer {
	return &Scorer{completer: completer, logger: logger}
}

const commitRubric = `You are a content worthiness evaluator for a software development portfolio blog. ` +
	`Score each commit on a scale of 1-10 based on how interesting and valuable it would be ` +
	`as a blog post demonstrating technical capability to potential clients. ` +
	`Consider: Does this show meaningful engineering work? Would a potential client find this impressive? ` +
	`Is there enough substance for a 1500-2500 word post about outcomes and business value? ` +
	`Score 7+ means "worth writing about". Score below 7 means "skip".`

// EvaluateCommit scores one commit for blog-post worthiness.
func (s *Scorer) EvaluateCommit(ctx context.Context, message, diff string) (domain.WorthinessEvaluation, error) {
	system := commitRubric + outputContract(`{"score": <integer 1-10>, "reasoning": "<string>", "topic_summary": "<string>"}`)
	user := fmt.Sprintf("Evaluate this git commit for blog post worthiness.\n\nCommit message: %s\n\nDiff:\n%s", message, diff)

	var eval domain.WorthinessEvaluation
	if err := s.evaluate(ctx, system, user, &eval); err != nil {
		return domain.WorthinessEvaluation{}, fmt.Errorf("evaluate commit: %w", err)
	}

	s.debug("commit scored", "score", eval.Score, "topic", eval.TopicSummary)
	return eval, nil
}

const showcaseRubric = `You are a content strategist evaluating whether a software project is mature enough for a portfolio showcase blog post. Score 1-10.

Criteria for a high score (7+):
- The project has real, working functionality (not just scaffolding or boilerplate)
- There's a clear purpose or business problem being solved
- Enough substance exists for a 1500-2500 word showcase post
- The project demonstrates engineering competence
- There's a README or enough commit history to understand what it does

Criteria for a low score (1-6):
- Just a tutorial clone or template with no original work
- Only a few trivial commits or config changes
- No README and no clear purpose
- Appears abandoned or barely started`

// EvaluateShowcase scores a never-posted repository for a first showcase.
func (s *Scorer) EvaluateShowcase(ctx context.Context, info domain.ProjectInfo) (domain.WorthinessEvaluation, error) {
	system := showcaseRubric + outputContract(`{"score": <integer 1-10>, "reasoning": "<string>", "project_summary": "<string>"}`)
	user := "Evaluate this project for a portfolio showcase blog post:\n\n" + info.ContextBlock()

	var raw struct {
		Score          int    `json:"score"`
		Reasoning      string `json:"reasoning"`
		ProjectSummary string `json:"project_summary"`
	}
	if err := s.evaluate(ctx, system, user, &raw); err != nil {
		return domain.WorthinessEvaluation{}, fmt.Errorf("evaluate showcase: %w", err)
	}

	s.debug("showcase scored", "repo", info.FullName, "score", raw.Score)
	return domain.WorthinessEvaluation{
		Score:        raw.Score,
		Reasoning:    raw.Reasoning,
		TopicSummary: raw.ProjectSummary,
	}, nil
}

const progressRubric = `You are a content strategist evaluating whether recent development progress on a software project warrants a blog post update. Score 1-10.

High score (7+): New features, major milestones, significant refactors, new integrations, or architectural improvements that demonstrate ongoing engineering work.
Low score (1-6): Minor fixes, dependency updates, trivial tweaks, or too few meaningful changes to sustain a blog post.`

// EvaluateProgress scores a batch of commits made since the last post.
func (s *Scorer) EvaluateProgress(ctx context.Context, info domain.ProjectInfo, commits []domain.CommitRef) (domain.WorthinessEvaluation, error) {
	var list strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&list, "%s %s\n", c.SHA, c.Message)
	}

	system := progressRubric + outputContract(`{"score": <integer 1-10>, "reasoning": "<string>", "milestone_summary": "<string>"}`)
	user := fmt.Sprintf("Project: %s\nDescription: %s\n\nRecent commits since last blog post:\n%s\nAre these changes significant enough for a progress update blog post?",
		info.Name, info.Description, list.String())

	var raw struct {
		Score            int    `json:"score"`
		Reasoning        string `json:"reasoning"`
		MilestoneSummary string `json:"milestone_summary"`
	}
	if err := s.evaluate(ctx, system, user, &raw); err != nil {
		return domain.WorthinessEvaluation{}, fmt.Errorf("evaluate progress: %w", err)
	}

	s.debug("progress scored", "repo", info.FullName, "score", raw.Score, "commits", len(commits))
	return domain.WorthinessEvaluation{
		Score:        raw.Score,
		Reasoning:    raw.Reasoning,
		TopicSummary: raw.MilestoneSummary,
	}, nil
}

func (s *Scorer) evaluate(ctx context.Context, system, user string, v any) error {
	text, err := s.completer.Complete(ctx, ports.CompletionRequest{
		System:    system,
		User:      user,
		MaxTokens: scoreMaxTokens,
	})
	if err != nil {
		return err
	}
	return llm.DecodeJSON(text, v)
}

func outputContract(schema string) string {
	return "\n\nRespond with ONLY a raw JSON object matching exactly: " + schema +
		" — no markdown fences, no commentary."
}

func (s *Scorer) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
