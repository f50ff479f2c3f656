package scorer

import (
	"context"
	"strings"
	"testing"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

type fakeCompleter struct {
	response string
	lastReq  ports.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	f.lastReq = req
	return f.response, nil
}

func TestEvaluateCommitParsesVerdict(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{response: `{"score": 8, "reasoning": "real feature", "topic_summary": "payment retry queue"}`}
	s := New(fake, nil)

	eval, err := s.EvaluateCommit(context.Background(), "Add payment retry queue", "diff --git a/x b/x")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Score != 8 || eval.TopicSummary != "payment retry queue" {
		t.Fatalf("unexpected evaluation: %+v", eval)
	}
	if !strings.Contains(fake.lastReq.User, "Add payment retry queue") {
		t.Fatal("commit message missing from prompt")
	}
	if !strings.Contains(fake.lastReq.System, "ONLY a raw JSON object") {
		t.Fatal("output contract missing from system prompt")
	}
}

func TestEvaluateShowcaseMapsProjectSummary(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{response: `{"score": 9, "reasoning": "mature", "project_summary": "fraud scoring service"}`}
	s := New(fake, nil)

	info := domain.ProjectInfo{Name: "fraudscore", FullName: "acme/fraudscore", Description: "Fraud scoring"}
	eval, err := s.EvaluateShowcase(context.Background(), info)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.TopicSummary != "fraud scoring service" {
		t.Fatalf("project_summary not mapped: %+v", eval)
	}
	if !strings.Contains(fake.lastReq.User, "Project: fraudscore") {
		t.Fatal("project context missing from prompt")
	}
}

func TestEvaluateProgressListsCommits(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{response: `{"score": 7, "reasoning": "new feature", "milestone_summary": "shipped realtime sync"}`}
	s := New(fake, nil)

	commits := []domain.CommitRef{
		{SHA: "abc1234", Message: "Add realtime sync"},
		{SHA: "def5678", Message: "Wire websocket transport"},
	}
	eval, err := s.EvaluateProgress(context.Background(), domain.ProjectInfo{Name: "widget"}, commits)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.TopicSummary != "shipped realtime sync" {
		t.Fatalf("milestone_summary not mapped: %+v", eval)
	}
	if !strings.Contains(fake.lastReq.User, "abc1234 Add realtime sync") {
		t.Fatal("commit list missing from prompt")
	}
}

func TestEvaluateCommitShapeErrorPropagates(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{response: "I would rate this a seven."}
	s := New(fake, nil)

	if _, err := s.EvaluateCommit(context.Background(), "msg", "diff"); err == nil {
		t.Fatal("expected shape error to propagate")
	}
}
