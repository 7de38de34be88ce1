package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shedai/internal/llm"
	"shedai/internal/parse"
)

type MockTextGenerator struct {
	response    string
	shouldError bool
	lastPrompt  string
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	if m.shouldError {
		return llm.ContentResponse{}, errors.New("LLM error")
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func TestGeneratePlan(t *testing.T) {
	ctx := context.Background()
	weekStart := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	req := PlanRequest{
		WeekStart: weekStart,
		Lifestyle: parse.ParseLifestyleBlock("평일 09:00~18:00 근무\n매일 자정~오전 7시 수면"),
		Tasks: []parse.TaskRecord{{
			Title:      "보고서 작성",
			Deadline:   time.Date(2024, 5, 9, 23, 59, 0, 0, time.UTC),
			Importance: "상",
			Difficulty: "중",
		}},
	}

	t.Run("Success", func(t *testing.T) {
		mock := &MockTextGenerator{response: `{
			"schedule": [
				{"day": 2, "activities": [{"start": "09:00", "end": "18:00", "title": "근무", "type": "lifestyle"}]},
				{"day": 1, "activities": [
					{"start": "00:00", "end": "07:00", "title": "수면", "type": "lifestyle"},
					{"start": "19:00", "end": "21:00", "title": "보고서 작성", "type": "task"}
				]},
				{"day": 9, "activities": []}
			],
			"notes": "ok"
		}`}

		plan, meta, err := NewScheduler(mock).GeneratePlan(ctx, req)
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}
		if meta.AgentName != "Scheduler" {
			t.Errorf("agent name = %q", meta.AgentName)
		}
		if len(plan.Days) != 2 {
			t.Fatalf("expected the out-of-range day dropped, got %d days", len(plan.Days))
		}
		if plan.Days[0].Day != 1 || plan.Days[1].Day != 2 {
			t.Errorf("days not sorted: %d, %d", plan.Days[0].Day, plan.Days[1].Day)
		}
		// Missing categories are filled in by the classifier.
		if got := plan.Days[0].Activities[0].Category; got != "Sleep" {
			t.Errorf("sleep activity category = %q", got)
		}
		if got := plan.Days[0].Activities[1].Category; got != "Deep work" {
			t.Errorf("task activity category = %q", got)
		}
		if !strings.Contains(mock.lastPrompt, "근무") || !strings.Contains(mock.lastPrompt, "보고서 작성") {
			t.Error("prompt missing the parsed records")
		}
		if !strings.Contains(mock.lastPrompt, "2024-05-06") {
			t.Error("prompt missing the week start")
		}
	})

	t.Run("LLMError", func(t *testing.T) {
		mock := &MockTextGenerator{shouldError: true}
		if _, _, err := NewScheduler(mock).GeneratePlan(ctx, req); err == nil {
			t.Fatal("expected an error from the LLM client, got nil")
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		mock := &MockTextGenerator{response: "this is not json"}
		_, _, err := NewScheduler(mock).GeneratePlan(ctx, req)
		if err == nil {
			t.Fatal("expected an error for invalid JSON, got nil")
		}
		if !strings.Contains(err.Error(), "failed to parse schedule response") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
