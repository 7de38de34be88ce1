package acceptance_tests

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shedai/internal/app"
	"shedai/internal/clipper"
	"shedai/internal/config"
	"shedai/internal/database"
	"shedai/internal/llm"
	"shedai/internal/metrics"
	"shedai/internal/planner"
	"shedai/internal/schedule"
	"shedai/internal/shared"
	"shedai/internal/store"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
	lastPrompt           string
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++
	m.lastPrompt = prompt
	return llm.ContentResponse{
		Content: `{
			"schedule": [
				{"day": 1, "activities": [
					{"start": "00:00", "end": "07:00", "category": "Sleep", "title": "수면", "type": "lifestyle"},
					{"start": "09:00", "end": "18:00", "category": "", "title": "근무", "type": "lifestyle"},
					{"start": "20:00", "end": "22:00", "category": "", "title": "보고서 작성", "type": "task"}
				]},
				{"day": 2, "activities": [
					{"start": "00:00", "end": "07:00", "category": "Sleep", "title": "수면", "type": "lifestyle"}
				]}
			],
			"notes": "마감이 가까운 작업을 앞쪽에 배치했어요."
		}`,
		Usage: shared.TokenUsage{PromptTokens: 120, CompletionTokens: 80, TotalTokens: 200, Model: "mock"},
	}, nil
}

// --- Acceptance Test ---
func TestScheduleWorkflow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 8, 10, 0, 0, 0, time.UTC) // Wednesday
	userID := "default_user"

	db, err := database.NewDB(filepath.Join(t.TempDir(), "acceptance.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	llmClient := &mockLLMClient{}
	patternRepo := store.NewPatternRepository(db.SQL)
	taskRepo := store.NewTaskRepository(db.SQL)
	appointmentRepo := store.NewAppointmentRepository(db.SQL)
	planRepo := store.NewPlanRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	application := app.NewApp(
		&config.Config{},
		db,
		clipper.NewClipper(llmClient),
		planner.NewScheduler(llmClient),
		metricsStore,
		patternRepo,
		taskRepo,
		appointmentRepo,
		planRepo,
	)

	// 1. Submit a lifestyle block
	lifestyleText := "매일 자정~오전 7시 수면\n평일 09:00~18:00 근무"
	if err := application.SubmitText(ctx, userID, lifestyleText, now); err != nil {
		t.Fatalf("Lifestyle submit failed: %v", err)
	}

	// 2. Submit a task sentence
	if err := application.SubmitText(ctx, userID, "보고서 작성. 10월 30일까지 중요도 상 난이도 중", now); err != nil {
		t.Fatalf("Task submit failed: %v", err)
	}

	// 3. Submit an appointment command
	if err := application.SubmitText(ctx, userID, "내일 오후 3시 치과 일정 추가해줘", now); err != nil {
		t.Fatalf("Appointment submit failed: %v", err)
	}

	// 4. Generate the weekly plan
	if err := application.GenerateWeeklyPlan(ctx, userID, "운동 시간을 넉넉히", now); err != nil {
		t.Fatalf("Plan generation failed: %v", err)
	}
	if llmClient.generateContentCalls != 1 {
		t.Errorf("expected 1 LLM call, got %d", llmClient.generateContentCalls)
	}

	// The prompt must carry the stored patterns, the task, and the request
	for _, want := range []string{"수면", "근무", "보고서 작성", "운동 시간을 넉넉히", "2024-05-13"} {
		if !strings.Contains(llmClient.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// 5. Reload the stored plan and check the activity mix
	stored, err := planRepo.LatestByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("Failed to load stored plan: %v", err)
	}
	if stored == nil {
		t.Fatal("expected a stored plan")
	}

	var plan planner.Plan
	if err := json.Unmarshal(stored.PlanData, &plan); err != nil {
		t.Fatalf("Failed to decode stored plan: %v", err)
	}
	if len(plan.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(plan.Days))
	}

	// Categories filled by the classifier: 근무 → Commute, 보고서 작성 → Deep work
	monday := plan.Days[0].Activities
	if monday[1].Category != "Commute" {
		t.Errorf("근무 category = %q, want Commute", monday[1].Category)
	}
	if monday[2].Category != "Deep work" {
		t.Errorf("보고서 작성 category = %q, want Deep work", monday[2].Category)
	}

	mix := schedule.CalculateMix(plan.Days)
	sum := 0
	for _, pct := range mix.ByCategory {
		sum += pct
	}
	if sum != 100 {
		t.Errorf("mix percentages sum to %d, want 100: %v", sum, mix.ByCategory)
	}
	if mix.TotalMinutes != 7*60+9*60+2*60+7*60 {
		t.Errorf("total minutes = %d", mix.TotalMinutes)
	}

	// 6. Metrics were recorded for the generation
	usage, err := metricsStore.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("Failed to load usage: %v", err)
	}
	if len(usage) != 1 || usage[0].TotalPrompt != 120 {
		t.Errorf("unexpected usage rows: %+v", usage)
	}

	// 7. The appointment landed in its repository
	upcoming, err := appointmentRepo.ListUpcoming(ctx, userID, now, 10)
	if err != nil {
		t.Fatalf("Failed to list appointments: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "치과" {
		t.Errorf("unexpected appointments: %+v", upcoming)
	}
	wantStart := time.Date(2024, 5, 9, 15, 0, 0, 0, time.UTC)
	if !upcoming[0].StartsAt.Equal(wantStart) {
		t.Errorf("appointment starts at %v, want %v", upcoming[0].StartsAt, wantStart)
	}
}
