// Package app wires the parsers, planner, and repositories together for the
// CLI commands.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"shedai/internal/clipper"
	"shedai/internal/config"
	"shedai/internal/database"
	"shedai/internal/metrics"
	"shedai/internal/parse"
	"shedai/internal/planner"
	"shedai/internal/schedule"
	"shedai/internal/store"
)

// App holds the application's dependencies.
type App struct {
	clip         *clipper.Clipper
	scheduler    *planner.Scheduler
	metricsStore *metrics.Store
	cfg          *config.Config

	db              *database.DB
	patternRepo     *store.PatternRepository
	taskRepo        *store.TaskRepository
	appointmentRepo *store.AppointmentRepository
	planRepo        *store.PlanRepository
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	db *database.DB,
	clip *clipper.Clipper,
	scheduler *planner.Scheduler,
	metricsStore *metrics.Store,
	patternRepo *store.PatternRepository,
	taskRepo *store.TaskRepository,
	appointmentRepo *store.AppointmentRepository,
	planRepo *store.PlanRepository,
) *App {
	return &App{
		cfg:             cfg,
		db:              db,
		clip:            clip,
		scheduler:       scheduler,
		metricsStore:    metricsStore,
		patternRepo:     patternRepo,
		taskRepo:        taskRepo,
		appointmentRepo: appointmentRepo,
		planRepo:        planRepo,
	}
}

// SubmitText routes one piece of free text the way the bot does: URL,
// appointment command, task sentence, or lifestyle block, in that order. It
// stores the result and prints what it understood.
func (a *App) SubmitText(ctx context.Context, userID, text string, now time.Time) error {
	if parse.LooksLikeSystemPrompt(text) {
		return fmt.Errorf("input looks like an internal prompt, refusing to store it")
	}

	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		clipped, err := a.clip.ClipURL(ctx, text, now)
		if err != nil {
			return fmt.Errorf("failed to clip appointment from URL: %w", err)
		}
		if _, err := a.appointmentRepo.Save(ctx, userID, clipped.Title, clipped.StartsAt, now); err != nil {
			return fmt.Errorf("failed to save appointment: %w", err)
		}
		fmt.Printf("Appointment saved: %s at %s\n", clipped.Title, clipped.StartsAt.Format("2006-01-02 15:04"))
		return nil
	}

	if parse.EndsWithAppointmentCommand(text) {
		startsAt, ok := parse.ResolveAppointmentDate(text, now)
		if !ok {
			return fmt.Errorf("could not find a date or time in the appointment request")
		}
		title := parse.ExtractAppointmentTitle(text)
		if _, err := a.appointmentRepo.Save(ctx, userID, title, startsAt, now); err != nil {
			return fmt.Errorf("failed to save appointment: %w", err)
		}
		fmt.Printf("Appointment saved: %s at %s\n", title, startsAt.Format("2006-01-02 15:04"))
		return nil
	}

	if task := parse.ParseTaskSentence(text, now); task != nil {
		if _, err := a.taskRepo.Save(ctx, userID, task); err != nil {
			return fmt.Errorf("failed to save task: %w", err)
		}
		fmt.Printf("Task saved: %s (due %s, importance %s, difficulty %s)\n",
			task.Title, task.Deadline.Format("2006-01-02"), task.Importance, task.Difficulty)
		return nil
	}

	records := parse.ParseLifestyleBlock(text)
	if len(records) == 0 {
		return fmt.Errorf("nothing recognizable in the input")
	}
	if err := a.patternRepo.ReplaceAll(ctx, userID, records, now); err != nil {
		return fmt.Errorf("failed to save lifestyle patterns: %w", err)
	}
	fmt.Printf("Saved %d lifestyle patterns:\n", len(records))
	for _, rec := range records {
		fmt.Printf("  %v %s~%s %s\n", rec.Days, rec.Start, rec.End, rec.Title)
	}
	return nil
}

// GenerateWeeklyPlan builds next week's schedule from the stored lifestyle
// patterns and open tasks, saves it, and prints it.
func (a *App) GenerateWeeklyPlan(ctx context.Context, userID, request string, now time.Time) error {
	lifestyle, err := a.patternRepo.ListByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load lifestyle patterns: %w", err)
	}
	tasks, err := a.taskRepo.ListOpen(ctx, userID, now)
	if err != nil {
		return fmt.Errorf("failed to load open tasks: %w", err)
	}

	weekStart := planner.GetNextMonday(now)
	fmt.Printf("Generating schedule for the week of %s...\n", weekStart.Format("2006-01-02"))

	plan, meta, err := a.scheduler.GeneratePlan(ctx, planner.PlanRequest{
		WeekStart: weekStart,
		Lifestyle: lifestyle,
		Tasks:     tasks,
		Request:   request,
	})
	if recordErr := a.metricsStore.RecordMeta(meta); recordErr != nil {
		log.Printf("Warning: failed to record metrics: %v", recordErr)
	}
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := a.planRepo.Save(ctx, userID, weekStart, planJSON, now); err != nil {
		log.Printf("Warning: failed to save plan: %v", err)
	}

	printPlan(plan)
	return nil
}

// ShowMix prints the activity-mix percentages of the latest stored plan.
func (a *App) ShowMix(ctx context.Context, userID string) error {
	stored, err := a.planRepo.LatestByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load latest plan: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("no plan stored yet, run plan first")
	}

	var plan planner.Plan
	if err := json.Unmarshal(stored.PlanData, &plan); err != nil {
		return fmt.Errorf("failed to decode stored plan: %w", err)
	}

	mix := schedule.CalculateMix(plan.Days)
	fmt.Printf("Activity mix for the week of %s (%d scheduled minutes):\n",
		plan.WeekStart.Format("2006-01-02"), mix.TotalMinutes)
	for _, cat := range mix.Order {
		fmt.Printf("  %-13s %3d%%\n", cat, mix.ByCategory[cat])
	}
	return nil
}

// ShowUsage prints LLM token usage for the last N days.
func (a *App) ShowUsage(days int) error {
	usage, err := a.metricsStore.GetDailyUsage(days)
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}
	if len(usage) == 0 {
		fmt.Println("No usage recorded yet.")
		return nil
	}
	for _, d := range usage {
		fmt.Printf("%s: %d prompt + %d completion tokens over %d calls\n",
			d.Date, d.TotalPrompt, d.TotalCompletion, d.TotalExecution)
	}
	return nil
}

func printPlan(plan *planner.Plan) {
	weekdayNames := []string{"", "월", "화", "수", "목", "금", "토", "일"}
	fmt.Println("\n=== WEEKLY SCHEDULE ===")
	for _, day := range plan.Days {
		fmt.Printf("[%s]\n", weekdayNames[day.Day])
		for _, act := range day.Activities {
			fmt.Printf("  %s~%s  %-13s %s\n", act.Start, act.End, act.Category, act.Title)
		}
	}
	if plan.Notes != "" {
		fmt.Printf("\nNotes: %s\n", plan.Notes)
	}
}
