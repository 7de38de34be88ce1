// Package planner turns parsed lifestyle patterns and tasks into a
// day-by-day schedule via an LLM, decoding the response into the schedule
// contract shape.
package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"shedai/internal/category"
	"shedai/internal/llm"
	"shedai/internal/parse"
	"shedai/internal/schedule"
	"shedai/internal/shared"
)

//go:embed schedule_prompt.md
var schedulePrompt string

// Scheduler handles the generation of weekly schedules.
type Scheduler struct {
	textGen llm.TextGenerator
}

// NewScheduler creates a new Scheduler instance.
func NewScheduler(textGen llm.TextGenerator) *Scheduler {
	return &Scheduler{textGen: textGen}
}

// PlanRequest carries everything the scheduler needs for one generation.
type PlanRequest struct {
	WeekStart time.Time
	Lifestyle []parse.LifestyleRecord
	Tasks     []parse.TaskRecord
	Request   string // optional free-form user wish
}

// Plan is a generated weekly schedule.
type Plan struct {
	WeekStart time.Time      `json:"week_start"`
	Days      []schedule.Day `json:"schedule"`
	Notes     string         `json:"notes,omitempty"`
}

type schedulePromptData struct {
	WeekStart      string
	LifestyleLines []string
	TaskLines      []string
	Request        string
}

type rawLlmResult struct {
	Schedule []schedule.Day `json:"schedule"`
	Notes    string         `json:"notes"`
}

// GeneratePlan builds the prompt from the parsed records, calls the LLM, and
// decodes the strict JSON schedule shape. Activities missing a category get
// one from the classifier; declared categories are canonicalized.
func (s *Scheduler) GeneratePlan(ctx context.Context, req PlanRequest) (*Plan, shared.AgentMeta, error) {
	start := time.Now()

	prompt, err := buildSchedulePrompt(req)
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{AgentName: "Scheduler"}, err
	}

	meta := shared.AgentMeta{
		AgentName: "Scheduler",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	raw := &rawLlmResult{}
	if err := json.Unmarshal([]byte(resp.Content), raw); err != nil {
		return nil, meta, fmt.Errorf(
			"failed to parse schedule response: %w. Response: %s", err, resp.Content)
	}

	days := raw.Schedule[:0:0]
	for _, day := range raw.Schedule {
		if day.Day < 1 || day.Day > 7 {
			continue
		}
		for i, act := range day.Activities {
			if act.Category == "" {
				day.Activities[i].Category = string(category.Classify(act.Title, act.Type, act.Start))
			} else {
				day.Activities[i].Category = string(category.Normalize(act.Category))
			}
		}
		days = append(days, day)
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	return &Plan{WeekStart: req.WeekStart, Days: days, Notes: raw.Notes}, meta, nil
}

func buildSchedulePrompt(req PlanRequest) (string, error) {
	tmpl, err := template.New("schedule").Parse(schedulePrompt)
	if err != nil {
		return "", err
	}

	data := schedulePromptData{
		WeekStart: req.WeekStart.Format("2006-01-02"),
		Request:   strings.TrimSpace(req.Request),
	}
	for _, rec := range req.Lifestyle {
		data.LifestyleLines = append(data.LifestyleLines, formatLifestyleLine(rec))
	}
	for _, task := range req.Tasks {
		data.TaskLines = append(data.TaskLines, formatTaskLine(task))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var weekdayShort = []string{"", "월", "화", "수", "목", "금", "토", "일"}

func formatLifestyleLine(rec parse.LifestyleRecord) string {
	names := make([]string, 0, len(rec.Days))
	for _, d := range rec.Days {
		if d >= 1 && d <= 7 {
			names = append(names, weekdayShort[d])
		}
	}
	return fmt.Sprintf("%s %s~%s %s", strings.Join(names, ","), rec.Start, rec.End, rec.Title)
}

func formatTaskLine(task parse.TaskRecord) string {
	return fmt.Sprintf("%s (마감 %s, 중요도 %s, 난이도 %s)",
		task.Title, task.Deadline.Format("2006-01-02"), task.Importance, task.Difficulty)
}
