package telegram

import (
	"strings"
	"testing"
	"time"

	"shedai/internal/planner"
	"shedai/internal/schedule"
)

func TestFormatPlanMarkdown(t *testing.T) {
	plan := &planner.Plan{
		WeekStart: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		Days: []schedule.Day{
			{Day: 1, Activities: []schedule.Activity{
				{Start: "09:00", End: "18:00", Category: "Commute", Title: "근무", Type: "lifestyle"},
				{Start: "20:00", End: "21:00", Category: "Exercise", Title: "운동", Type: "lifestyle"},
			}},
		},
		Notes: "운동은 저녁에 배치했어요.",
	}

	out := formatPlanMarkdown(plan)

	if !strings.Contains(out, "2024-05-13") {
		t.Error("missing week start")
	}
	if !strings.Contains(out, "*월요일*") {
		t.Error("missing weekday header")
	}
	if !strings.Contains(out, "09:00~18:00 근무 _(Commute)_") {
		t.Error("missing activity line")
	}
	if !strings.Contains(out, "_운동은 저녁에 배치했어요._") {
		t.Error("missing notes")
	}
}

func TestFormatMixMarkdown(t *testing.T) {
	weekStart := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	t.Run("WithActivities", func(t *testing.T) {
		mix := schedule.Mix{
			ByCategory:   map[string]int{"Sleep": 60, "Exercise": 40},
			TotalMinutes: 600,
			Order:        []string{"Sleep", "Exercise"},
		}
		out := formatMixMarkdown(weekStart, mix)
		if !strings.Contains(out, "• Sleep: 60%") || !strings.Contains(out, "• Exercise: 40%") {
			t.Errorf("missing category lines:\n%s", out)
		}
		if !strings.Contains(out, "총 600분") {
			t.Error("missing total minutes")
		}
		// Order field drives the listing, not map iteration
		if strings.Index(out, "Sleep") > strings.Index(out, "Exercise") {
			t.Error("categories out of order")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		out := formatMixMarkdown(weekStart, schedule.Mix{ByCategory: map[string]int{}})
		if !strings.Contains(out, "시간이 기록된 활동이 없어요") {
			t.Errorf("missing empty message:\n%s", out)
		}
	})
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want string
	}{
		{"EveryDay", []int{1, 2, 3, 4, 5, 6, 7}, "매일"},
		{"Weekdays", []int{1, 2, 3, 4, 5}, "월,화,수,목,금"},
		{"Pair", []int{2, 4}, "화,목"},
		{"OutOfRangeDropped", []int{0, 3, 9}, "수"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDays(tt.days); got != tt.want {
				t.Errorf("formatDays(%v) = %q, want %q", tt.days, got, tt.want)
			}
		})
	}
}
