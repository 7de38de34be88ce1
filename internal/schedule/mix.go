package schedule

import (
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Mix is the percentage-of-time breakdown of a schedule by category. When
// TotalMinutes is positive, the percentages sum to exactly 100.
type Mix struct {
	ByCategory   map[string]int `json:"byCategory"`
	TotalMinutes int            `json:"totalMinutes"`

	// Order lists the categories in first-encounter order, for stable output.
	Order []string `json:"-"`
}

// CalculateMix aggregates a multi-day schedule into per-category minute
// totals and an integer percentage breakdown. Activities missing either time
// are skipped; an end before its start means the block crosses midnight.
// Rounding drift is folded into the single largest category, ties broken by
// first encounter.
func CalculateMix(days []Day) Mix {
	minutes := make(map[string]int)
	var order []string
	total := 0

	for _, day := range days {
		for _, act := range day.Activities {
			start, ok := clockMinutes(act.Start)
			if !ok {
				continue
			}
			end, ok := clockMinutes(act.End)
			if !ok {
				continue
			}
			duration := end - start
			if duration < 0 {
				duration += minutesPerDay
			}
			cat := act.Category
			if cat == "" {
				cat = "Uncategorized"
			}
			if _, seen := minutes[cat]; !seen {
				order = append(order, cat)
			}
			minutes[cat] += duration
			total += duration
		}
	}

	if total == 0 {
		return Mix{ByCategory: map[string]int{}}
	}

	byCategory := make(map[string]int, len(minutes))
	sum := 0
	for _, cat := range order {
		pct := int(math.Round(float64(minutes[cat]) * 100 / float64(total)))
		byCategory[cat] = pct
		sum += pct
	}

	if drift := 100 - sum; drift != 0 {
		largest := order[0]
		for _, cat := range order[1:] {
			if byCategory[cat] > byCategory[largest] {
				largest = cat
			}
		}
		byCategory[largest] += drift
	}

	return Mix{ByCategory: byCategory, TotalMinutes: total, Order: order}
}

func clockMinutes(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
