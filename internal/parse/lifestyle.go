package parse

import (
	"regexp"
	"strings"
)

// LifestyleRecord is one recurring weekly activity recovered from a line of
// free text. Days are 1=Monday..7=Sunday and never empty; Start/End are
// always well-formed HH:MM, and End may be earlier than Start for overnight
// spans (callers handle the wraparound).
type LifestyleRecord struct {
	Days  []int  `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
	Title string `json:"title"`
}

// defaultSpan supplies a start/end pair when a line carries no explicit time
// range; the title keywords pick the slot.
type defaultSpan struct {
	re    *regexp.Regexp
	start string
	end   string
}

var defaultSpans = []defaultSpan{
	{regexp.MustCompile(`수면|잠|취침`), "00:00", "07:00"},
	{regexp.MustCompile(`공부|학습|스터디|독서`), "21:00", "02:00"},
	{regexp.MustCompile(`운동|헬스|조깅|러닝|요가`), "19:00", "21:00"},
	{regexp.MustCompile(`출근|근무|회사|업무`), "09:00", "18:00"},
	{regexp.MustCompile(`식사|아침|점심|저녁|밥`), "12:00", "13:00"},
	{regexp.MustCompile(`여가|휴식|취미`), "18:00", "19:00"},
}

const (
	defaultStart = "09:00"
	defaultEnd   = "18:00"
)

func allWeekdays() []int {
	return []int{1, 2, 3, 4, 5, 6, 7}
}

// ParseLifestyleLine converts one line of free text into a LifestyleRecord.
// It never fails: missing pieces fall back to all seven days, a keyword-based
// time slot, and the placeholder title.
func ParseLifestyleLine(line string) LifestyleRecord {
	norm := NormalizeTimeExpressions(whitespaceRunRe.ReplaceAllString(strings.TrimSpace(line), " "))

	tr := findTimeRange(norm)
	span := ""
	if tr != nil {
		span = tr.Span
	}

	days := ExtractDays(norm)
	if days == nil {
		days = allWeekdays()
	}

	title := ExtractTitle(norm, span)

	start, end := defaultStart, defaultEnd
	if tr != nil {
		start, end = tr.Start.String(), tr.End.String()
	} else {
		for _, d := range defaultSpans {
			if d.re.MatchString(title) {
				start, end = d.start, d.end
				break
			}
		}
	}

	return LifestyleRecord{Days: days, Start: start, End: end, Title: title}
}

// ParseLifestyleBlock splits a multi-line block and parses each non-empty
// line, preserving order.
func ParseLifestyleBlock(text string) []LifestyleRecord {
	var records []LifestyleRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		records = append(records, ParseLifestyleLine(line))
	}
	return records
}
