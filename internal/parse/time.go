// Package parse turns free-form Korean scheduling text — recurring lifestyle
// lines, one-off task sentences, and appointment commands — into structured
// records. Everything here is pure and deterministic: no I/O, no ambient
// clock, base dates are threaded explicitly.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Clock is a time of day on a 24-hour clock.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

var (
	nightHourRe   = regexp.MustCompile(`밤\s*(\d{1,2})시`)
	dawnHourRe    = regexp.MustCompile(`새벽\s*(\d{1,2})시`)
	daytimeHourRe = regexp.MustCompile(`낮\s*(\d{1,2})시`)
	amHourRe      = regexp.MustCompile(`오전\s*(\d{1,2})시(?:\s*(\d{1,2})분)?`)
	pmNoonRe      = regexp.MustCompile(`오후\s*12시(?:\s*(\d{1,2})분)?`)
	pmHourRe      = regexp.MustCompile(`오후\s*(\d{1,2})시(?:\s*(\d{1,2})분)?`)
)

// NormalizeTimeExpressions rewrites Korean time idioms into canonical HH:MM
// tokens. The rewrites are ordered: 자정/정오 expand into 오전/오후 forms, 밤/새벽/낮
// collapse into 오전/오후 forms, and only then do the 오전/오후 forms become
// clock tokens. Non-time text is left untouched.
func NormalizeTimeExpressions(s string) string {
	s = strings.ReplaceAll(s, "자정", "오전 0시")
	s = strings.ReplaceAll(s, "정오", "오후 12시")

	s = nightHourRe.ReplaceAllString(s, "오후 ${1}시")
	s = dawnHourRe.ReplaceAllString(s, "오전 ${1}시")
	s = daytimeHourRe.ReplaceAllString(s, "오후 ${1}시")

	// Morning hours are already spoken in 0-23 form.
	s = amHourRe.ReplaceAllStringFunc(s, func(m string) string {
		g := amHourRe.FindStringSubmatch(m)
		return clockToken(atoi(g[1]), atoi(g[2]))
	})

	// Noon first, so 오후 12시 never becomes 24:00.
	s = pmNoonRe.ReplaceAllStringFunc(s, func(m string) string {
		g := pmNoonRe.FindStringSubmatch(m)
		return clockToken(12, atoi(g[1]))
	})
	s = pmHourRe.ReplaceAllStringFunc(s, func(m string) string {
		g := pmHourRe.FindStringSubmatch(m)
		return clockToken((atoi(g[1])+12)%24, atoi(g[2]))
	})

	return s
}

func clockToken(hour, minute int) string {
	return Clock{Hour: clampInt(hour, 0, 23), Minute: clampInt(minute, 0, 59)}.String()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

var (
	hourMinuteKoRe = regexp.MustCompile(`^(\d{1,2})시(?:\s*(\d{1,2})분)?$`)
	hourColonRe    = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
	compactRe      = regexp.MustCompile(`^(\d{1,4})$`)
)

// ParseClock parses a single Korean or numeric time token: "H시", "H시M분",
// "H:M", a bare hour, or the compact "HMM"/"HHMM" form. Hours clamp to 0-23
// and minutes to 0-59.
func ParseClock(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	if m := hourMinuteKoRe.FindStringSubmatch(s); m != nil {
		return Clock{clampInt(atoi(m[1]), 0, 23), clampInt(atoi(m[2]), 0, 59)}, true
	}
	if m := hourColonRe.FindStringSubmatch(s); m != nil {
		return Clock{clampInt(atoi(m[1]), 0, 23), clampInt(atoi(m[2]), 0, 59)}, true
	}
	if m := compactRe.FindStringSubmatch(s); m != nil {
		digits := m[1]
		if len(digits) <= 2 {
			return Clock{clampInt(atoi(digits), 0, 23), 0}, true
		}
		// HMM or HHMM
		hour := atoi(digits[:len(digits)-2])
		minute := atoi(digits[len(digits)-2:])
		return Clock{clampInt(hour, 0, 23), clampInt(minute, 0, 59)}, true
	}
	return Clock{}, false
}

// TimeRange is a start-end pair found in a line, along with the exact
// substring it was matched from so the title extractor can remove it.
type TimeRange struct {
	Start Clock
	End   Clock
	Span  string
}

const timeTokenPattern = `\d{1,2}:\d{1,2}|\d{1,2}시(?:\s*\d{1,2}분)?|\d{1,4}`

var timeRangeRe = regexp.MustCompile(
	`(` + timeTokenPattern + `)\s*[~∼\-–—]\s*(` + timeTokenPattern + `)`)

// ExtractTimeRange normalizes time idioms in the line and looks for a
// start-end range. It returns nil when no range is present or either side
// fails to parse; the caller then falls back to title-based defaults.
func ExtractTimeRange(line string) *TimeRange {
	return findTimeRange(NormalizeTimeExpressions(line))
}

// findTimeRange expects already-normalized text. The returned Span refers to
// that normalized text.
func findTimeRange(norm string) *TimeRange {
	m := timeRangeRe.FindStringSubmatch(norm)
	if m == nil {
		return nil
	}
	start, ok := ParseClock(m[1])
	if !ok {
		return nil
	}
	end, ok := ParseClock(m[2])
	if !ok {
		return nil
	}
	return &TimeRange{Start: start, End: end, Span: m[0]}
}
