package parse

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// dayBoundaryRe is the single boundary set shared by day extraction and title
// stripping: whitespace, comma, and the middle-dot variants. A tilde is not a
// boundary, so a range like 월~금 stays one token.
var dayBoundaryRe = regexp.MustCompile(`[\s,·∙・]+`)

var weekdayIndex = map[string]int{
	"월": 1, "화": 2, "수": 3, "목": 4, "금": 5, "토": 6, "일": 7,
}

// dayListRe wants whitespace (or line edges) around the list so the digits of
// a clock token never read as a day list.
var dayListRe = regexp.MustCompile(`(?:^|\s)(\d(?:\s*,\s*\d)+)(?:\s|$)`)

// ExtractDays determines which weekdays (1=Monday..7=Sunday) a line applies
// to. Tiers are checked in order and the first hit wins: frequency keywords,
// then an explicit comma-separated digit list, then isolated weekday
// characters. Returns nil when nothing matches; callers default to all seven.
func ExtractDays(line string) []int {
	if days := keywordDays(line); days != nil {
		return days
	}
	if days := listedDays(line); days != nil {
		return days
	}
	return isolatedDays(line)
}

func keywordDays(line string) []int {
	if strings.Contains(line, "매일") || strings.Contains(strings.ToLower(line), "every day") {
		return []int{1, 2, 3, 4, 5, 6, 7}
	}
	if strings.Contains(line, "평일") {
		return []int{1, 2, 3, 4, 5}
	}
	if strings.Contains(line, "주말") {
		return []int{6, 7}
	}
	// Bare 매/평 count only as whole tokens; inside another word they are
	// almost never a frequency marker.
	for _, tok := range dayBoundaryRe.Split(line, -1) {
		switch tok {
		case "매":
			return []int{1, 2, 3, 4, 5, 6, 7}
		case "평":
			return []int{1, 2, 3, 4, 5}
		}
	}
	return nil
}

func listedDays(line string) []int {
	m := dayListRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(m[1], ",") {
		d := atoi(strings.TrimSpace(part))
		if d < 1 || d > 7 || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil
	}
	sort.Ints(days)
	return days
}

// isolatedDays collects weekday characters that stand alone as tokens
// (optionally suffixed with 요일). The boundary requirement keeps 수 inside
// 수면 from reading as Wednesday.
func isolatedDays(line string) []int {
	seen := make(map[int]bool)
	var days []int
	for _, tok := range dayBoundaryRe.Split(line, -1) {
		name := strings.TrimSuffix(tok, "요일")
		if utf8.RuneCountInString(name) != 1 {
			continue
		}
		d, ok := weekdayIndex[name]
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil
	}
	sort.Ints(days)
	return days
}
