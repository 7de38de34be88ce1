package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultActivityTitle is used when stripping leaves nothing usable.
const DefaultActivityTitle = "활동"

var (
	mealSpacingRe  = regexp.MustCompile(`(아침|점심|저녁)\s+(식사|밥)`)
	genericRangeRe = timeRangeRe
	weekdayRangeRe = regexp.MustCompile(`(^|[\s,·∙・])[월화수목금토일]\s*[~∼\-–—]\s*[월화수목금토일](?:요일)?($|[\s,·∙・])`)
	weekdayTokenRe = regexp.MustCompile(`(^|[\s,·∙・])[월화수목금토일](?:요일)?($|[\s,·∙・])`)
	singleTimeRes  = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}:\d{1,2}`),
		regexp.MustCompile(`(?:오전|오후|새벽|밤|낮)\s*\d{1,2}시(?:\s*\d{1,2}분)?`),
		regexp.MustCompile(`\d{1,2}시(?:\s*\d{1,2}분)?`),
		regexp.MustCompile(`자정|정오`),
	}
	frequencyTokenRe = regexp.MustCompile(`(^|[\s,·∙・])(?:매일|평일|주말|every day|매|평)($|[\s,·∙・])`)
	separatorRunRe   = regexp.MustCompile(`[~∼\-–—|:/·∙・•]+`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
	numericOnlyRe    = regexp.MustCompile(`^\d+$`)
)

// titleStep is one named stage of the title-stripping pipeline. The order of
// the steps is load-bearing: time ranges go before separator collapsing, and
// weekday ranges before single weekday tokens.
type titleStep struct {
	name  string
	apply func(string) string
}

var titleSteps = []titleStep{
	{"meal-spacing", func(s string) string {
		return mealSpacingRe.ReplaceAllString(s, "$1$2")
	}},
	{"time-ranges", func(s string) string {
		return genericRangeRe.ReplaceAllString(s, " ")
	}},
	{"weekday-ranges", func(s string) string {
		return replaceToFixpoint(weekdayRangeRe, s, "$1$2")
	}},
	{"weekday-tokens", func(s string) string {
		return replaceToFixpoint(weekdayTokenRe, s, "$1$2")
	}},
	{"single-times", func(s string) string {
		for _, re := range singleTimeRes {
			s = re.ReplaceAllString(s, " ")
		}
		return s
	}},
	{"frequency-keywords", func(s string) string {
		return replaceToFixpoint(frequencyTokenRe, s, "$1$2")
	}},
	{"separators", func(s string) string {
		s = separatorRunRe.ReplaceAllString(s, " ")
		return whitespaceRunRe.ReplaceAllString(s, " ")
	}},
	{"trim", func(s string) string {
		return strings.Trim(s, " \t~∼-–—|:/·∙・•,")
	}},
}

// replaceToFixpoint reapplies a boundary-anchored replacement until the text
// stops changing. Adjacent tokens share their boundary character, so a single
// ReplaceAll pass can miss every other match.
func replaceToFixpoint(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
}

// ExtractTitle recovers the residual activity title from a line after the
// day/time machinery has had its pass. span is the exact time-range substring
// previously detected ("" when none); it is removed verbatim before the
// generic stripping steps run.
func ExtractTitle(line, span string) string {
	s := line
	if span != "" {
		s = strings.Replace(s, span, " ", 1)
	}
	for _, step := range titleSteps {
		s = step.apply(s)
	}
	if !usableTitle(s) {
		return DefaultActivityTitle
	}
	return s
}

func usableTitle(s string) bool {
	if s == "" || numericOnlyRe.MatchString(s) {
		return false
	}
	if utf8.RuneCountInString(s) == 1 {
		if _, isWeekday := weekdayIndex[s]; isWeekday {
			return false
		}
	}
	return true
}
