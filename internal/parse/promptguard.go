package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const promptLengthLimit = 600

var (
	dayKeyRe      = regexp.MustCompile(`day\s*:\s*\d`)
	typeLiteralRe = regexp.MustCompile(`type\s*:\s*"?(?:task|lifestyle)"?`)
)

var promptMarkers = []string{
	"```",
	`"schedule"`,
	"schedule\":",
	"activities",
	"weekday",
	"notes",
	"[생활 패턴]",
	"[할 일 목록]",
	"[반드시 지켜야 할 규칙]",
}

// LooksLikeSystemPrompt reports whether a string reads like one of our own
// prompts or schedule payloads rather than user-authored scheduling text.
// Callers use it as a pre-save filter; there are no side effects here.
func LooksLikeSystemPrompt(s string) bool {
	if utf8.RuneCountInString(s) > promptLengthLimit {
		return true
	}
	lower := strings.ToLower(s)
	for _, marker := range promptMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return dayKeyRe.MatchString(lower) || typeLiteralRe.MatchString(lower)
}
