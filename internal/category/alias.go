package category

import (
	"regexp"
	"strings"
)

// aliasRules maps free-text category names onto eight canonical names. First
// match wins. Each canonical name matches only its own rule, which makes
// Normalize idempotent.
var aliasRules = []rule{
	{Sleep, regexp.MustCompile(`(?i)수면|취침|잠|sleep`)},
	{Meals, regexp.MustCompile(`(?i)식사|끼니|밥|meal|food`)},
	{Exercise, regexp.MustCompile(`(?i)운동|헬스|피트니스|exercise|workout|fitness`)},
	{Commute, regexp.MustCompile(`(?i)출퇴근|통근|이동|commute|transit`)},
	{Meetings, regexp.MustCompile(`(?i)회의|미팅|meeting`)},
	{Study, regexp.MustCompile(`(?i)공부|학습|study`)},
	{Chores, regexp.MustCompile(`(?i)집안일|가사|살림|chore|housework`)},
	{Leisure, regexp.MustCompile(`(?i)여가|휴식|놀이|leisure|rest|hobby`)},
}

// Normalize canonicalizes a free-text category name. Unrecognized non-empty
// input passes through unchanged; empty input maps to Uncategorized.
func Normalize(s string) Name {
	t := strings.TrimSpace(s)
	if t == "" {
		return Uncategorized
	}
	for _, r := range aliasRules {
		if r.re.MatchString(t) {
			return r.name
		}
	}
	return Name(t)
}
