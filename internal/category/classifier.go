// Package category infers and canonicalizes activity categories from Korean
// titles and free-text category names.
package category

import (
	"regexp"
	"strconv"
	"strings"
)

// Name is a canonical activity category.
type Name string

// The category vocabulary. Aliasing maps synonyms onto it; the classifier
// defaults unresolved cases to Uncategorized.
const (
	Sleep         Name = "Sleep"
	Meals         Name = "Meals"
	Exercise      Name = "Exercise"
	Commute       Name = "Commute"
	Meetings      Name = "Meetings"
	Study         Name = "Study"
	Admin         Name = "Admin"
	Chores        Name = "Chores"
	Leisure       Name = "Leisure"
	DeepWork      Name = "Deep work"
	Uncategorized Name = "Uncategorized"
)

// rule pairs a predicate with its category. Rules are evaluated in order and
// the first match wins; the ordering is semantics, not an optimization.
type rule struct {
	name Name
	re   *regexp.Regexp
}

var keywordRules = []rule{
	{Sleep, regexp.MustCompile(`수면|취침|낮잠|잠|기상`)},
	{Meals, regexp.MustCompile(`식사|아침|점심|저녁|밥|브런치|간식`)},
	{Exercise, regexp.MustCompile(`운동|헬스|조깅|러닝|요가|산책|수영|필라테스`)},
	{Commute, regexp.MustCompile(`출근|퇴근|통근|근무|회사|등교|하교|이동`)},
	{Meetings, regexp.MustCompile(`회의|미팅|면담|약속`)},
	{Study, regexp.MustCompile(`공부|학습|스터디|강의|수업|독서|시험|복습|예습`)},
	{Admin, regexp.MustCompile(`행정|서류|메일|정산|은행|민원`)},
	{Chores, regexp.MustCompile(`청소|빨래|설거지|장보기|집안일|요리`)},
	{Leisure, regexp.MustCompile(`여가|휴식|게임|영화|유튜브|취미|드라마|음악`)},
	{DeepWork, regexp.MustCompile(`작업|개발|코딩|프로젝트|글쓰기|디자인|집중`)},
}

var studyHintRe = regexp.MustCompile(`시험|공부|학습|준비|복습`)

// Classify infers a category from the activity title, its declared type
// ("lifestyle" or "task"), and the start time "HH:MM". Keyword groups are
// checked first, sleep highest; time-of-day heuristics only apply to
// lifestyle activities with no keyword hit.
func Classify(title, activityType, start string) Name {
	for _, r := range keywordRules {
		if r.re.MatchString(title) {
			return r.name
		}
	}

	switch activityType {
	case "lifestyle":
		if hour, ok := startHour(start); ok {
			if hour < 6 {
				return Sleep
			}
			if (hour >= 7 && hour <= 9) || (hour >= 12 && hour <= 14) || (hour >= 18 && hour <= 21) {
				return Meals
			}
		}
	case "task":
		if studyHintRe.MatchString(title) {
			return Study
		}
		return DeepWork
	}
	return Uncategorized
}

func startHour(start string) (int, bool) {
	h, _, ok := strings.Cut(start, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
