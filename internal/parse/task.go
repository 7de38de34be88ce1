package parse

import (
	"regexp"
	"strings"
	"time"
)

// DefaultTaskTitle is used when cleanup strips the whole sentence.
const DefaultTaskTitle = "할 일"

// defaultTaskLevel is the importance/difficulty assumed when the sentence
// says nothing. Product treats unclassified work as high-priority.
const defaultTaskLevel = "상"

// TaskRecord is a one-off deadline-bound item parsed from a sentence.
type TaskRecord struct {
	Title          string    `json:"title"`
	Deadline       time.Time `json:"deadline"`
	DeadlineTime   string    `json:"deadlineTime"`
	Importance     string    `json:"importance"`
	Difficulty     string    `json:"difficulty"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"isActive"`
	PersistAsTask  bool      `json:"persistAsTask"`
	StrictDeadline bool      `json:"strictDeadline"`
	NeedsFocus     bool      `json:"needsFocus"`
	CreatedAt      time.Time `json:"createdAt"`
}

var (
	taskDeadlineRe       = regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)
	taskDeadlineClauseRe = regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일\s*까지?`)
	needsFocusRe         = regexp.MustCompile(`집중(?:\s*필요)?`)

	importanceLevelRes = levelRes("중요도")
	difficultyLevelRes = levelRes("난이도")
)

type levelPattern struct {
	level string
	re    *regexp.Regexp
}

// levelRes builds one regex per level in the fixed check order 상, 하, 중.
func levelRes(keyword string) []levelPattern {
	out := make([]levelPattern, 0, 3)
	for _, level := range []string{"상", "하", "중"} {
		out = append(out, levelPattern{level, regexp.MustCompile(keyword + `\s*` + level)})
	}
	return out
}

func matchLevel(text string, res []levelPattern) string {
	for _, r := range res {
		if r.re.MatchString(text) {
			return r.level
		}
	}
	return defaultTaskLevel
}

// ParseTaskSentence extracts a task from a single Korean sentence. now is the
// base date for deadline resolution (and the record's CreatedAt), threaded
// explicitly so the parse is deterministic. Returns nil when the sentence has
// no resolvable deadline, which signals "not a task sentence".
func ParseTaskSentence(text string, now time.Time) *TaskRecord {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	deadline, ok := parseDeadline(text, now)
	if !ok {
		return nil
	}

	title := text
	if i := strings.IndexAny(text, ".。"); i >= 0 {
		title = text[:i]
	}
	title = cleanTaskTitle(title)
	if title == "" {
		title = DefaultTaskTitle
	}

	return &TaskRecord{
		Title:          title,
		Deadline:       deadline,
		DeadlineTime:   "23:59",
		Importance:     matchLevel(text, importanceLevelRes),
		Difficulty:     matchLevel(text, difficultyLevelRes),
		Description:    text,
		IsActive:       true,
		PersistAsTask:  true,
		StrictDeadline: strings.Contains(text, "엄격"),
		NeedsFocus:     needsFocusRe.MatchString(text),
		CreatedAt:      now,
	}
}

// parseDeadline resolves "M월 D일" to a date at 23:59 in the base year,
// rolling the year forward when that calendar day already passed. The
// comparison ignores the base date's time of day.
func parseDeadline(text string, now time.Time) (time.Time, bool) {
	m := taskDeadlineRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month, day := atoi(m[1]), atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	deadline := time.Date(now.Year(), time.Month(month), day, 23, 59, 0, 0, now.Location())
	baseDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deadlineDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, now.Location())
	if deadlineDay.Before(baseDay) {
		deadline = deadline.AddDate(1, 0, 0)
	}
	return deadline, true
}

// cleanTaskTitle cuts trailing deadline/importance/difficulty clauses off the
// title.
func cleanTaskTitle(title string) string {
	for _, marker := range []string{"마감", "중요도", "난이도"} {
		if i := strings.Index(title, marker); i >= 0 {
			title = title[:i]
		}
	}
	title = taskDeadlineClauseRe.ReplaceAllString(title, " ")
	title = whitespaceRunRe.ReplaceAllString(title, " ")
	return strings.Trim(title, " ,~-")
}
