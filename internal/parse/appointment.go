package parse

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultAppointmentTitle is used when stripping leaves fewer than two
// characters.
const DefaultAppointmentTitle = "회의"

var (
	appointmentCmdRe = regexp.MustCompile(
		`(?:일정|약속)\s*(?:을|를)?\s*(?:추가|등록|잡아|넣어)\s*(?:해\s*줘|해\s*주세요|해|줘|주세요)?\s*[.!~?]*\s*$`)

	relativeDayRe = regexp.MustCompile(`오늘|내일|모레|글피|이번\s*주|다음\s*주`)
	monthDayRe    = regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)
	clockPhraseRe = regexp.MustCompile(`(?:오전|오후|새벽|밤|낮)?\s*\d{1,2}시(?:\s*\d{1,2}분|\s*반)?`)
	clockTokenRe  = regexp.MustCompile(`\d{1,2}:\d{1,2}`)
	meridiemRe    = regexp.MustCompile(`오전|오후`)

	trailingParticleRe = regexp.MustCompile(`(?:에서|으로|에|로|을|를|은|는|이|가|좀)$`)
)

// EndsWithAppointmentCommand reports whether the trimmed text ends with an
// "add appointment" imperative like "... 일정 추가해줘".
func EndsWithAppointmentCommand(text string) bool {
	return appointmentCmdRe.MatchString(strings.TrimSpace(text))
}

// ExtractAppointmentTitle strips the trailing command, date/time phrases, and
// trailing particles to recover a clean appointment title.
func ExtractAppointmentTitle(text string) string {
	s := strings.TrimSpace(text)
	s = appointmentCmdRe.ReplaceAllString(s, "")
	s = relativeDayRe.ReplaceAllString(s, " ")
	s = monthDayRe.ReplaceAllString(s, " ")
	s = clockPhraseRe.ReplaceAllString(s, " ")
	s = clockTokenRe.ReplaceAllString(s, " ")
	s = meridiemRe.ReplaceAllString(s, " ")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	for {
		next := strings.TrimSpace(trailingParticleRe.ReplaceAllString(s, ""))
		if next == s {
			break
		}
		s = next
	}
	if utf8.RuneCountInString(s) < 2 {
		return DefaultAppointmentTitle
	}
	return s
}

var appointmentClockRe = regexp.MustCompile(`(\d{1,2})시(?:\s*(\d{1,2})분|\s*(반))?`)

// ResolveAppointmentDate turns the date/time phrases of an appointment
// command into a concrete start time. Relative day words win over an explicit
// "M월 D일"; a bare clock time lands on the base day. Returns ok=false when
// the text carries neither a date nor a time.
func ResolveAppointmentDate(text string, now time.Time) (time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	haveDate := false

	switch {
	case strings.Contains(text, "오늘"):
		haveDate = true
	case strings.Contains(text, "내일"):
		day = day.AddDate(0, 0, 1)
		haveDate = true
	case strings.Contains(text, "모레"):
		day = day.AddDate(0, 0, 2)
		haveDate = true
	case strings.Contains(text, "글피"):
		day = day.AddDate(0, 0, 3)
		haveDate = true
	default:
		if m := monthDayRe.FindStringSubmatch(text); m != nil {
			month, d := atoi(m[1]), atoi(m[2])
			if month >= 1 && month <= 12 && d >= 1 && d <= 31 {
				day = time.Date(now.Year(), time.Month(month), d, 0, 0, 0, 0, now.Location())
				if day.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())) {
					day = day.AddDate(1, 0, 0)
				}
				haveDate = true
			}
		}
	}

	clock, haveTime := appointmentClock(text)
	if !haveDate && !haveTime {
		return time.Time{}, false
	}
	if !haveTime {
		clock = Clock{Hour: 9}
	}
	return day.Add(time.Duration(clock.Minutes()) * time.Minute), true
}

func appointmentClock(text string) (Clock, bool) {
	norm := NormalizeTimeExpressions(text)
	if m := clockTokenRe.FindString(norm); m != "" {
		if c, ok := ParseClock(m); ok {
			return c, true
		}
	}
	if m := appointmentClockRe.FindStringSubmatch(norm); m != nil {
		c := Clock{Hour: clampInt(atoi(m[1]), 0, 23)}
		if m[3] == "반" {
			c.Minute = 30
		} else {
			c.Minute = clampInt(atoi(m[2]), 0, 59)
		}
		// A bare small hour with no 오전/오후/새벽/밤/낮 marker almost always
		// means the afternoon slot ("내일 3시 회의" is 15:00, not 03:00).
		if c.Hour >= 1 && c.Hour <= 7 && !ambiguousMeridiemRe.MatchString(text) {
			c.Hour += 12
		}
		return c, true
	}
	return Clock{}, false
}

var ambiguousMeridiemRe = regexp.MustCompile(`오전|오후|새벽|밤|낮|자정|정오`)
