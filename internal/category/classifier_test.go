package category

import "testing"

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		title string
		want  Name
	}{
		{"수면", Sleep},
		{"점심 식사", Meals},
		{"헬스장 가기", Exercise},
		{"출근", Commute},
		{"팀 미팅", Meetings},
		{"시험 공부", Study},
		{"은행 업무", Admin},
		{"빨래 돌리기", Chores},
		{"유튜브 보기", Leisure},
		{"사이드 프로젝트 개발", DeepWork},
	}
	for _, tc := range cases {
		if got := Classify(tc.title, "lifestyle", ""); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestClassifyOrdering(t *testing.T) {
	// Groups are checked in a fixed priority order, sleep highest: a title
	// hitting several groups resolves to the earliest one.
	if got := Classify("아침 운동", "lifestyle", ""); got != Meals {
		t.Errorf("Classify(아침 운동) = %q, want the earlier Meals group", got)
	}
	if got := Classify("낮잠 겸 휴식", "lifestyle", ""); got != Sleep {
		t.Errorf("Classify(낮잠 겸 휴식) = %q, want Sleep", got)
	}
}

func TestClassifyTimeOfDayFallback(t *testing.T) {
	cases := []struct {
		start string
		want  Name
	}{
		{"03:00", Sleep},
		{"05:59", Sleep},
		{"08:00", Meals},
		{"13:00", Meals},
		{"19:00", Meals},
		{"10:30", Uncategorized},
		{"", Uncategorized},
	}
	for _, tc := range cases {
		if got := Classify("기타", "lifestyle", tc.start); got != tc.want {
			t.Errorf("Classify(기타, lifestyle, %q) = %q, want %q", tc.start, got, tc.want)
		}
	}
}

func TestClassifyTaskFallback(t *testing.T) {
	if got := Classify("기말고사 시험 대비", "task", ""); got != Study {
		t.Errorf("exam task = %q, want Study", got)
	}
	if got := Classify("기획안 검토", "task", ""); got != DeepWork {
		t.Errorf("generic task = %q, want Deep work", got)
	}
}

func TestClassifyUnknown(t *testing.T) {
	if got := Classify("기타", "", ""); got != Uncategorized {
		t.Errorf("got %q, want Uncategorized", got)
	}
}
