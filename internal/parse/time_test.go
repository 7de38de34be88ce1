package parse

import "testing"

func TestNormalizeTimeExpressions(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"noon never becomes 24", "오후 12시", "12:00"},
		{"afternoon shifts by 12", "오후 3시", "15:00"},
		{"morning passes through", "오전 7시", "07:00"},
		{"midnight", "자정", "00:00"},
		{"noon keyword", "정오", "12:00"},
		{"night is afternoon", "밤 11시", "23:00"},
		{"dawn is morning", "새벽 2시", "02:00"},
		{"daytime is afternoon", "낮 3시", "15:00"},
		{"minutes survive", "오후 3시 30분", "15:30"},
		{"surrounding text untouched", "매일 오전 9시 출근", "매일 09:00 출근"},
		{"no time text untouched", "운동하기", "운동하기"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTimeExpressions(tc.in); got != tc.want {
				t.Errorf("NormalizeTimeExpressions(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"9시", "09:00", true},
		{"9시 30분", "09:30", true},
		{"21:5", "21:05", true},
		{"930", "09:30", true},
		{"2130", "21:30", true},
		{"7", "07:00", true},
		{"25시", "23:00", true}, // clamped
		{"9시 99분", "09:59", true},
		{"운동", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		c, ok := ParseClock(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseClock(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && c.String() != tc.want {
			t.Errorf("ParseClock(%q) = %q, want %q", tc.in, c.String(), tc.want)
		}
	}
}

func TestExtractTimeRange(t *testing.T) {
	t.Run("PlainRange", func(t *testing.T) {
		tr := ExtractTimeRange("화·목·토 20:00~21:00 운동")
		if tr == nil {
			t.Fatal("expected a range, got nil")
		}
		if tr.Start.String() != "20:00" || tr.End.String() != "21:00" {
			t.Errorf("got %s~%s, want 20:00~21:00", tr.Start, tr.End)
		}
		if tr.Span != "20:00~21:00" {
			t.Errorf("span = %q, want %q", tr.Span, "20:00~21:00")
		}
	})

	t.Run("KoreanIdioms", func(t *testing.T) {
		tr := ExtractTimeRange("자정 ~ 오전 7시 수면")
		if tr == nil {
			t.Fatal("expected a range, got nil")
		}
		if tr.Start.String() != "00:00" || tr.End.String() != "07:00" {
			t.Errorf("got %s~%s, want 00:00~07:00", tr.Start, tr.End)
		}
	})

	t.Run("OvernightNotCorrected", func(t *testing.T) {
		tr := ExtractTimeRange("21:00~02:00 공부")
		if tr == nil {
			t.Fatal("expected a range, got nil")
		}
		if tr.Start.String() != "21:00" || tr.End.String() != "02:00" {
			t.Errorf("got %s~%s, want the overnight span preserved", tr.Start, tr.End)
		}
	})

	t.Run("NoRange", func(t *testing.T) {
		if tr := ExtractTimeRange("매일 운동"); tr != nil {
			t.Errorf("expected nil, got %+v", tr)
		}
	})
}
