package parse

import "testing"

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		line string
		span string
		want string
	}{
		{"span removed verbatim", "화·목·토 20:00~21:00 운동", "20:00~21:00", "운동"},
		{"weekday range stripped", "월~금 09:00~18:00 근무", "09:00~18:00", "근무"},
		{"meal spacing normalized", "매일 아침 식사", "", "아침식사"},
		{"frequency keyword stripped", "매일 운동", "", "운동"},
		{"leftover range stripped without span", "평일 09:00~18:00 근무", "", "근무"},
		{"single time stripped", "오후 9시 독서", "", "독서"},
		{"separators collapsed", "공부 | 복습", "", "공부 복습"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractTitle(tc.line, tc.span); got != tc.want {
				t.Errorf("ExtractTitle(%q, %q) = %q, want %q", tc.line, tc.span, got, tc.want)
			}
		})
	}
}

func TestExtractTitleDefaults(t *testing.T) {
	cases := []struct {
		name string
		line string
		span string
	}{
		{"empty residual", "매일 09:00~18:00", "09:00~18:00"},
		{"numeric residual", "1234", ""},
		{"single weekday residual", "월", ""},
		{"blank line", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractTitle(tc.line, tc.span); got != DefaultActivityTitle {
				t.Errorf("ExtractTitle(%q) = %q, want the %q placeholder", tc.line, got, DefaultActivityTitle)
			}
		})
	}
}
