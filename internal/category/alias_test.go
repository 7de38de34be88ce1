package category

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Name
	}{
		{"잠", Sleep},
		{"sleep", Sleep},
		{"끼니", Meals},
		{"피트니스", Exercise},
		{"workout", Exercise},
		{"출퇴근", Commute},
		{"미팅", Meetings},
		{"공부", Study},
		{"가사", Chores},
		{"놀이", Leisure},
		{"", Uncategorized},
		{"  ", Uncategorized},
		// Unrecognized names pass through unchanged.
		{"명상", Name("명상")},
		{"Deep work", DeepWork},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"잠", "sleep", "식사", "운동", "회의", "공부", "집안일", "여가",
		"명상", "Deep work", "Uncategorized", "", "커스텀 카테고리",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(string(once))
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
