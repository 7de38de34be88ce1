package planner

import (
	"testing"
	"time"
)

func TestGetNextMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "MidWeek",
			now:  time.Date(2024, 5, 8, 15, 30, 0, 0, time.UTC), // Wednesday
			want: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "MondayRollsToNextWeek",
			now:  time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC), // Monday
			want: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Sunday",
			now:  time.Date(2024, 5, 12, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetNextMonday(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("GetNextMonday(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
