package services

import (
	"testing"
	"time"
)

func TestFormatAttendanceTime(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, ist)

	tests := []struct {
		name string
		ts   time.Time
		loc  *time.Location
		want string
	}{
		{"today", time.Date(2024, 5, 10, 8, 15, 0, 0, ist), ist, "Today, 08:15 AM"},
		{"yesterday", time.Date(2024, 5, 9, 23, 59, 0, 0, ist), ist, "Yesterday, 11:59 PM"},
		{"older", time.Date(2024, 4, 30, 13, 5, 0, 0, ist), ist, "30/4/2024, 01:05 PM"},
		// 20:00 UTC on the 9th is already the 10th in IST.
		{"converted to display zone", time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC), ist, "Today, 01:30 AM"},
		{"single digit day and month", time.Date(2024, 3, 5, 10, 0, 0, 0, ist), ist, "5/3/2024, 10:00 AM"},
		{"zero", time.Time{}, ist, "Unknown time"},
		{"nil location is UTC", time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC), nil, "Today, 03:00 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAttendanceTime(tt.ts, now, tt.loc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	from, to := dayBounds(time.Date(2024, 5, 10, 18, 30, 0, 0, time.UTC), time.UTC)
	if !from.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)) || to.Sub(from) != 24*time.Hour {
		t.Errorf("got [%v, %v)", from, to)
	}
}
