package services

import "time"

// FormatAttendanceTime renders a record time relative to now, in loc:
// "Today, 03:04 PM", "Yesterday, 03:04 PM" or "2/1/2006, 03:04 PM".
func FormatAttendanceTime(ts, now time.Time, loc *time.Location) string {
	if ts.IsZero() {
		return "Unknown time"
	}
	if loc == nil {
		loc = time.UTC
	}

	t := ts.In(loc)
	n := now.In(loc)
	clock := t.Format("03:04 PM")

	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

	switch {
	case day.Equal(today):
		return "Today, " + clock
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday, " + clock
	default:
		return t.Format("2/1/2006") + ", " + clock
	}
}

// dayBounds returns [start of day, start of next day) for t in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
