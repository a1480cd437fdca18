package recurrence

import "time"

// dateOnly collapses t to midnight UTC of its calendar date, discarding both
// the time of day and the original location. Every comparison in this package
// goes through it.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day distance from a to b. Negative when b is
// earlier than a.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

// floorDiv divides rounding toward negative infinity, so that dates before
// the habit start map to negative period indexes.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// weekStart returns the Monday of t's ISO week.
func weekStart(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// monthsBetween returns the calendar-month distance from a to b, ignoring
// days of month.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// addMonthsClamped advances t by n calendar months, clamping the day of month
// to the length of the target month (Jan 31 + 1 month = Feb 29, not Mar 2 as
// time.AddDate would give).
func addMonthsClamped(t time.Time, n int) time.Time {
	d := dateOnly(t)
	first := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day()
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth returns the number of days in t's month.
func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
