package recurrence

import "time"

// Period is one recurrence window of a habit. Start and End are inclusive
// calendar dates; Index 0 is the period containing the habit's start date.
type Period struct {
	Index int
	Start time.Time
	End   time.Time
}

// PeriodIndex computes the ordinal period that target falls into, counted
// from the habit's start date. The index is negative when target precedes
// start; callers must treat that as "not yet started", not as valid data.
func PeriodIndex(s Schedule, start, target time.Time) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	days := daysBetween(start, target)

	switch s.Frequency {
	case FrequencyDaily:
		return days, nil
	case FrequencyWeekly:
		return floorDiv(days, 7), nil
	case FrequencyMonthly:
		idx := monthsBetween(start, target)
		if target.Day() < start.Day() {
			idx--
		}
		return idx, nil
	default: // FrequencyCustom
		return floorDiv(days, s.CustomInterval), nil
	}
}

// PeriodBounds returns the inclusive date range of the period with the given
// index. It is the exact inverse of PeriodIndex: for any date d,
// PeriodBounds(s, start, PeriodIndex(s, start, d)) brackets d.
func PeriodBounds(s Schedule, start time.Time, index int) (Period, error) {
	if err := s.Validate(); err != nil {
		return Period{}, err
	}

	begin := dateOnly(start)

	switch s.Frequency {
	case FrequencyDaily:
		day := begin.AddDate(0, 0, index)
		return Period{Index: index, Start: day, End: day}, nil
	case FrequencyWeekly:
		ps := begin.AddDate(0, 0, index*7)
		return Period{Index: index, Start: ps, End: ps.AddDate(0, 0, 6)}, nil
	case FrequencyMonthly:
		ps := monthlyPeriodStart(begin, index)
		pe := monthlyPeriodStart(begin, index+1).AddDate(0, 0, -1)
		return Period{Index: index, Start: ps, End: pe}, nil
	default: // FrequencyCustom
		ps := begin.AddDate(0, 0, index*s.CustomInterval)
		return Period{Index: index, Start: ps, End: ps.AddDate(0, 0, s.CustomInterval-1)}, nil
	}
}

// monthlyPeriodStart anchors period boundaries to the habit's day of month.
// When the target month is too short for the anchor day (a habit started on
// the 31st, in February), the period starts on the 1st of the following
// month instead. This matches the day-of-month comparison in PeriodIndex
// even across month-end rollovers.
func monthlyPeriodStart(start time.Time, index int) time.Time {
	first := time.Date(start.Year(), start.Month()+time.Month(index), 1, 0, 0, 0, 0, time.UTC)
	if start.Day() > lastDayOfMonth(first) {
		return first.AddDate(0, 1, 0)
	}
	return time.Date(first.Year(), first.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}
