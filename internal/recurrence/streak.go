package recurrence

import (
	"slices"
	"time"
)

// StreakPair holds the two streak figures shown for a habit.
type StreakPair struct {
	Current int
	Longest int
}

// Streaks computes the current and longest completion streaks for a habit.
// completions may arrive in any order but must contain at most one entry per
// calendar date (the store enforces that). The current streak is anchored to
// today, not to whatever date the user happens to be viewing: if the most
// recent completion no longer falls inside the active period, it is 0.
func Streaks(s Schedule, completions []time.Time, today time.Time) (StreakPair, error) {
	if err := s.Validate(); err != nil {
		return StreakPair{}, err
	}

	if len(completions) == 0 {
		return StreakPair{}, nil
	}

	dates := make([]time.Time, len(completions))
	for i, c := range completions {
		dates[i] = dateOnly(c)
	}
	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a) // descending, most recent first
	})

	longest := 0
	run := 1
	firstRun := 0 // run length of the segment starting at the most recent date

	for i := 1; i < len(dates); i++ {
		if isConsecutive(s, dates[i-1], dates[i]) {
			run++
			continue
		}
		if firstRun == 0 {
			firstRun = run
		}
		longest = max(longest, run)
		run = 1
	}
	longest = max(longest, run)
	if firstRun == 0 {
		firstRun = run
	}

	current := 0
	if inActivePeriod(s, dates[0], today) {
		current = firstRun
	}

	return StreakPair{Current: current, Longest: longest}, nil
}

// isConsecutive reports whether two completions in adjacent list positions
// (newer first) keep a streak alive. Strict, no grace windows: one day apart
// for daily, adjacent ISO weeks for weekly, adjacent calendar months for
// monthly. Custom intervals accept any gap within the interval length.
func isConsecutive(s Schedule, newer, older time.Time) bool {
	switch s.Frequency {
	case FrequencyDaily:
		return daysBetween(older, newer) == 1
	case FrequencyWeekly:
		return daysBetween(weekStart(older), weekStart(newer)) == 7
	case FrequencyMonthly:
		return monthsBetween(older, newer) == 1
	default: // FrequencyCustom
		gap := daysBetween(older, newer)
		return gap >= 1 && gap <= s.CustomInterval
	}
}

// inActivePeriod reports whether the most recent completion still counts
// toward the period containing today.
func inActivePeriod(s Schedule, mostRecent, today time.Time) bool {
	switch s.Frequency {
	case FrequencyDaily:
		return daysBetween(mostRecent, today) == 0
	case FrequencyWeekly:
		return weekStart(mostRecent).Equal(weekStart(today))
	case FrequencyMonthly:
		return monthsBetween(mostRecent, today) == 0
	default: // FrequencyCustom
		gap := daysBetween(mostRecent, today)
		return gap >= 0 && gap < s.CustomInterval
	}
}
