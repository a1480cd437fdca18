// Package recurrence implements the habit recurrence engine: mapping calendar
// dates to periods, deciding whether a new completion is permitted, and
// computing completion streaks. All functions are pure and operate at
// day granularity; times of day and time zones are normalized away before
// any comparison.
package recurrence

import (
	"errors"
	"fmt"
)

// Frequency is the recurrence rule of a habit.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// ErrInvalidSchedule is returned when a schedule mixes frequency and custom
// interval incorrectly. Callers should match it with errors.Is.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule describes how often a habit recurs. CustomInterval is the period
// length in days and is meaningful only when Frequency is FrequencyCustom.
type Schedule struct {
	Frequency      Frequency
	CustomInterval int
}

// Validate checks the frequency/interval invariant: a custom schedule must
// carry a positive interval, and a fixed schedule must not carry one.
func (s Schedule) Validate() error {
	switch s.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		if s.CustomInterval != 0 {
			return fmt.Errorf("%w: interval set for %s frequency", ErrInvalidSchedule, s.Frequency)
		}
		return nil
	case FrequencyCustom:
		if s.CustomInterval < 1 {
			return fmt.Errorf("%w: custom frequency requires an interval of at least 1 day", ErrInvalidSchedule)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidSchedule, s.Frequency)
	}
}
