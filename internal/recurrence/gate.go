package recurrence

import (
	"fmt"
	"time"
)

// Decision is the outcome of a completion gate check. Reason is set only
// when the completion is not allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

// ReasonBackdated rejects completions requested for a date earlier than the
// most recent recorded completion; accepting them would corrupt streak math.
const ReasonBackdated = "date precedes last completion"

// CanComplete decides whether a new completion may be recorded on requested,
// given the date of the most recent completion (nil when none exists). It
// applies only to habits that permit one completion per period; habits with
// allowMultiple are never gated.
func CanComplete(s Schedule, last *time.Time, requested time.Time) (Decision, error) {
	if err := s.Validate(); err != nil {
		return Decision{}, err
	}

	if last == nil {
		return Decision{Allowed: true}, nil
	}

	days := daysBetween(*last, requested)
	if days < 0 {
		return Decision{Reason: ReasonBackdated}, nil
	}

	switch s.Frequency {
	case FrequencyDaily:
		if days >= 1 {
			return Decision{Allowed: true}, nil
		}
		return Decision{Reason: "habit can only be completed once per day"}, nil
	case FrequencyWeekly:
		if days >= 7 {
			return Decision{Allowed: true}, nil
		}
		return Decision{Reason: fmt.Sprintf("habit can only be completed once every 7 days (%d days remaining)", 7-days)}, nil
	case FrequencyMonthly:
		next := addMonthsClamped(*last, 1)
		if !dateOnly(requested).Before(next) {
			return Decision{Allowed: true}, nil
		}
		return Decision{Reason: "habit can only be completed once per month"}, nil
	default: // FrequencyCustom
		if days >= s.CustomInterval {
			return Decision{Allowed: true}, nil
		}
		return Decision{Reason: fmt.Sprintf("habit can only be completed once every %d days (%d days remaining)", s.CustomInterval, s.CustomInterval-days)}, nil
	}
}
