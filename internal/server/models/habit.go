package models

import (
	"time"

	"github.com/TayeEmmanu/Habitly/internal/recurrence"
)

// Habit is a user-owned recurring activity. CustomInterval is 0 unless
// Frequency is custom (stored as NULL). StartDate carries calendar-date
// semantics; its time of day is never consulted.
type Habit struct {
	ID             string
	UserID         string
	Name           string
	Category       string
	Frequency      recurrence.Frequency
	CustomInterval int
	StartDate      time.Time
	DailyGoal      int
	AllowMultiple  bool
	Archived       bool
	ArchivedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Schedule returns the recurrence schedule of the habit.
func (h *Habit) Schedule() recurrence.Schedule {
	return recurrence.Schedule{Frequency: h.Frequency, CustomInterval: h.CustomInterval}
}
