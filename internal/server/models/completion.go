package models

import "time"

// Completion records that a habit was done on a calendar date. There is at
// most one row per (habit, date); Count is only meaningful for habits with
// AllowMultiple and a row whose count would reach 0 is deleted instead.
type Completion struct {
	ID            string
	HabitID       string
	CompletedDate time.Time
	Count         int
	CreatedAt     time.Time
}
