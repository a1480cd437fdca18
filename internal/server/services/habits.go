package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TayeEmmanu/Habitly/internal/common"
	"github.com/TayeEmmanu/Habitly/internal/dbx"
	"github.com/TayeEmmanu/Habitly/internal/recurrence"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/repomanager"
)

// DefaultCategory is assigned when a habit is created without a category.
const DefaultCategory = "productivity"

// HabitWithStreaks decorates a habit with its streak figures and total
// completion count.
type HabitWithStreaks struct {
	*models.Habit
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
}

// HabitDayStatus is a habit's state for one calendar date: whether it counts
// as done on that date, how many completions it has there, and its streaks.
type HabitDayStatus struct {
	HabitWithStreaks
	Completed       bool
	CompletionCount int
}

type HabitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHabitService(db *sql.DB, m repomanager.RepositoryManager) *HabitService {
	return &HabitService{db: db, repomanager: m}
}

func (s *HabitService) validate(habit *models.Habit) error {
	if habit.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if habit.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", common.ErrorValidation)
	}
	if err := habit.Schedule().Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// Create stores a new habit for userID. Missing optional fields get the
// original defaults: category "productivity", daily goal 1, start date today.
func (s *HabitService) Create(ctx context.Context, userID string, habit *models.Habit) (*models.Habit, error) {

	habit.UserID = userID
	if habit.Category == "" {
		habit.Category = DefaultCategory
	}
	if habit.DailyGoal == 0 {
		habit.DailyGoal = 1
	}
	if habit.StartDate.IsZero() {
		habit.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if err := s.validate(habit); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Habits(s.db).Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("error creating habit: %w", err)
	}
	return created, nil
}

func (s *HabitService) Update(ctx context.Context, habit *models.Habit) (*models.Habit, error) {

	if habit.Category == "" {
		habit.Category = DefaultCategory
	}
	if habit.DailyGoal == 0 {
		habit.DailyGoal = 1
	}

	if err := s.validate(habit); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Habits(s.db).Update(ctx, habit)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating habit: %w", err)
	}
	return updated, nil
}

func (s *HabitService) Get(ctx context.Context, id, userID string) (*models.Habit, error) {
	return s.repomanager.Habits(s.db).GetByID(ctx, id, userID)
}

func (s *HabitService) List(ctx context.Context, userID string, includeArchived bool) ([]*models.Habit, error) {
	return s.repomanager.Habits(s.db).ListByUser(ctx, userID, includeArchived)
}

// ListByDate returns the user's habits with their done-state for one date.
// A habit with allowMultiple counts as done once the summed count reaches its
// daily goal; otherwise any completion on the date marks it done. Streaks
// stay anchored to today so that browsing past dates does not change the
// reported current streak.
func (s *HabitService) ListByDate(ctx context.Context, userID string, date time.Time, includeArchived bool) ([]*HabitDayStatus, error) {

	habits, err := s.repomanager.Habits(s.db).ListByUser(ctx, userID, includeArchived)
	if err != nil {
		return nil, err
	}

	completionsRepo := s.repomanager.Completions(s.db)
	today := time.Now()

	result := make([]*HabitDayStatus, 0, len(habits))
	for _, habit := range habits {
		count, err := completionsRepo.CountForDate(ctx, habit.ID, date)
		if err != nil {
			return nil, err
		}

		completed := count > 0
		if habit.AllowMultiple {
			completed = count >= habit.DailyGoal
		}

		withStreaks, err := s.decorate(ctx, habit, today)
		if err != nil {
			return nil, err
		}

		result = append(result, &HabitDayStatus{
			HabitWithStreaks: *withStreaks,
			Completed:        completed,
			CompletionCount:  count,
		})
	}
	return result, nil
}

// ListWithStreaks returns every habit of the user, archived included,
// decorated with streaks anchored to today.
func (s *HabitService) ListWithStreaks(ctx context.Context, userID string) ([]*HabitWithStreaks, error) {

	habits, err := s.repomanager.Habits(s.db).ListByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	result := make([]*HabitWithStreaks, 0, len(habits))
	for _, habit := range habits {
		withStreaks, err := s.decorate(ctx, habit, today)
		if err != nil {
			return nil, err
		}
		result = append(result, withStreaks)
	}
	return result, nil
}

func (s *HabitService) GetWithStreaks(ctx context.Context, id, userID string) (*HabitWithStreaks, error) {
	habit, err := s.repomanager.Habits(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, habit, time.Now())
}

func (s *HabitService) decorate(ctx context.Context, habit *models.Habit, today time.Time) (*HabitWithStreaks, error) {
	completions, err := s.repomanager.Completions(s.db).ListByHabit(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(completions))
	for i, c := range completions {
		dates[i] = c.CompletedDate
	}

	streaks, err := recurrence.Streaks(habit.Schedule(), dates, today)
	if err != nil {
		return nil, err
	}

	return &HabitWithStreaks{
		Habit:            habit,
		CurrentStreak:    streaks.Current,
		LongestStreak:    streaks.Longest,
		TotalCompletions: len(completions),
	}, nil
}

func (s *HabitService) Archive(ctx context.Context, id, userID string) (*models.Habit, error) {
	return s.repomanager.Habits(s.db).SetArchived(ctx, id, userID, true)
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) (*models.Habit, error) {
	return s.repomanager.Habits(s.db).SetArchived(ctx, id, userID, false)
}

func (s *HabitService) ListArchived(ctx context.Context, userID string) ([]*models.Habit, error) {
	return s.repomanager.Habits(s.db).ListArchived(ctx, userID)
}

// Delete removes a habit and, through the schema's cascade, its completions.
func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	return s.repomanager.Habits(s.db).Delete(ctx, id, userID)
}

// Complete records a completion. Habits without allowMultiple pass through
// the recurrence gate first; a rejection comes back as ErrorGateRejected
// wrapped with the human-readable reason. The gate check and the write run
// in one transaction so two racing requests cannot both pass.
func (s *HabitService) Complete(ctx context.Context, id, userID string, date time.Time, count int) (*models.Completion, error) {

	habit, err := s.repomanager.Habits(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if count <= 0 {
		count = 1
	}

	if habit.AllowMultiple {
		return s.repomanager.Completions(s.db).Upsert(ctx, id, date, count)
	}

	var completion *models.Completion
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Completions(tx)

		last, err := repo.LastDate(ctx, id)
		if err != nil {
			return err
		}

		decision, err := recurrence.CanComplete(habit.Schedule(), last, date)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		if !decision.Allowed {
			return fmt.Errorf("%w: %s", common.ErrorGateRejected, decision.Reason)
		}

		completion, err = repo.Upsert(ctx, id, date, 1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}

// Decrement lowers the completion count for a date on an allowMultiple habit.
// When the count reaches zero the row is deleted and nil is returned.
func (s *HabitService) Decrement(ctx context.Context, id, userID string, date time.Time, count int) (*models.Completion, error) {

	habit, err := s.repomanager.Habits(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !habit.AllowMultiple {
		return nil, fmt.Errorf("%w: this habit does not support multiple completions", common.ErrorValidation)
	}

	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if count <= 0 {
		count = 1
	}

	var completion *models.Completion
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Completions(tx)

		existing, err := repo.Get(ctx, id, date)
		if err != nil {
			return err
		}

		newCount := existing.Count - count
		if newCount <= 0 {
			return repo.Delete(ctx, id, date)
		}

		completion, err = repo.SetCount(ctx, id, date, newCount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}

// Uncomplete removes the completion row for a date entirely, regardless of
// its count.
func (s *HabitService) Uncomplete(ctx context.Context, id, userID string, date time.Time) error {

	if _, err := s.repomanager.Habits(s.db).GetByID(ctx, id, userID); err != nil {
		return err
	}

	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	return s.repomanager.Completions(s.db).Delete(ctx, id, date)
}

// CompletionHistory returns a habit's completions, most recent first.
func (s *HabitService) CompletionHistory(ctx context.Context, id, userID string) ([]*models.Completion, error) {
	if _, err := s.repomanager.Habits(s.db).GetByID(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Completions(s.db).ListByHabit(ctx, id)
}

// ListCompletions returns the completions of every habit the user owns.
func (s *HabitService) ListCompletions(ctx context.Context, userID string) ([]*models.Completion, error) {
	return s.repomanager.Completions(s.db).ListByUser(ctx, userID)
}
