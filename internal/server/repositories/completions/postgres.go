// Package completions provides a PostgreSQL-backed repository for habit
// completion records. The schema enforces at most one row per
// (habit, completed_date) pair; repeat completions accumulate in
// completion_count via an atomic upsert.
package completions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TayeEmmanu/Habitly/internal/common"
	"github.com/TayeEmmanu/Habitly/internal/dbx"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
)

// PostgresRepository implements completion storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert records a completion for the given date: it inserts a new row or
// atomically adds count to an existing one, and returns the stored row.
func (r *PostgresRepository) Upsert(ctx context.Context, habitID string, date time.Time, count int) (*models.Completion, error) {
	query := `
		INSERT INTO habit_completions (habit_id, completed_date, completion_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, completed_date)
		DO UPDATE SET completion_count = habit_completions.completion_count + $3
		RETURNING id, habit_id, completed_date, completion_count, created_at
	`
	c := &models.Completion{}
	err := r.db.QueryRowContext(ctx, query, habitID, date, count).
		Scan(&c.ID, &c.HabitID, &c.CompletedDate, &c.Count, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Get returns the completion row for a (habit, date) pair, or
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, habitID string, date time.Time) (*models.Completion, error) {
	query := `
		SELECT id, habit_id, completed_date, completion_count, created_at
		FROM habit_completions
		WHERE habit_id = $1 AND completed_date = $2
	`
	c := &models.Completion{}
	err := r.db.QueryRowContext(ctx, query, habitID, date).
		Scan(&c.ID, &c.HabitID, &c.CompletedDate, &c.Count, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// SetCount overwrites the completion count for a (habit, date) pair and
// returns the stored row. The count must stay positive; a count that would
// reach 0 is a Delete, not a SetCount (rows with count 0 are never kept).
func (r *PostgresRepository) SetCount(ctx context.Context, habitID string, date time.Time, count int) (*models.Completion, error) {
	query := `
		UPDATE habit_completions
		SET completion_count = $1
		WHERE habit_id = $2 AND completed_date = $3
		RETURNING id, habit_id, completed_date, completion_count, created_at
	`
	c := &models.Completion{}
	err := r.db.QueryRowContext(ctx, query, count, habitID, date).
		Scan(&c.ID, &c.HabitID, &c.CompletedDate, &c.Count, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Delete removes the completion row for a (habit, date) pair. Returns
// common.ErrorNotFound when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, habitID string, date time.Time) error {
	query := `
		DELETE FROM habit_completions
		WHERE habit_id = $1 AND completed_date = $2
	`
	res, err := r.db.ExecContext(ctx, query, habitID, date)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ListByHabit returns all completions of a habit, most recent date first.
func (r *PostgresRepository) ListByHabit(ctx context.Context, habitID string) ([]*models.Completion, error) {
	query := `
		SELECT id, habit_id, completed_date, completion_count, created_at
		FROM habit_completions
		WHERE habit_id = $1
		ORDER BY completed_date DESC
	`
	return r.list(ctx, query, habitID)
}

// ListByUser returns the completions of every habit the user owns, most
// recent date first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Completion, error) {
	query := `
		SELECT hc.id, hc.habit_id, hc.completed_date, hc.completion_count, hc.created_at
		FROM habit_completions hc
		JOIN habits h ON hc.habit_id = h.id
		WHERE h.user_id = $1
		ORDER BY hc.completed_date DESC
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Completion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Completion
	for rows.Next() {
		c := &models.Completion{}
		if err := rows.Scan(&c.ID, &c.HabitID, &c.CompletedDate, &c.Count, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LastDate returns the most recent completion date of a habit, or nil when
// the habit has no completions.
func (r *PostgresRepository) LastDate(ctx context.Context, habitID string) (*time.Time, error) {
	query := `
		SELECT completed_date
		FROM habit_completions
		WHERE habit_id = $1
		ORDER BY completed_date DESC
		LIMIT 1
	`
	var date time.Time
	if err := r.db.QueryRowContext(ctx, query, habitID).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &date, nil
}

// CountForDate returns the summed completion count of a habit on a date,
// 0 when there is no row.
func (r *PostgresRepository) CountForDate(ctx context.Context, habitID string, date time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(completion_count), 0)
		FROM habit_completions
		WHERE habit_id = $1 AND completed_date = $2
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, habitID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
