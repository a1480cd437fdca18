// Package habits provides a PostgreSQL-backed repository for habit records.
// Completions live in their own repository; deleting a habit cascades to its
// completions at the schema level.
package habits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TayeEmmanu/Habitly/internal/common"
	"github.com/TayeEmmanu/Habitly/internal/dbx"
	"github.com/TayeEmmanu/Habitly/internal/server/models"
)

const habitColumns = `id, user_id, name, category, frequency, custom_interval, start_date,
		daily_goal, allow_multiple, archived, archived_at, created_at, updated_at`

// PostgresRepository implements habit storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*models.Habit, error) {
	h := &models.Habit{}
	var interval sql.NullInt64
	var archivedAt sql.NullTime
	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Category, &h.Frequency, &interval, &h.StartDate,
		&h.DailyGoal, &h.AllowMultiple, &h.Archived, &archivedAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if interval.Valid {
		h.CustomInterval = int(interval.Int64)
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		h.ArchivedAt = &t
	}
	return h, nil
}

// nullableInterval maps the in-memory "0 means unset" convention to a SQL NULL.
func nullableInterval(interval int) sql.NullInt64 {
	if interval == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(interval), Valid: true}
}

// Create inserts a new habit and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	query := `
		INSERT INTO habits (user_id, name, category, frequency, custom_interval, start_date, daily_goal, allow_multiple)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + habitColumns + `
	`
	row := r.db.QueryRowContext(ctx, query,
		habit.UserID, habit.Name, habit.Category, habit.Frequency,
		nullableInterval(habit.CustomInterval), habit.StartDate, habit.DailyGoal, habit.AllowMultiple)
	created, err := scanHabit(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// Update rewrites the mutable habit fields, scoped to the owning user, and
// returns the stored row or common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	query := `
		UPDATE habits
		SET name = $1, category = $2, frequency = $3, custom_interval = $4,
			start_date = $5, daily_goal = $6, allow_multiple = $7, updated_at = now()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + habitColumns + `
	`
	row := r.db.QueryRowContext(ctx, query,
		habit.Name, habit.Category, habit.Frequency, nullableInterval(habit.CustomInterval),
		habit.StartDate, habit.DailyGoal, habit.AllowMultiple, habit.ID, habit.UserID)
	updated, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

// GetByID returns a habit owned by userID, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string, userID string) (*models.Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE id = $1 AND user_id = $2
	`
	habit, err := scanHabit(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return habit, nil
}

// ListByUser returns the user's habits, newest first, skipping archived ones
// unless includeArchived is set.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]*models.Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	if !includeArchived {
		query = `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = $1 AND archived = false
		ORDER BY created_at DESC
	`
	}
	return r.list(ctx, query, userID)
}

// ListArchived returns the user's archived habits, most recently archived first.
func (r *PostgresRepository) ListArchived(ctx context.Context, userID string) ([]*models.Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = $1 AND archived = true
		ORDER BY archived_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetArchived archives or restores a habit and returns the stored row, or
// common.ErrorNotFound. Archiving stamps archived_at; restoring clears it.
func (r *PostgresRepository) SetArchived(ctx context.Context, id string, userID string, archived bool) (*models.Habit, error) {
	query := `
		UPDATE habits
		SET archived = $1,
			archived_at = CASE WHEN $1 THEN now() ELSE NULL END,
			updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + habitColumns + `
	`
	habit, err := scanHabit(r.db.QueryRowContext(ctx, query, archived, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return habit, nil
}

// Delete removes a habit owned by userID; the schema cascades the delete to
// its completions. Returns common.ErrorNotFound when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		DELETE FROM habits
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
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
