package completions

import (
	"context"
	"time"

	"github.com/TayeEmmanu/Habitly/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, habitID string, date time.Time, count int) (*models.Completion, error)
	Get(ctx context.Context, habitID string, date time.Time) (*models.Completion, error)
	SetCount(ctx context.Context, habitID string, date time.Time, count int) (*models.Completion, error)
	Delete(ctx context.Context, habitID string, date time.Time) error
	ListByHabit(ctx context.Context, habitID string) ([]*models.Completion, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Completion, error)
	LastDate(ctx context.Context, habitID string) (*time.Time, error)
	CountForDate(ctx context.Context, habitID string, date time.Time) (int, error)
}
