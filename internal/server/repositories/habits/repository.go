package habits

import (
	"context"

	"github.com/TayeEmmanu/Habitly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	Update(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetByID(ctx context.Context, id string, userID string) (*models.Habit, error)
	ListByUser(ctx context.Context, userID string, includeArchived bool) ([]*models.Habit, error)
	ListArchived(ctx context.Context, userID string) ([]*models.Habit, error)
	SetArchived(ctx context.Context, id string, userID string, archived bool) (*models.Habit, error)
	Delete(ctx context.Context, id string, userID string) error
}
