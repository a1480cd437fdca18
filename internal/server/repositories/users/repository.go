package users

import (
	"context"

	"github.com/TayeEmmanu/Habitly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, excludeUserID string) (bool, error)
	UpdateProfile(ctx context.Context, id string, name string, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
