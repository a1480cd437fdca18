package resettokens

import (
	"context"
	"time"

	"github.com/TayeEmmanu/Habitly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
}
