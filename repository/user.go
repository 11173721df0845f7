package repository

import (
	"context"

	"github.com/rotina-app/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	SavePushToken(ctx context.Context, userID, token string) error
	ClearPushToken(ctx context.Context, userID string) error
	// ListWithPushToken pages through users holding a registration token,
	// keyset-style: pass the last seen id (empty for the first page).
	ListWithPushToken(ctx context.Context, afterID string, limit int) ([]domain.User, error)
}
