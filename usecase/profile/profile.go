package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sanitized := *user
	sanitized.PasswordHash = ""
	return &sanitized, nil
}

func (uc *UseCase) UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (*domain.User, error) {
	updated, err := uc.users.UpdateProfile(ctx, &domain.User{
		ID:          userID,
		DisplayName: strings.TrimSpace(displayName),
		PhotoURL:    strings.TrimSpace(photoURL),
	})
	if err != nil {
		return nil, err
	}
	sanitized := *updated
	sanitized.PasswordHash = ""
	return &sanitized, nil
}

// SavePushToken stores a device registration token for push delivery.
func (uc *UseCase) SavePushToken(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return domain.WrapError(domain.ErrCodeInvalid, "push token is required", nil)
	}
	return uc.users.SavePushToken(ctx, userID, token)
}

func (uc *UseCase) ClearPushToken(ctx context.Context, userID string) error {
	return uc.users.ClearPushToken(ctx, userID)
}
