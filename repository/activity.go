package repository

import (
	"context"
	"time"

	"github.com/rotina-app/backend/domain"
)

// ActivityRepository is the persistence facade for user activities.
//
// ListForUser orders by scheduled timestamp descending. ListForUserOnDate
// restricts to the inclusive local-calendar window of the given day
// (midnight belongs to the day, 23:59:59.999 too) and orders ascending.
// Write operations stamp updated_at inside the store; callers never compute it.
type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Activity, error)
	ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Activity, error)
	Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	ToggleCompletion(ctx context.Context, id string, completed bool) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}
