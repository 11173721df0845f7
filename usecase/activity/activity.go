package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

// LiveFeed receives change notifications after successful writes.
type LiveFeed interface {
	Notify(userID string)
}

// Events publishes user-facing pushes for activity milestones.
// Delivery is fire-and-forget; failures never fail the write.
type Events interface {
	ActivityCreated(ctx context.Context, activity domain.Activity)
	ActivityCompleted(ctx context.Context, activity domain.Activity)
}

// Reminders cancels pending local reminders tied to an activity.
type Reminders interface {
	CancelForActivity(activityID string) error
}

type UseCase struct {
	activities repository.ActivityRepository
	feed       LiveFeed
	events     Events
	reminders  Reminders
	logger     *zap.Logger
}

func New(activities repository.ActivityRepository, feed LiveFeed, events Events, reminders Reminders, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities: activities,
		feed:       feed,
		events:     events,
		reminders:  reminders,
		logger:     logger,
	}
}

func (uc *UseCase) ListActivities(ctx context.Context, userID string) ([]domain.Activity, error) {
	return uc.activities.ListForUser(ctx, userID)
}

func (uc *UseCase) ListActivitiesOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Activity, error) {
	return uc.activities.ListForUserOnDate(ctx, userID, date)
}

func (uc *UseCase) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	return uc.activities.GetByID(ctx, id)
}

func (uc *UseCase) CreateActivity(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.activities.Create(ctx, activity)
	if err != nil {
		return nil, err
	}

	uc.notifyChange(created.UserID)
	if uc.events != nil {
		uc.events.ActivityCreated(ctx, *created)
	}
	return created, nil
}

func (uc *UseCase) UpdateActivity(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.owned(ctx, activity.UserID, activity.ID); err != nil {
		return nil, err
	}

	updated, err := uc.activities.Update(ctx, activity)
	if err != nil {
		return nil, err
	}

	uc.notifyChange(updated.UserID)
	return updated, nil
}

// ToggleCompletion flips the completion flag. The congratulation push fires
// only on the pending-to-done transition, mirroring what the store watcher
// in the hosted version did.
func (uc *UseCase) ToggleCompletion(ctx context.Context, userID, id string, completed bool) (*domain.Activity, error) {
	previous, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated, err := uc.activities.ToggleCompletion(ctx, id, completed)
	if err != nil {
		return nil, err
	}

	uc.notifyChange(updated.UserID)
	if uc.events != nil && !previous.Completed && updated.Completed {
		uc.events.ActivityCompleted(ctx, *updated)
	}
	return updated, nil
}

func (uc *UseCase) DeleteActivity(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.activities.Delete(ctx, id); err != nil {
		return err
	}

	if uc.reminders != nil {
		if err := uc.reminders.CancelForActivity(id); err != nil {
			uc.logger.Warn("failed to cancel reminders for deleted activity",
				zap.String("activity_id", id), zap.Error(err))
		}
	}
	uc.notifyChange(userID)
	return nil
}

// owned loads an activity and verifies the caller is its owner. Foreign
// activities are indistinguishable from missing ones.
func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Activity, error) {
	activity, err := uc.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.UserID != userID {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

func (uc *UseCase) notifyChange(userID string) {
	if uc.feed != nil {
		uc.feed.Notify(userID)
	}
}
