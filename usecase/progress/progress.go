package progress

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

// maxPeriodDays bounds period queries; one query per day is issued.
const maxPeriodDays = 366

type UseCase struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

func New(activities repository.ActivityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities: activities,
		logger:     logger,
	}
}

// Daily computes the progress snapshot for one calendar day. Repository
// failures propagate unchanged; an empty day yields the zero progress.
func (uc *UseCase) Daily(ctx context.Context, userID string, date time.Time) (domain.DailyProgress, error) {
	activities, err := uc.activities.ListForUserOnDate(ctx, userID, date)
	if err != nil {
		return domain.DailyProgress{}, err
	}
	return domain.ComputeDailyProgress(date, activities), nil
}

// Period computes one snapshot per day in the inclusive [from, to] range.
func (uc *UseCase) Period(ctx context.Context, userID string, from, to time.Time) ([]domain.DailyProgress, error) {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "period end precedes start", nil)
	}
	if int(to.Sub(from).Hours()/24) >= maxPeriodDays {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "period too long", nil)
	}

	var snapshots []domain.DailyProgress
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		snapshot, err := uc.Daily(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
