package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/backend/domain"
)

type stubActivityRepo struct {
	byDay map[string][]domain.Activity
	err   error
	calls []time.Time
}

func (s *stubActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	panic("not used")
}

func (s *stubActivityRepo) ListForUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	panic("not used")
}

func (s *stubActivityRepo) ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Activity, error) {
	s.calls = append(s.calls, date)
	if s.err != nil {
		return nil, s.err
	}
	return s.byDay[date.Format("2006-01-02")], nil
}

func (s *stubActivityRepo) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	panic("not used")
}

func (s *stubActivityRepo) Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	panic("not used")
}

func (s *stubActivityRepo) ToggleCompletion(ctx context.Context, id string, completed bool) (*domain.Activity, error) {
	panic("not used")
}

func (s *stubActivityRepo) Delete(ctx context.Context, id string) error {
	panic("not used")
}

func TestDaily(t *testing.T) {
	date := time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)
	repo := &stubActivityRepo{byDay: map[string][]domain.Activity{
		"2026-05-20": {
			{Completed: true},
			{Completed: false},
			{Completed: false},
		},
	}}

	got, err := New(repo, nil).Daily(context.Background(), "u1", date)
	require.NoError(t, err)

	assert.Equal(t, domain.DailyProgress{
		Date:       "2026-05-20",
		Total:      3,
		Completed:  1,
		Percentage: 33,
	}, got)
}

func TestDailyEmptyDay(t *testing.T) {
	repo := &stubActivityRepo{}
	got, err := New(repo, nil).Daily(context.Background(), "u1", time.Date(2026, 5, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, domain.DailyProgress{Date: "2026-05-21"}, got)
}

func TestDailyPropagatesRepositoryError(t *testing.T) {
	repo := &stubActivityRepo{err: domain.ErrStoreUnavailable}

	_, err := New(repo, nil).Daily(context.Background(), "u1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable, "errors must pass through unchanged")
}

func TestPeriodInclusiveRange(t *testing.T) {
	repo := &stubActivityRepo{byDay: map[string][]domain.Activity{
		"2026-05-18": {{Completed: true}},
		"2026-05-20": {{Completed: false}, {Completed: true}},
	}}

	from := time.Date(2026, 5, 18, 9, 30, 0, 0, time.UTC)
	to := time.Date(2026, 5, 20, 23, 0, 0, 0, time.UTC)

	got, err := New(repo, nil).Period(context.Background(), "u1", from, to)
	require.NoError(t, err)
	require.Len(t, got, 3, "both endpoints included")

	assert.Equal(t, "2026-05-18", got[0].Date)
	assert.Equal(t, 100, got[0].Percentage)
	assert.Equal(t, "2026-05-19", got[1].Date)
	assert.Equal(t, 0, got[1].Total)
	assert.Equal(t, "2026-05-20", got[2].Date)
	assert.Equal(t, 50, got[2].Percentage)
}

func TestPeriodSingleDay(t *testing.T) {
	repo := &stubActivityRepo{}
	day := time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC)

	got, err := New(repo, nil).Period(context.Background(), "u1", day, day)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Len(t, repo.calls, 1)
}

func TestPeriodRejectsReversedRange(t *testing.T) {
	repo := &stubActivityRepo{}
	from := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := New(repo, nil).Period(context.Background(), "u1", from, to)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, repo.calls)
}

func TestPeriodRejectsOverlongRange(t *testing.T) {
	repo := &stubActivityRepo{}
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(2, 0, 0)

	_, err := New(repo, nil).Period(context.Background(), "u1", from, to)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, repo.calls)
}

func TestPeriodStopsOnFirstError(t *testing.T) {
	repo := &stubActivityRepo{err: domain.ErrStoreUnavailable}
	from := time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC)

	_, err := New(repo, nil).Period(context.Background(), "u1", from, from.AddDate(0, 0, 5))
	require.Error(t, err)
	assert.Len(t, repo.calls, 1)
}
