package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/infrastructure/push"
)

type fakeUserRepo struct {
	users      []domain.User
	cleared    []string
	byID       map[string]*domain.User
	lookupErr  error
	clearErr   error
	pageCalls  int
	pageLimits []int
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) SavePushToken(ctx context.Context, userID, token string) error {
	panic("not used")
}

func (f *fakeUserRepo) ClearPushToken(ctx context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userID)
	return nil
}

func (f *fakeUserRepo) ListWithPushToken(ctx context.Context, afterID string, limit int) ([]domain.User, error) {
	f.pageCalls++
	f.pageLimits = append(f.pageLimits, limit)

	var page []domain.User
	for _, user := range f.users {
		if user.ID > afterID {
			page = append(page, user)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

type fakeActivityDays struct {
	byUser map[string][]domain.Activity
	err    error
}

func (f *fakeActivityDays) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	panic("not used")
}

func (f *fakeActivityDays) ListForUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	panic("not used")
}

func (f *fakeActivityDays) ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeActivityDays) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	panic("not used")
}

func (f *fakeActivityDays) Update(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	panic("not used")
}

func (f *fakeActivityDays) ToggleCompletion(ctx context.Context, id string, completed bool) (*domain.Activity, error) {
	panic("not used")
}

func (f *fakeActivityDays) Delete(ctx context.Context, id string) error {
	panic("not used")
}

type fakeGateway struct {
	sent         []push.Message
	batches      [][]push.Message
	validated    [][]string
	sendErr      error
	unregistered map[string]bool
}

func (f *fakeGateway) Send(ctx context.Context, msg push.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeGateway) SendBatch(ctx context.Context, msgs []push.Message) ([]push.Result, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.batches = append(f.batches, msgs)
	results := make([]push.Result, 0, len(msgs))
	for _, msg := range msgs {
		results = append(results, push.Result{Token: msg.Token, OK: true})
	}
	return results, nil
}

func (f *fakeGateway) ValidateTokens(ctx context.Context, tokens []string) ([]push.Result, error) {
	f.validated = append(f.validated, tokens)
	results := make([]push.Result, 0, len(tokens))
	for _, token := range tokens {
		if f.unregistered[token] {
			results = append(results, push.Result{Token: token, Unregistered: true, Err: "NotRegistered"})
			continue
		}
		results = append(results, push.Result{Token: token, OK: true})
	}
	return results, nil
}

func usersWithTokens(n int) []domain.User {
	out := make([]domain.User, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("u%03d", i)
		out = append(out, domain.User{ID: id, PushToken: "token-" + id})
	}
	return out
}

func TestMotivationMessage(t *testing.T) {
	t.Run("no activities", func(t *testing.T) {
		title, body := MotivationMessage(nil)
		assert.Equal(t, "Bom dia! ☀️", title)
		assert.Equal(t, "Que tal começar o dia sendo produtivo?", body)
	})

	t.Run("all completed", func(t *testing.T) {
		title, body := MotivationMessage([]domain.Activity{
			{Completed: true}, {Completed: true},
		})
		assert.Equal(t, "Parabéns! 🎉", title)
		assert.Equal(t, "Você já completou todas as atividades de hoje!", body)
	})

	t.Run("pending activities", func(t *testing.T) {
		title, body := MotivationMessage([]domain.Activity{
			{Completed: true}, {Completed: false}, {Completed: false},
		})
		assert.Equal(t, "Vamos lá! 💪", title)
		assert.Equal(t, "Você tem 2 atividade(s) esperando por você hoje", body)
	})
}

func TestMotivationJobRunPagesUsers(t *testing.T) {
	users := &fakeUserRepo{users: usersWithTokens(5)}
	activities := &fakeActivityDays{byUser: map[string][]domain.Activity{}}
	gateway := &fakeGateway{}

	job := NewMotivationJob(users, activities, gateway, nil, JobConfig{PageSize: 2})

	require.NoError(t, job.Run(context.Background(), time.Now()))

	// 3 pages of users plus the final empty page
	assert.Equal(t, 4, users.pageCalls)
	require.Len(t, gateway.batches, 3)

	total := 0
	for _, batch := range gateway.batches {
		total += len(batch)
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, "token-u000", gateway.batches[0][0].Token)
	assert.Equal(t, "motivacao_diaria", gateway.batches[0][0].Data["type"])
}

func TestMotivationJobSkipsUserOnActivityError(t *testing.T) {
	users := &fakeUserRepo{users: usersWithTokens(1)}
	activities := &fakeActivityDays{err: domain.ErrStoreUnavailable}
	gateway := &fakeGateway{}

	job := NewMotivationJob(users, activities, gateway, nil, JobConfig{PageSize: 10})

	require.NoError(t, job.Run(context.Background(), time.Now()))
	assert.Empty(t, gateway.batches, "no batch issued when every user was skipped")
}

func TestMotivationJobNoUsers(t *testing.T) {
	users := &fakeUserRepo{}
	gateway := &fakeGateway{}
	job := NewMotivationJob(users, &fakeActivityDays{}, gateway, nil, JobConfig{})

	require.NoError(t, job.Run(context.Background(), time.Now()))
	assert.Equal(t, 1, users.pageCalls)
	assert.Empty(t, gateway.batches)
}

func TestTokenJanitorClearsUnregistered(t *testing.T) {
	users := &fakeUserRepo{users: usersWithTokens(3)}
	gateway := &fakeGateway{unregistered: map[string]bool{"token-u001": true}}

	janitor := NewTokenJanitor(users, gateway, nil, JobConfig{PageSize: 10})

	require.NoError(t, janitor.Run(context.Background()))
	assert.Equal(t, []string{"u001"}, users.cleared)
}

func TestTokenJanitorKeepsValidTokens(t *testing.T) {
	users := &fakeUserRepo{users: usersWithTokens(4)}
	gateway := &fakeGateway{}

	janitor := NewTokenJanitor(users, gateway, nil, JobConfig{PageSize: 2})

	require.NoError(t, janitor.Run(context.Background()))
	assert.Empty(t, users.cleared)
	assert.Len(t, gateway.validated, 2, "tokens validated one page at a time")
}
