package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/infrastructure/reminders"
)

func openTestStore(t *testing.T) *reminders.Store {
	t.Helper()
	store, err := reminders.Open(filepath.Join(t.TempDir(), "reminders.db"), "reminders")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func pendingCount(t *testing.T, store *reminders.Store) int {
	t.Helper()
	size, err := store.Size()
	require.NoError(t, err)
	return size
}

func TestDispatchDeliversDueReminders(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID:         "r1",
		UserID:     "u1",
		ActivityID: "a1",
		Title:      "Hora de correr",
		Body:       "Sua atividade começa agora",
		FireAt:     now.Add(-time.Minute),
	}))
	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID:         "r2",
		UserID:     "u1",
		ActivityID: "a2",
		Title:      "Mais tarde",
		FireAt:     now.Add(time.Hour),
	}))

	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", PushToken: "token-u1"},
	}}
	gateway := &fakeGateway{}
	d := NewReminderDispatcher(store, users, gateway, nil, DispatcherConfig{})

	require.NoError(t, d.Dispatch(context.Background(), now))

	require.Len(t, gateway.sent, 1)
	assert.Equal(t, "token-u1", gateway.sent[0].Token)
	assert.Equal(t, "Hora de correr", gateway.sent[0].Title)
	assert.Equal(t, "lembrete", gateway.sent[0].Data["type"])
	assert.Equal(t, "a1", gateway.sent[0].Data["atividade_id"])

	assert.Equal(t, 1, pendingCount(t, store), "future reminder stays scheduled")
}

func TestDispatchKeepsReminderOnDeliveryFailure(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID: "r1", UserID: "u1", FireAt: now.Add(-time.Minute),
	}))

	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", PushToken: "token-u1"},
	}}
	gateway := &fakeGateway{sendErr: domain.ErrStoreUnavailable}
	d := NewReminderDispatcher(store, users, gateway, nil, DispatcherConfig{})

	require.NoError(t, d.Dispatch(context.Background(), now))
	assert.Equal(t, 1, pendingCount(t, store), "failed delivery is retried next tick")
}

func TestDispatchDropsReminderForMissingUser(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID: "r1", UserID: "ghost", FireAt: now.Add(-time.Minute),
	}))

	users := &fakeUserRepo{byID: map[string]*domain.User{}}
	gateway := &fakeGateway{}
	d := NewReminderDispatcher(store, users, gateway, nil, DispatcherConfig{})

	require.NoError(t, d.Dispatch(context.Background(), now))
	assert.Empty(t, gateway.sent)
	assert.Zero(t, pendingCount(t, store))
}

func TestDispatchDropsReminderWhenTokenMissing(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID: "r1", UserID: "u1", FireAt: now.Add(-time.Minute),
	}))

	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1"},
	}}
	gateway := &fakeGateway{}
	d := NewReminderDispatcher(store, users, gateway, nil, DispatcherConfig{})

	require.NoError(t, d.Dispatch(context.Background(), now))
	assert.Empty(t, gateway.sent)
	assert.Zero(t, pendingCount(t, store))
}

func TestDispatchKeepsReminderOnTransientLookupError(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID: "r1", UserID: "u1", FireAt: now.Add(-time.Minute),
	}))

	users := &fakeUserRepo{lookupErr: domain.ErrStoreUnavailable}
	gateway := &fakeGateway{}
	d := NewReminderDispatcher(store, users, gateway, nil, DispatcherConfig{})

	require.NoError(t, d.Dispatch(context.Background(), now))
	assert.Equal(t, 1, pendingCount(t, store))
}

func TestCancelForActivity(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID: "r1", UserID: "u1", ActivityID: "a1", FireAt: now.Add(time.Hour),
	}))
	require.NoError(t, store.Schedule(&reminders.Reminder{
		ID: "r2", UserID: "u1", ActivityID: "a2", FireAt: now.Add(time.Hour),
	}))

	d := NewReminderDispatcher(store, &fakeUserRepo{}, &fakeGateway{}, nil, DispatcherConfig{})

	require.NoError(t, d.CancelForActivity("a1"))
	assert.Equal(t, 1, pendingCount(t, store))
}
