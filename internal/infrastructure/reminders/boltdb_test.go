package reminders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "reminders.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScheduleAndDueOrder(t *testing.T) {
	store := openStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&Reminder{ID: "later", UserID: "u1", FireAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Schedule(&Reminder{ID: "earlier", UserID: "u1", FireAt: now.Add(-time.Hour)}))
	require.NoError(t, store.Schedule(&Reminder{ID: "future", UserID: "u1", FireAt: now.Add(time.Hour)}))

	due, err := store.Due(now, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)

	assert.Equal(t, "earlier", due[0].ID, "due reminders come out in fire-time order")
	assert.Equal(t, "later", due[1].ID)
}

func TestDueRespectsLimit(t *testing.T) {
	store := openStore(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Schedule(&Reminder{
			UserID: "u1",
			FireAt: now.Add(-time.Duration(i+1) * time.Minute),
		}))
	}

	due, err := store.Due(now, 3)
	require.NoError(t, err)
	assert.Len(t, due, 3)
}

func TestDueDoesNotRemove(t *testing.T) {
	store := openStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&Reminder{ID: "r1", UserID: "u1", FireAt: now.Add(-time.Minute)}))

	_, err := store.Due(now, 10)
	require.NoError(t, err)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestRemove(t *testing.T) {
	store := openStore(t)
	now := time.Now()

	require.NoError(t, store.Schedule(&Reminder{ID: "r1", UserID: "u1", FireAt: now.Add(-time.Minute)}))

	due, err := store.Due(now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)

	require.NoError(t, store.Remove(due[0]))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestCancelForActivity(t *testing.T) {
	store := openStore(t)
	fireAt := time.Now().Add(time.Hour)

	require.NoError(t, store.Schedule(&Reminder{ID: "r1", UserID: "u1", ActivityID: "a1", FireAt: fireAt}))
	require.NoError(t, store.Schedule(&Reminder{ID: "r2", UserID: "u1", ActivityID: "a1", FireAt: fireAt.Add(time.Minute)}))
	require.NoError(t, store.Schedule(&Reminder{ID: "r3", UserID: "u2", ActivityID: "a2", FireAt: fireAt}))

	require.NoError(t, store.CancelForActivity("a1"))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	require.NoError(t, store.CancelForActivity(""), "blank id is a no-op")
}

func TestScheduleAssignsDefaults(t *testing.T) {
	store := openStore(t)

	reminder := Reminder{UserID: "u1"}
	require.NoError(t, store.Schedule(&reminder))

	assert.NotEmpty(t, reminder.ID, "caller sees the generated id")
	assert.False(t, reminder.CreatedAt.IsZero())
	assert.False(t, reminder.FireAt.IsZero())

	due, err := store.Due(time.Now().Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, reminder.ID, due[0].ID)
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.db")

	store, err := Open(path, "reminders")
	require.NoError(t, err)
	require.NoError(t, store.Schedule(&Reminder{ID: "r1", UserID: "u1", FireAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, "reminders")
	require.NoError(t, err)
	defer reopened.Close()

	size, err := reopened.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}
