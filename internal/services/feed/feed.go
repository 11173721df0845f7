package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/repository"
)

// Hub fans out live activity snapshots to per-user subscribers. Every
// successful write notifies the hub, which re-reads the user's full
// descending sequence and delivers it to each subscriber. Delivery is
// at-least-once per change; when a subscriber lags, intermediate snapshots
// are replaced by the newest one.
type Hub struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
	timeout    time.Duration

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	ch   chan []domain.Activity
	once sync.Once
}

// NewHub builds a hub reading snapshots from the given repository.
func NewHub(activities repository.ActivityRepository, timeout time.Duration, logger *zap.Logger) *Hub {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		activities: activities,
		logger:     logger,
		timeout:    timeout,
		subs:       make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe registers a listener for one user's activity snapshots.
//
// The returned cancel func is idempotent; calling it twice is a no-op.
// A snapshot already buffered at cancel time may still be received;
// at most one late delivery.
func (h *Hub) Subscribe(userID string) (<-chan []domain.Activity, func()) {
	sub := &subscriber{ch: make(chan []domain.Activity, 1)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		sub.once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[userID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Notify schedules a snapshot refresh for the user. It returns immediately;
// the subscription never fires synchronously with the triggering write.
func (h *Hub) Notify(userID string) {
	h.mu.Lock()
	hasSubs := len(h.subs[userID]) > 0
	h.mu.Unlock()
	if !hasSubs {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		activities, err := h.activities.ListForUser(ctx, userID)
		if err != nil {
			h.logger.Warn("live snapshot refresh failed",
				zap.String("user_id", userID), zap.Error(err))
			return
		}
		h.publish(userID, activities)
	}()
}

func (h *Hub) publish(userID string, activities []domain.Activity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[userID] {
		select {
		case sub.ch <- activities:
		default:
			// subscriber is holding a stale snapshot: replace it
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- activities
		}
	}
}

// SubscriberCount reports the number of active listeners for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
