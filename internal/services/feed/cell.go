package feed

import (
	"sync"
	"time"

	"github.com/rotina-app/backend/domain"
)

// Cell is a state holder for the latest emitted snapshot. Each emission is
// stored verbatim; derived views select from it without re-sorting or
// deduplicating.
type Cell struct {
	mu     sync.RWMutex
	latest []domain.Activity
}

func (c *Cell) Set(activities []domain.Activity) {
	c.mu.Lock()
	c.latest = activities
	c.mu.Unlock()
}

func (c *Cell) Latest() []domain.Activity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Today returns the activities scheduled on the calendar day of now,
// preserving the stored order.
func (c *Cell) Today(now time.Time) []domain.Activity {
	return FilterDay(c.Latest(), now)
}

// FilterDay is a pure, order-preserving selection of the activities whose
// scheduled date falls on the same local calendar day as ref.
func FilterDay(activities []domain.Activity, ref time.Time) []domain.Activity {
	refY, refM, refD := ref.Date()
	var out []domain.Activity
	for _, a := range activities {
		y, m, d := a.ScheduledAt.In(ref.Location()).Date()
		if y == refY && m == refM && d == refD {
			out = append(out, a)
		}
	}
	return out
}
