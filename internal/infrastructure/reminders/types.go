package reminders

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a locally scheduled notification awaiting delivery. Reminders
// survive restarts; once delivered (or their activity disappears) they are
// removed.
type Reminder struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	FireAt     time.Time `json:"fire_at"`
	CreatedAt  time.Time `json:"created_at"`

	storeKey []byte
}

func (r *Reminder) normalize() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.FireAt.IsZero() {
		r.FireAt = r.CreatedAt
	}
}
