package domain

import (
	"strings"
	"time"
)

// Category classifies an activity into one of the fixed app categories.
type Category string

const (
	CategoryWork     Category = "trabalho"
	CategoryPersonal Category = "pessoal"
	CategoryExercise Category = "exercicio"
	CategoryStudy    Category = "estudo"
	CategoryLeisure  Category = "lazer"
)

// Priority is the urgency level of an activity.
type Priority string

const (
	PriorityLow    Priority = "baixa"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
)

// Activity is a single dated task owned by a user. Values are immutable:
// mutations go through the With* transforms, which return a new value.
type Activity struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	ScheduledAt time.Time `json:"data"`
	Completed   bool      `json:"concluida"`
	Category    Category  `json:"categoria"`
	Priority    Priority  `json:"prioridade"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WithCompletion returns a copy with the completion flag set.
// The repository stamps updated_at as part of the write.
func (a Activity) WithCompletion(completed bool) Activity {
	a.Completed = completed
	return a
}

// ActivityUpdate carries the user-editable fields of an activity.
type ActivityUpdate struct {
	Title       string
	Description string
	ScheduledAt time.Time
	Category    Category
	Priority    Priority
}

// WithUpdatedFields returns a copy with the editable fields replaced.
func (a Activity) WithUpdatedFields(upd ActivityUpdate) Activity {
	a.Title = upd.Title
	a.Description = upd.Description
	a.ScheduledAt = upd.ScheduledAt
	a.Category = upd.Category
	a.Priority = upd.Priority
	return a
}

// Validate checks invariants enforced before any store call.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	if !a.Category.Valid() {
		return WrapError(ErrCodeInvalid, "unknown category", nil)
	}
	if !a.Priority.Valid() {
		return WrapError(ErrCodeInvalid, "unknown priority", nil)
	}
	return nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryExercise, CategoryStudy, CategoryLeisure:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
