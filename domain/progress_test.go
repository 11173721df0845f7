package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dayOf(activities int, completed int) []Activity {
	out := make([]Activity, 0, activities)
	for i := 0; i < activities; i++ {
		out = append(out, Activity{Completed: i < completed})
	}
	return out
}

func TestComputeDailyProgress(t *testing.T) {
	date := time.Date(2026, 2, 14, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		total      int
		completed  int
		percentage int
	}{
		{"empty day", 0, 0, 0},
		{"nothing done", 4, 0, 0},
		{"one quarter", 4, 1, 25},
		{"one third rounds up", 3, 1, 33},
		{"two thirds rounds up", 3, 2, 67},
		{"half", 2, 1, 50},
		{"all done", 5, 5, 100},
		{"one of six", 6, 1, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDailyProgress(date, dayOf(tt.total, tt.completed))

			assert.Equal(t, "2026-02-14", got.Date)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.completed, got.Completed)
			assert.Equal(t, tt.percentage, got.Percentage)
		})
	}
}

func TestComputeDailyProgressNilSlice(t *testing.T) {
	got := ComputeDailyProgress(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, DailyProgress{Date: "2026-01-01"}, got)
}
