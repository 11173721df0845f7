package domain

import (
	"math"
	"time"
)

// DailyProgress summarizes one user's activities for one calendar day.
// It is derived, never persisted.
type DailyProgress struct {
	Date       string `json:"data"` // YYYY-MM-DD
	Total      int    `json:"total_atividades"`
	Completed  int    `json:"atividades_concluidas"`
	Percentage int    `json:"percentual_conclusao"`
}

// ComputeDailyProgress reduces a day's activities to a progress snapshot.
// An empty set yields the zero progress, never a division error.
func ComputeDailyProgress(date time.Time, activities []Activity) DailyProgress {
	total := len(activities)
	completed := 0
	for _, a := range activities {
		if a.Completed {
			completed++
		}
	}

	percentage := 0
	if total > 0 {
		// round half up, matching the mobile client's Math.round
		percentage = int(math.Floor(float64(completed)/float64(total)*100 + 0.5))
	}

	return DailyProgress{
		Date:       date.Format("2006-01-02"),
		Total:      total,
		Completed:  completed,
		Percentage: percentage,
	}
}
