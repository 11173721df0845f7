package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2026, 7, 4, 15, 30, 0, 0, loc)

	start, end := dayWindow(date)

	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 7, 5, 0, 0, 0, 0, loc), end)
	assert.Equal(t, loc, start.Location())
}

func TestDayWindowBoundaries(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 7, 4, 12, 0, 0, 0, loc)
	start, end := dayWindow(day)

	inWindow := func(ts time.Time) bool {
		return !ts.Before(start) && ts.Before(end)
	}

	midnight := time.Date(2026, 7, 4, 0, 0, 0, 0, loc)
	lastMoment := time.Date(2026, 7, 4, 23, 59, 59, 999000000, loc)
	nextMidnight := time.Date(2026, 7, 5, 0, 0, 0, 0, loc)

	assert.True(t, inWindow(midnight), "00:00:00.000 belongs to the day")
	assert.True(t, inWindow(lastMoment), "23:59:59.999 belongs to the day")
	assert.False(t, inWindow(nextMidnight), "next midnight belongs to the next day")

	nextStart, _ := dayWindow(nextMidnight)
	assert.False(t, lastMoment.Equal(nextStart) || lastMoment.After(nextStart),
		"23:59:59.999 never leaks into the next day's window")
	assert.Equal(t, end, nextStart, "consecutive windows tile without gap or overlap")
}

func TestDayWindowIgnoresTimeOfDay(t *testing.T) {
	loc := time.UTC
	morning, _ := dayWindow(time.Date(2026, 7, 4, 0, 0, 1, 0, loc))
	evening, _ := dayWindow(time.Date(2026, 7, 4, 23, 59, 59, 0, loc))
	assert.Equal(t, morning, evening)
}
