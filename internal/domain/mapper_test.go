package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerMapper_RoundTrip(t *testing.T) {
	mapper := NewTimerMapper()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	target := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	start := created.Add(-time.Hour)

	countdown := NewCountdown("xmas", target, "America/New_York")
	countdown.ID = "cd"
	countdown.Color = "#F759AB"
	countdown.CreatedAt = created
	countdown.AutoGenerated = true

	stopwatch := NewStopwatch("run")
	stopwatch.ID = "sw"
	stopwatch.CreatedAt = created
	stopwatch.Stopwatch.StartTime = &start
	stopwatch.Stopwatch.Running = true
	stopwatch.Stopwatch.TotalPaused = 10 * time.Second

	worldclock := NewWorldClock("tokyo", "Asia/Tokyo", "Tokyo", "Japan")
	worldclock.ID = "wc"
	worldclock.CreatedAt = created

	for _, timer := range []Timer{countdown, stopwatch, worldclock} {
		t.Run(string(timer.Type), func(t *testing.T) {
			row := mapper.ToDatabase(timer)
			back := mapper.FromDatabase(row)
			assert.Equal(t, timer, back)
		})
	}
}

func TestTimerMapper_SliceRoundTrip(t *testing.T) {
	mapper := NewTimerMapper()
	target := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)

	cd := NewCountdown("a", target, "UTC")
	cd.ID = "a"
	cd.CreatedAt = target.AddDate(0, -1, 0)
	sw := NewStopwatch("b")
	sw.ID = "b"
	sw.CreatedAt = cd.CreatedAt

	timers := []Timer{cd, sw}
	rows := mapper.ToDatabaseSlice(timers)
	require.Len(t, rows, 2)

	back := mapper.FromDatabaseSlice(rows)
	assert.Equal(t, timers, back)
}
