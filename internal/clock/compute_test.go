package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepulse/internal/domain"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestComputeDisplay_Countdown(t *testing.T) {
	tests := []struct {
		name     string
		target   time.Time
		expected domain.Display
	}{
		{
			name:     "should decompose 1d1h1m1s remaining",
			target:   testNow.Add(90061 * time.Second), // 90,061,000 ms
			expected: domain.Display{Days: 1, Hours: 1, Minutes: 1, Seconds: 1},
		},
		{
			name:     "should floor partial seconds",
			target:   testNow.Add(90*time.Second + 900*time.Millisecond),
			expected: domain.Display{Minutes: 1, Seconds: 30},
		},
		{
			name:     "should report all zero and finished at the target instant",
			target:   testNow,
			expected: domain.Display{Finished: true},
		},
		{
			name:     "should report all zero and finished past the target",
			target:   testNow.Add(-time.Hour),
			expected: domain.Display{Finished: true},
		},
		{
			name:     "should handle large day counts",
			target:   testNow.Add(400 * 24 * time.Hour),
			expected: domain.Display{Days: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := domain.NewCountdown("test", tt.target, "UTC")
			assert.Equal(t, tt.expected, ComputeDisplay(timer, testNow))
		})
	}
}

func TestComputeDisplay_Stopwatch(t *testing.T) {
	start := testNow.Add(-5 * time.Second)
	pausedAt := start.Add(3 * time.Second)

	tests := []struct {
		name     string
		spec     domain.StopwatchSpec
		expected domain.Display
	}{
		{
			name:     "should show elapsed seconds while running",
			spec:     domain.StopwatchSpec{StartTime: &start, Running: true},
			expected: domain.Display{Seconds: 5},
		},
		{
			name:     "should freeze at the pause instant while paused",
			spec:     domain.StopwatchSpec{StartTime: &start, PausedAt: &pausedAt},
			expected: domain.Display{Seconds: 3},
		},
		{
			name: "should exclude accumulated paused time",
			spec: domain.StopwatchSpec{
				StartTime:   timePtr(testNow.Add(-20 * time.Second)),
				Running:     true,
				TotalPaused: 10 * time.Second,
			},
			expected: domain.Display{Seconds: 10},
		},
		{
			name:     "should show zero in the reset state",
			spec:     domain.StopwatchSpec{StartTime: &testNow},
			expected: domain.Display{},
		},
		{
			name:     "should show zero when start time is missing",
			spec:     domain.StopwatchSpec{Running: true},
			expected: domain.Display{},
		},
		{
			name:     "should clamp negative elapsed time to zero",
			spec:     domain.StopwatchSpec{StartTime: timePtr(testNow.Add(time.Hour)), Running: true},
			expected: domain.Display{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := tt.spec
			timer := domain.Timer{Type: domain.TypeStopwatch, Name: "sw", Stopwatch: &spec}
			assert.Equal(t, tt.expected, ComputeDisplay(timer, testNow))
		})
	}
}

func TestComputeDisplay_WorldClock(t *testing.T) {
	t.Run("should show wall clock time in the target zone", func(t *testing.T) {
		timer := domain.NewWorldClock("tokyo", "Asia/Tokyo", "Tokyo", "Japan")

		display := ComputeDisplay(timer, testNow)

		loc, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)
		hour, minute, second := testNow.In(loc).Clock()
		assert.Equal(t, domain.Display{Hours: hour, Minutes: minute, Seconds: second}, display)
	})

	t.Run("should never report days", func(t *testing.T) {
		timer := domain.NewWorldClock("nyc", "America/New_York", "New York", "USA")

		display := ComputeDisplay(timer, testNow)

		assert.Zero(t, display.Days)
		assert.False(t, display.ShowDays())
	})

	t.Run("should fall back to the system zone for unknown timezones", func(t *testing.T) {
		timer := domain.NewWorldClock("bad", "Not/AZone", "Nowhere", "")

		display := ComputeDisplay(timer, testNow)

		hour, minute, second := testNow.In(time.Local).Clock()
		assert.Equal(t, domain.Display{Hours: hour, Minutes: minute, Seconds: second}, display)
	})
}

func TestComputeDisplay_Idempotent(t *testing.T) {
	timers := []domain.Timer{
		domain.NewCountdown("cd", testNow.Add(90061*time.Second), "UTC"),
		domain.NewWorldClock("wc", "Europe/London", "London", "UK"),
	}
	sw := domain.NewStopwatch("sw")
	sw.Stopwatch.StartTime = timePtr(testNow.Add(-42 * time.Second))
	sw.Stopwatch.Running = true
	timers = append(timers, sw)

	for _, timer := range timers {
		first := ComputeDisplay(timer, testNow)
		second := ComputeDisplay(timer, testNow)
		assert.True(t, first.Equal(second), "repeated computation for %s differed", timer.Type)
	}
}

func TestDisplay_String(t *testing.T) {
	assert.Equal(t, "01:02:03:04", domain.Display{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}.String())
	assert.Equal(t, "02:03:04", domain.Display{Hours: 2, Minutes: 3, Seconds: 4}.String())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
