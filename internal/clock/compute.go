// Package clock computes the displayed time value for a timer at a given
// instant. All functions are pure: the same (timer, now) pair always yields
// the same display, and nothing here touches shared state.
package clock

import (
	"time"

	"timepulse/internal/domain"
)

// ComputeDisplay derives the display value for a timer at instant now.
// Countdown and stopwatch values decompose into days/hours/minutes/seconds
// with floor division at each step; there is no rounding.
func ComputeDisplay(t domain.Timer, now time.Time) domain.Display {
	switch t.Type {
	case domain.TypeCountdown:
		return countdownDisplay(t.Countdown, now)
	case domain.TypeStopwatch:
		return stopwatchDisplay(t.Stopwatch, now)
	case domain.TypeWorldClock:
		return worldClockDisplay(t.WorldClock, now)
	default:
		return domain.Display{}
	}
}

func countdownDisplay(spec *domain.CountdownSpec, now time.Time) domain.Display {
	if spec == nil {
		return domain.Display{Finished: true}
	}
	remaining := spec.TargetDate.Sub(now)
	if remaining <= 0 {
		return domain.Display{Finished: true}
	}
	return decompose(remaining)
}

func stopwatchDisplay(spec *domain.StopwatchSpec, now time.Time) domain.Display {
	if spec == nil || spec.StartTime == nil {
		return domain.Display{}
	}

	reference := now
	if !spec.Running {
		if spec.PausedAt == nil {
			// Reset state: nothing has elapsed.
			return domain.Display{}
		}
		reference = *spec.PausedAt
	}

	elapsed := reference.Sub(*spec.StartTime) - spec.TotalPaused
	if elapsed < 0 {
		// Guards against clock skew or a start time in the future.
		elapsed = 0
	}
	return decompose(elapsed)
}

func worldClockDisplay(spec *domain.WorldClockSpec, now time.Time) domain.Display {
	loc := time.Local
	if spec != nil && spec.Timezone != "" {
		if parsed, err := time.LoadLocation(spec.Timezone); err == nil {
			loc = parsed
		}
		// An unknown zone falls back to the system default rather than failing.
	}
	hour, minute, second := now.In(loc).Clock()
	return domain.Display{Hours: hour, Minutes: minute, Seconds: second}
}

// decompose splits a non-negative duration into days, hours (0-23),
// minutes (0-59) and seconds (0-59) using floor division.
func decompose(d time.Duration) domain.Display {
	totalSeconds := int(d / time.Second)
	return domain.Display{
		Days:    totalSeconds / 86400,
		Hours:   totalSeconds / 3600 % 24,
		Minutes: totalSeconds / 60 % 60,
		Seconds: totalSeconds % 60,
	}
}
