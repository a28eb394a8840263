package domain

import (
	"time"
)

// Type identifies the kind of timer.
type Type string

const (
	TypeCountdown  Type = "countdown"
	TypeStopwatch  Type = "stopwatch"
	TypeWorldClock Type = "worldclock"
)

// IsValid reports whether t is one of the known timer types.
func (t Type) IsValid() bool {
	switch t {
	case TypeCountdown, TypeStopwatch, TypeWorldClock:
		return true
	}
	return false
}

// Timer represents a single countdown, stopwatch or world clock entry.
// Exactly one of the type-specific field sets is populated, selected by Type.
// ID, Type and CreatedAt are immutable after creation.
type Timer struct {
	ID            string
	Type          Type
	Name          string
	Color         string
	CreatedAt     time.Time
	AutoGenerated bool

	Countdown  *CountdownSpec
	Stopwatch  *StopwatchSpec
	WorldClock *WorldClockSpec
}

// CountdownSpec holds the countdown-specific fields.
// Timezone is informational; the target is an absolute instant.
type CountdownSpec struct {
	TargetDate time.Time
	Timezone   string
}

// StopwatchSpec holds the stopwatch-specific fields.
// Running implies PausedAt is nil. TotalPaused accumulates across
// pause/resume cycles and never decreases.
type StopwatchSpec struct {
	StartTime   *time.Time
	Running     bool
	PausedAt    *time.Time
	TotalPaused time.Duration
}

// WorldClockSpec holds the world-clock-specific fields.
type WorldClockSpec struct {
	Timezone string
	City     string
	Country  string
}

// NewCountdown creates a countdown timer with the given target instant.
func NewCountdown(name string, target time.Time, timezone string) Timer {
	return Timer{
		Type:      TypeCountdown,
		Name:      name,
		Countdown: &CountdownSpec{TargetDate: target, Timezone: timezone},
	}
}

// NewStopwatch creates a stopwatch timer in the reset state.
func NewStopwatch(name string) Timer {
	return Timer{
		Type:      TypeStopwatch,
		Name:      name,
		Stopwatch: &StopwatchSpec{},
	}
}

// NewWorldClock creates a world clock timer for the given IANA zone.
func NewWorldClock(name, timezone, city, country string) Timer {
	return Timer{
		Type:       TypeWorldClock,
		Name:       name,
		WorldClock: &WorldClockSpec{Timezone: timezone, City: city, Country: country},
	}
}

// IsValid checks that the timer carries the field set matching its type.
func (t Timer) IsValid() bool {
	switch t.Type {
	case TypeCountdown:
		return t.Countdown != nil && t.Stopwatch == nil && t.WorldClock == nil
	case TypeStopwatch:
		return t.Stopwatch != nil && t.Countdown == nil && t.WorldClock == nil
	case TypeWorldClock:
		return t.WorldClock != nil && t.Countdown == nil && t.Stopwatch == nil
	}
	return false
}

// Clone returns a deep copy, so callers cannot mutate store-held state
// through the type-specific pointers.
func (t Timer) Clone() Timer {
	out := t
	if t.Countdown != nil {
		cd := *t.Countdown
		out.Countdown = &cd
	}
	if t.Stopwatch != nil {
		sw := *t.Stopwatch
		if t.Stopwatch.StartTime != nil {
			st := *t.Stopwatch.StartTime
			sw.StartTime = &st
		}
		if t.Stopwatch.PausedAt != nil {
			pa := *t.Stopwatch.PausedAt
			sw.PausedAt = &pa
		}
		out.Stopwatch = &sw
	}
	if t.WorldClock != nil {
		wc := *t.WorldClock
		out.WorldClock = &wc
	}
	return out
}

// Expired reports whether a countdown's target instant has passed.
// Non-countdown timers never expire.
func (t Timer) Expired(now time.Time) bool {
	if t.Type != TypeCountdown || t.Countdown == nil {
		return false
	}
	return !t.Countdown.TargetDate.After(now)
}

// String returns the timer name for display purposes.
func (t Timer) String() string {
	return t.Name
}
