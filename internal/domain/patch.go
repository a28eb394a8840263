package domain

import (
	"time"
)

// Patch describes a partial update to a timer. Nil fields are left unchanged.
// Only user-editable fields appear here; stopwatch run-state transitions go
// through the store's dedicated control operations.
type Patch struct {
	Name       *string
	Color      *string
	TargetDate *time.Time // countdown only
	Timezone   *string    // countdown and worldclock
	City       *string    // worldclock only
	Country    *string    // worldclock only
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.TargetDate == nil &&
		p.Timezone == nil && p.City == nil && p.Country == nil
}

// Apply merges the patch into a copy of the timer and returns it.
// Fields that do not apply to the timer's type are ignored.
func (p Patch) Apply(t Timer) Timer {
	out := t.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	switch out.Type {
	case TypeCountdown:
		if p.TargetDate != nil {
			out.Countdown.TargetDate = *p.TargetDate
		}
		if p.Timezone != nil {
			out.Countdown.Timezone = *p.Timezone
		}
	case TypeWorldClock:
		if p.Timezone != nil {
			out.WorldClock.Timezone = *p.Timezone
		}
		if p.City != nil {
			out.WorldClock.City = *p.City
		}
		if p.Country != nil {
			out.WorldClock.Country = *p.Country
		}
	}
	return out
}
