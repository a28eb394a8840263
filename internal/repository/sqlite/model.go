package sqlite

import "time"

// Timer is the flat database representation of a timer. Type-specific
// fields of the other variants stay at their zero values.
type Timer struct {
	ID            string
	Type          string
	Name          string
	Color         string
	CreatedAt     time.Time
	AutoGenerated bool
	// Position preserves the collection order across save/load cycles.
	Position int

	// countdown
	TargetDate *time.Time
	Timezone   string

	// stopwatch
	StartTime     *time.Time
	Running       bool
	PausedAt      *time.Time
	TotalPausedMs int64

	// worldclock (shares Timezone with countdown)
	City    string
	Country string
}
