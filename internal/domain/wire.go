package domain

import (
	"encoding/json"
	"time"
)

// timerJSON is the flat wire representation used by the remote sync payload
// and share tokens. Field names follow the persisted browser-app format, so
// collections round-trip against remote blobs written by other clients.
type timerJSON struct {
	ID            string     `json:"id"`
	Type          Type       `json:"type,omitempty"`
	Name          string     `json:"name"`
	Color         string     `json:"color,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	AutoGenerated bool       `json:"isAutoGenerated,omitempty"`

	TargetDate *time.Time `json:"targetDate,omitempty"`
	Timezone   string     `json:"timezone,omitempty"`

	StartTime     *time.Time `json:"startTime,omitempty"`
	Running       bool       `json:"isRunning,omitempty"`
	PausedAt      *time.Time `json:"pausedAt,omitempty"`
	TotalPausedMs int64      `json:"totalPausedTime,omitempty"`

	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// MarshalJSON flattens the tagged union into the wire format.
func (t Timer) MarshalJSON() ([]byte, error) {
	w := timerJSON{
		ID:            t.ID,
		Type:          t.Type,
		Name:          t.Name,
		Color:         t.Color,
		AutoGenerated: t.AutoGenerated,
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		w.CreatedAt = &created
	}
	switch t.Type {
	case TypeCountdown:
		if t.Countdown != nil {
			target := t.Countdown.TargetDate
			w.TargetDate = &target
			w.Timezone = t.Countdown.Timezone
		}
	case TypeStopwatch:
		if t.Stopwatch != nil {
			w.StartTime = t.Stopwatch.StartTime
			w.Running = t.Stopwatch.Running
			w.PausedAt = t.Stopwatch.PausedAt
			w.TotalPausedMs = t.Stopwatch.TotalPaused.Milliseconds()
		}
	case TypeWorldClock:
		if t.WorldClock != nil {
			w.Timezone = t.WorldClock.Timezone
			w.City = t.WorldClock.City
			w.Country = t.WorldClock.Country
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the tagged union from the wire format.
// A missing type defaults to countdown, matching the historical payloads.
func (t *Timer) UnmarshalJSON(data []byte) error {
	var w timerJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == "" {
		w.Type = TypeCountdown
	}
	out := Timer{
		ID:            w.ID,
		Type:          w.Type,
		Name:          w.Name,
		Color:         w.Color,
		AutoGenerated: w.AutoGenerated,
	}
	if w.CreatedAt != nil {
		out.CreatedAt = *w.CreatedAt
	}
	switch w.Type {
	case TypeCountdown:
		spec := &CountdownSpec{Timezone: w.Timezone}
		if w.TargetDate != nil {
			spec.TargetDate = *w.TargetDate
		}
		out.Countdown = spec
	case TypeStopwatch:
		out.Stopwatch = &StopwatchSpec{
			StartTime:   w.StartTime,
			Running:     w.Running,
			PausedAt:    w.PausedAt,
			TotalPaused: time.Duration(w.TotalPausedMs) * time.Millisecond,
		}
	case TypeWorldClock:
		out.WorldClock = &WorldClockSpec{
			Timezone: w.Timezone,
			City:     w.City,
			Country:  w.Country,
		}
	}
	*t = out
	return nil
}
