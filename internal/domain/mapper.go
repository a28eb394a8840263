package domain

import (
	"time"

	"timepulse/internal/repository/sqlite"
)

// TimerMapper handles conversion between domain and database Timer models.
type TimerMapper struct{}

// NewTimerMapper creates a new TimerMapper instance.
func NewTimerMapper() *TimerMapper {
	return &TimerMapper{}
}

// ToDatabase flattens a domain Timer into its database row form.
func (m *TimerMapper) ToDatabase(t Timer) sqlite.Timer {
	row := sqlite.Timer{
		ID:            t.ID,
		Type:          string(t.Type),
		Name:          t.Name,
		Color:         t.Color,
		CreatedAt:     t.CreatedAt,
		AutoGenerated: t.AutoGenerated,
	}
	switch t.Type {
	case TypeCountdown:
		if t.Countdown != nil {
			target := t.Countdown.TargetDate
			row.TargetDate = &target
			row.Timezone = t.Countdown.Timezone
		}
	case TypeStopwatch:
		if t.Stopwatch != nil {
			row.StartTime = t.Stopwatch.StartTime
			row.Running = t.Stopwatch.Running
			row.PausedAt = t.Stopwatch.PausedAt
			row.TotalPausedMs = t.Stopwatch.TotalPaused.Milliseconds()
		}
	case TypeWorldClock:
		if t.WorldClock != nil {
			row.Timezone = t.WorldClock.Timezone
			row.City = t.WorldClock.City
			row.Country = t.WorldClock.Country
		}
	}
	return row
}

// FromDatabase rebuilds a domain Timer from its database row form.
func (m *TimerMapper) FromDatabase(row sqlite.Timer) Timer {
	t := Timer{
		ID:            row.ID,
		Type:          Type(row.Type),
		Name:          row.Name,
		Color:         row.Color,
		CreatedAt:     row.CreatedAt,
		AutoGenerated: row.AutoGenerated,
	}
	switch t.Type {
	case TypeCountdown:
		spec := &CountdownSpec{Timezone: row.Timezone}
		if row.TargetDate != nil {
			spec.TargetDate = *row.TargetDate
		}
		t.Countdown = spec
	case TypeStopwatch:
		t.Stopwatch = &StopwatchSpec{
			StartTime:   row.StartTime,
			Running:     row.Running,
			PausedAt:    row.PausedAt,
			TotalPaused: time.Duration(row.TotalPausedMs) * time.Millisecond,
		}
	case TypeWorldClock:
		t.WorldClock = &WorldClockSpec{
			Timezone: row.Timezone,
			City:     row.City,
			Country:  row.Country,
		}
	}
	return t
}

// ToDatabaseSlice converts a slice of domain Timers to database rows.
func (m *TimerMapper) ToDatabaseSlice(timers []Timer) []*sqlite.Timer {
	rows := make([]*sqlite.Timer, len(timers))
	for i, timer := range timers {
		row := m.ToDatabase(timer)
		rows[i] = &row
	}
	return rows
}

// FromDatabaseSlice converts a slice of database rows to domain Timers.
func (m *TimerMapper) FromDatabaseSlice(rows []*sqlite.Timer) []Timer {
	timers := make([]Timer, len(rows))
	for i, row := range rows {
		timers[i] = m.FromDatabase(*row)
	}
	return timers
}
