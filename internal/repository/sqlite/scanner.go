package sqlite

import (
	"database/sql"
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimer scans a single timer from a database row
func ScanTimer(scanner Scanner) (*Timer, error) {
	timer := &Timer{}
	var createdAt string
	var targetDate, startTime, pausedAt sql.NullString

	err := scanner.Scan(
		&timer.ID,
		&timer.Type,
		&timer.Name,
		&timer.Color,
		&createdAt,
		&timer.AutoGenerated,
		&timer.Position,
		&targetDate,
		&timer.Timezone,
		&startTime,
		&timer.Running,
		&pausedAt,
		&timer.TotalPausedMs,
		&timer.City,
		&timer.Country,
	)
	if err != nil {
		return nil, err
	}

	if timer.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if timer.TargetDate, err = parseNullableTime(targetDate); err != nil {
		return nil, err
	}
	if timer.StartTime, err = parseNullableTime(startTime); err != nil {
		return nil, err
	}
	if timer.PausedAt, err = parseNullableTime(pausedAt); err != nil {
		return nil, err
	}

	return timer, nil
}

// ScanTimers scans multiple timers from database rows
func ScanTimers(rows Rows) ([]*Timer, error) {
	var timers []*Timer
	for rows.Next() {
		timer, err := ScanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, timer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timers, nil
}

func parseNullableTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	parsed, err := ParseTimeFromDB(value.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
