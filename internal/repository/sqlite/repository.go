package sqlite

import (
	"database/sql"

	"timepulse/internal/errors"
	"timepulse/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Setting keys used by the store.
const (
	SettingActiveTimer  = "active_timer_id"
	SettingSyncID       = "sync_id"
	SettingSyncPassword = "sync_password"
)

// Repository defines the interface for database operations
type Repository interface {
	// Collection operations. The timer collection is persisted as a whole
	// after every mutation; SaveCollection replaces the stored set.
	SaveCollection(timers []*Timer, activeID string) error
	LoadCollection() ([]*Timer, string, error)

	// Settings operations
	GetSetting(key string) (string, error)
	SetSetting(key string, value string) error
	DeleteSetting(key string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveCollection atomically replaces the stored timer collection and the
// active timer pointer.
func (r *SQLiteRepository) SaveCollection(timers []*Timer, activeID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.NewDatabaseError("begin transaction", err)
	}

	if _, err := tx.Exec(`DELETE FROM timers`); err != nil {
		tx.Rollback()
		return errors.NewDatabaseError("clear timers", err)
	}

	insert := `
	INSERT INTO timers (
		id, type, name, color, created_at, auto_generated, position,
		target_date, timezone, start_time, is_running, paused_at,
		total_paused_ms, city, country)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for position, timer := range timers {
		_, err := tx.Exec(insert,
			timer.ID,
			timer.Type,
			timer.Name,
			timer.Color,
			FormatTimeForDB(timer.CreatedAt),
			timer.AutoGenerated,
			position,
			FormatTimePtrForDB(timer.TargetDate),
			timer.Timezone,
			FormatTimePtrForDB(timer.StartTime),
			timer.Running,
			FormatTimePtrForDB(timer.PausedAt),
			timer.TotalPausedMs,
			timer.City,
			timer.Country,
		)
		if err != nil {
			tx.Rollback()
			return errors.NewDatabaseError("insert timer", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		SettingActiveTimer, activeID,
	); err != nil {
		tx.Rollback()
		return errors.NewDatabaseError("save active timer", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("commit collection", err)
	}
	return nil
}

// LoadCollection returns the stored timers in collection order together
// with the active timer id (empty when never saved).
func (r *SQLiteRepository) LoadCollection() ([]*Timer, string, error) {
	query := `
	SELECT id, type, name, color, created_at, auto_generated, position,
	       target_date, timezone, start_time, is_running, paused_at,
	       total_paused_ms, city, country
	FROM timers
	ORDER BY position ASC`

	timers, err := QueryMultiple(r.db, query, ScanTimers, "timers")
	if err != nil {
		return nil, "", err
	}

	activeID, err := r.GetSetting(SettingActiveTimer)
	if err != nil {
		return nil, "", err
	}

	return timers, activeID, nil
}

// GetSetting returns a setting value, or empty string when the key is absent
func (r *SQLiteRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", HandleDatabaseError("get setting "+key, err)
	}
	return value, nil
}

// SetSetting upserts a setting value
func (r *SQLiteRepository) SetSetting(key string, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return HandleDatabaseError("set setting "+key, err)
	}
	return nil
}

// DeleteSetting removes a setting if present
func (r *SQLiteRepository) DeleteSetting(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return HandleDatabaseError("delete setting "+key, err)
	}
	return nil
}
