package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_SaveAndLoadCollection(t *testing.T) {
	repo := setupRepository(t)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	target := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	start := created.Add(-time.Hour)
	paused := start.Add(30 * time.Minute)

	timers := []*Timer{
		{
			ID: "cd-1", Type: "countdown", Name: "xmas", Color: "#F759AB",
			CreatedAt: created, AutoGenerated: true,
			TargetDate: &target, Timezone: "UTC",
		},
		{
			ID: "sw-1", Type: "stopwatch", Name: "run",
			CreatedAt: created,
			StartTime: &start, Running: false, PausedAt: &paused, TotalPausedMs: 10000,
		},
		{
			ID: "wc-1", Type: "worldclock", Name: "tokyo",
			CreatedAt: created,
			Timezone:  "Asia/Tokyo", City: "Tokyo", Country: "Japan",
		},
	}

	require.NoError(t, repo.SaveCollection(timers, "sw-1"))

	loaded, activeID, err := repo.LoadCollection()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "sw-1", activeID)

	// collection order survives
	assert.Equal(t, "cd-1", loaded[0].ID)
	assert.Equal(t, "sw-1", loaded[1].ID)
	assert.Equal(t, "wc-1", loaded[2].ID)

	countdown := loaded[0]
	assert.True(t, countdown.AutoGenerated)
	require.NotNil(t, countdown.TargetDate)
	assert.True(t, countdown.TargetDate.Equal(target))

	stopwatch := loaded[1]
	assert.False(t, stopwatch.Running)
	require.NotNil(t, stopwatch.PausedAt)
	assert.True(t, stopwatch.PausedAt.Equal(paused))
	assert.Equal(t, int64(10000), stopwatch.TotalPausedMs)
	assert.Nil(t, stopwatch.TargetDate)

	worldclock := loaded[2]
	assert.Equal(t, "Asia/Tokyo", worldclock.Timezone)
	assert.Equal(t, "Japan", worldclock.Country)
}

func TestRepository_SaveCollection_ReplacesPreviousState(t *testing.T) {
	repo := setupRepository(t)
	created := time.Now().UTC()

	first := []*Timer{{ID: "a", Type: "stopwatch", Name: "a", CreatedAt: created}}
	second := []*Timer{{ID: "b", Type: "stopwatch", Name: "b", CreatedAt: created}}

	require.NoError(t, repo.SaveCollection(first, "a"))
	require.NoError(t, repo.SaveCollection(second, "b"))

	loaded, activeID, err := repo.LoadCollection()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].ID)
	assert.Equal(t, "b", activeID)
}

func TestRepository_LoadCollection_EmptyDatabase(t *testing.T) {
	repo := setupRepository(t)

	timers, activeID, err := repo.LoadCollection()

	require.NoError(t, err)
	assert.Empty(t, timers)
	assert.Empty(t, activeID)
}

func TestRepository_Settings(t *testing.T) {
	repo := setupRepository(t)

	// missing key reads as empty, not an error
	value, err := repo.GetSetting(SettingSyncID)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, repo.SetSetting(SettingSyncID, "abc-123"))
	require.NoError(t, repo.SetSetting(SettingSyncID, "abc-456")) // upsert

	value, err = repo.GetSetting(SettingSyncID)
	require.NoError(t, err)
	assert.Equal(t, "abc-456", value)

	require.NoError(t, repo.DeleteSetting(SettingSyncID))
	value, err = repo.GetSetting(SettingSyncID)
	require.NoError(t, err)
	assert.Empty(t, value)
}
