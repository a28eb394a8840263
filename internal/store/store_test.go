package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepulse/internal/domain"
	"timepulse/internal/notify"
	"timepulse/internal/repository/sqlite"
	"timepulse/internal/sync"
)

type fakeNotifier struct {
	scheduled []string
	cancelled []string
}

func (f *fakeNotifier) Schedule(id, title, body string, fireAt time.Time) notify.ScheduleResult {
	f.scheduled = append(f.scheduled, id)
	return notify.ScheduleResult{Scheduled: true}
}

func (f *fakeNotifier) Cancel(id string) {
	f.cancelled = append(f.cancelled, id)
}

type fakePusher struct {
	pushes  []sync.Payload
	flushes int
}

func (f *fakePusher) Push(creds sync.Credentials, payload sync.Payload) {
	f.pushes = append(f.pushes, payload)
}

func (f *fakePusher) Flush() {
	f.flushes++
}

type fakeRemote struct {
	payload sync.Payload
	err     error
	calls   int
}

func (f *fakeRemote) Load(ctx context.Context, creds sync.Credentials) (sync.Payload, error) {
	f.calls++
	return f.payload, f.err
}

func newTestRepo(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestStore(t *testing.T) (*Store, *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	s := New(newTestRepo(t), notifier, nil, nil)
	require.NoError(t, s.Load(context.Background()))
	return s, notifier
}

func futureCountdown(name string) domain.Timer {
	return domain.NewCountdown(name, time.Now().Add(24*time.Hour), "")
}

func TestLoadSeedsDefaultTimer(t *testing.T) {
	s, _ := newTestStore(t)

	timers := s.List()
	require.Len(t, timers, 1)
	assert.Equal(t, domain.TypeCountdown, timers[0].Type)
	assert.True(t, timers[0].AutoGenerated)
	assert.NotEmpty(t, timers[0].Name)
	assert.True(t, timers[0].Countdown.TargetDate.After(time.Now()))
	assert.Equal(t, timers[0].ID, s.ActiveID())
}

func TestAddMakesTimerActive(t *testing.T) {
	s, notifier := newTestStore(t)

	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())
	assert.Equal(t, added.ID, s.ActiveID())
	assert.Contains(t, notifier.scheduled, added.ID)

	timers := s.List()
	require.Len(t, timers, 2)
	assert.Equal(t, "Launch", timers[1].Name)
}

func TestAddUpsertsByID(t *testing.T) {
	s, _ := newTestStore(t)

	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)

	replacement := futureCountdown("Launch v2")
	replacement.ID = added.ID
	_, err = s.Add(replacement)
	require.NoError(t, err)

	timers := s.List()
	require.Len(t, timers, 2)
	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch v2", got.Name)
}

func TestAddRejectsInvalidTimer(t *testing.T) {
	s, _ := newTestStore(t)

	bad := futureCountdown("Launch")
	bad.Color = "not-a-color"
	_, err := s.Add(bad)
	assert.Error(t, err)
	assert.Len(t, s.List(), 1)
}

func TestAddPersistsAcrossRestart(t *testing.T) {
	repo := newTestRepo(t)
	s := New(repo, nil, nil, nil)
	require.NoError(t, s.Load(context.Background()))

	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)

	reopened := New(repo, nil, nil, nil)
	require.NoError(t, reopened.Load(context.Background()))

	got, err := reopened.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Name)
	assert.Equal(t, added.ID, reopened.ActiveID())
}

func TestUpdateAppliesPatch(t *testing.T) {
	s, _ := newTestStore(t)
	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)

	name := "Liftoff"
	color := "#336699"
	updated, err := s.Update(added.ID, domain.Patch{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Liftoff", updated.Name)
	assert.Equal(t, "#336699", updated.Color)
}

func TestUpdateInvalidPatchLeavesTimerUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)

	empty := ""
	_, err = s.Update(added.ID, domain.Patch{Name: &empty})
	require.Error(t, err)

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Name)
}

func TestUpdateUnknownID(t *testing.T) {
	s, _ := newTestStore(t)
	name := "x"
	_, err := s.Update("missing", domain.Patch{Name: &name})
	assert.Error(t, err)
}

func TestDeletePromotesFirstRemaining(t *testing.T) {
	s, notifier := newTestStore(t)
	first := s.List()[0]
	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)
	require.Equal(t, added.ID, s.ActiveID())

	require.NoError(t, s.Delete(added.ID))
	assert.Contains(t, notifier.cancelled, added.ID)
	assert.Equal(t, first.ID, s.ActiveID())
}

func TestDeleteLastTimerReseedsDefault(t *testing.T) {
	s, _ := newTestStore(t)
	original := s.List()[0]

	require.NoError(t, s.Delete(original.ID))

	timers := s.List()
	require.Len(t, timers, 1)
	assert.NotEqual(t, original.ID, timers[0].ID)
	assert.True(t, timers[0].AutoGenerated)
	assert.Equal(t, timers[0].ID, s.ActiveID())
}

func TestSetActive(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.List()[0]
	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)

	require.NoError(t, s.SetActive(first.ID))
	assert.Equal(t, first.ID, s.ActiveID())

	require.NoError(t, s.SetActive(added.ID))
	assert.Equal(t, added.ID, s.ActiveID())

	assert.Error(t, s.SetActive("missing"))
	assert.Equal(t, added.ID, s.ActiveID())
}

func TestStopwatchLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	added, err := s.Add(domain.NewStopwatch("Workout"))
	require.NoError(t, err)

	started, err := s.StartStopwatch(added.ID)
	require.NoError(t, err)
	assert.True(t, started.Stopwatch.Running)
	require.NotNil(t, started.Stopwatch.StartTime)
	assert.True(t, now.Equal(*started.Stopwatch.StartTime))

	now = now.Add(5 * time.Second)
	paused, err := s.PauseStopwatch(added.ID)
	require.NoError(t, err)
	assert.False(t, paused.Stopwatch.Running)
	require.NotNil(t, paused.Stopwatch.PausedAt)

	// Resume after a 10s pause: the gap lands in TotalPaused.
	now = now.Add(10 * time.Second)
	resumed, err := s.StartStopwatch(added.ID)
	require.NoError(t, err)
	assert.True(t, resumed.Stopwatch.Running)
	assert.Nil(t, resumed.Stopwatch.PausedAt)
	assert.Equal(t, 10*time.Second, resumed.Stopwatch.TotalPaused)

	reset, err := s.ResetStopwatch(added.ID)
	require.NoError(t, err)
	assert.False(t, reset.Stopwatch.Running)
	assert.Nil(t, reset.Stopwatch.PausedAt)
	assert.Equal(t, time.Duration(0), reset.Stopwatch.TotalPaused)
}

func TestStopwatchControlsRejectOtherTypes(t *testing.T) {
	s, _ := newTestStore(t)
	added, err := s.Add(futureCountdown("Launch"))
	require.NoError(t, err)

	_, err = s.StartStopwatch(added.ID)
	assert.Error(t, err)
}

func TestReplaceExpiredDefault(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now()

	expired := domain.NewCountdown("Old Holiday", now.Add(-time.Hour), "")
	expired.AutoGenerated = true
	added, err := s.Add(expired)
	require.NoError(t, err)

	replaced, err := s.ReplaceExpiredDefault(added.ID)
	require.NoError(t, err)
	assert.True(t, replaced)

	_, err = s.Get(added.ID)
	assert.Error(t, err)
	active, ok := s.ActiveTimer()
	require.True(t, ok)
	assert.True(t, active.AutoGenerated)
	assert.True(t, active.Countdown.TargetDate.After(now))
}

func TestReplaceExpiredDefaultSkipsUserTimers(t *testing.T) {
	s, _ := newTestStore(t)

	userTimer := domain.NewCountdown("Mine", time.Now().Add(-time.Hour), "")
	added, err := s.Add(userTimer)
	require.NoError(t, err)

	replaced, err := s.ReplaceExpiredDefault(added.ID)
	require.NoError(t, err)
	assert.False(t, replaced)

	_, err = s.Get(added.ID)
	assert.NoError(t, err)
}

func TestReplaceExpiredDefaultSkipsUnexpired(t *testing.T) {
	s, _ := newTestStore(t)

	fresh := futureCountdown("Soon")
	fresh.AutoGenerated = true
	added, err := s.Add(fresh)
	require.NoError(t, err)

	replaced, err := s.ReplaceExpiredDefault(added.ID)
	require.NoError(t, err)
	assert.False(t, replaced)
}
