package api

import (
	"context"

	"timepulse/internal/config"
	"timepulse/internal/domain"
	"timepulse/internal/engine"
	"timepulse/internal/holiday"
	"timepulse/internal/notify"
	"timepulse/internal/share"
	"timepulse/internal/store"
	"timepulse/internal/sync"
)

// API defines the interface for all timer operations.
type API interface {
	// Timer operations
	CreateTimer(t domain.Timer) (*domain.Timer, error)
	GetTimer(id string) (*domain.Timer, error)
	ListTimers() ([]domain.Timer, error)
	UpdateTimer(id string, patch domain.Patch) (*domain.Timer, error)
	DeleteTimer(id string) error

	// Active timer operations
	ActivateTimer(id string) error
	ActiveTimer() (*domain.Timer, bool)

	// Stopwatch controls
	StartStopwatch(id string) (*domain.Timer, error)
	PauseStopwatch(id string) (*domain.Timer, error)
	ResetStopwatch(id string) (*domain.Timer, error)

	// Share tokens
	ExportShareToken() (string, error)
	ImportShareToken(token string) ([]domain.Timer, error)

	// Remote sync
	SyncLogin(syncID, password string) error
	SyncLogout() error
	SyncPush() error
	SyncPull(ctx context.Context) error
	SyncLoggedIn() bool

	// Holiday calendar
	UpcomingHolidays() []holiday.Holiday

	// NewWatchLoop builds a polling loop publishing through the given
	// callback, with completions wired to notifications and default timer
	// replacement.
	NewWatchLoop(publish func(domain.Timer, domain.Display)) *engine.Loop
}

type apiImpl struct {
	store    *store.Store
	notifier *notify.Manager
	cfg      *config.Config
}

// New creates a new API instance over the loaded store.
func New(s *store.Store, notifier *notify.Manager, cfg *config.Config) API {
	return &apiImpl{store: s, notifier: notifier, cfg: cfg}
}

func (a *apiImpl) CreateTimer(t domain.Timer) (*domain.Timer, error) {
	added, err := a.store.Add(t)
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (a *apiImpl) GetTimer(id string) (*domain.Timer, error) {
	t, err := a.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *apiImpl) ListTimers() ([]domain.Timer, error) {
	return a.store.List(), nil
}

func (a *apiImpl) UpdateTimer(id string, patch domain.Patch) (*domain.Timer, error) {
	updated, err := a.store.Update(id, patch)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *apiImpl) DeleteTimer(id string) error {
	return a.store.Delete(id)
}

func (a *apiImpl) ActivateTimer(id string) error {
	return a.store.SetActive(id)
}

func (a *apiImpl) ActiveTimer() (*domain.Timer, bool) {
	t, ok := a.store.ActiveTimer()
	if !ok {
		return nil, false
	}
	return &t, true
}

func (a *apiImpl) StartStopwatch(id string) (*domain.Timer, error) {
	t, err := a.store.StartStopwatch(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *apiImpl) PauseStopwatch(id string) (*domain.Timer, error) {
	t, err := a.store.PauseStopwatch(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *apiImpl) ResetStopwatch(id string) (*domain.Timer, error) {
	t, err := a.store.ResetStopwatch(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *apiImpl) ExportShareToken() (string, error) {
	return share.Encode(a.store.List())
}

// ImportShareToken decodes a share token and adds every timer it carries.
// Imported timers keep their IDs, so re-importing the same token updates
// in place instead of duplicating.
func (a *apiImpl) ImportShareToken(token string) ([]domain.Timer, error) {
	shared, err := share.Decode(token)
	if err != nil {
		return nil, err
	}

	imported := make([]domain.Timer, 0, len(shared))
	for _, t := range share.Timers(shared) {
		added, err := a.store.Add(t)
		if err != nil {
			return imported, err
		}
		imported = append(imported, added)
	}
	return imported, nil
}

func (a *apiImpl) SyncLogin(syncID, password string) error {
	return a.store.SetCredentials(sync.Credentials{SyncID: syncID, Password: password})
}

func (a *apiImpl) SyncLogout() error {
	return a.store.ClearCredentials()
}

func (a *apiImpl) SyncPush() error {
	return a.store.PushRemote()
}

func (a *apiImpl) SyncPull(ctx context.Context) error {
	return a.store.PullRemote(ctx)
}

func (a *apiImpl) SyncLoggedIn() bool {
	return !a.store.Credentials().IsZero()
}

func (a *apiImpl) UpcomingHolidays() []holiday.Holiday {
	return a.store.Holidays()
}

func (a *apiImpl) NewWatchLoop(publish func(domain.Timer, domain.Display)) *engine.Loop {
	return engine.NewLoop(
		a.cfg.Polling.AlignInterval,
		a.cfg.Polling.SteadyInterval,
		publish,
		a.onFinish,
	)
}

// onFinish runs when a watched countdown completes: deliver the
// notification now and, for the auto-generated default timer, roll it over
// to the next holiday.
func (a *apiImpl) onFinish(t domain.Timer) {
	if t.Countdown == nil {
		return
	}
	if a.notifier != nil {
		a.notifier.Schedule(t.ID, t.Name, "Countdown finished", t.Countdown.TargetDate)
	}
	if t.AutoGenerated {
		a.store.ReplaceExpiredDefault(t.ID)
	}
}
