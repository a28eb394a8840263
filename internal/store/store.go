// Package store owns the timer collection: ordered timers, the active
// timer pointer, local persistence, and the fan-out to the notification
// and remote sync collaborators. All mutations validate before committing
// and persist the whole collection afterwards.
package store

import (
	"context"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"timepulse/internal/domain"
	"timepulse/internal/errors"
	"timepulse/internal/holiday"
	"timepulse/internal/logging"
	"timepulse/internal/notify"
	"timepulse/internal/repository/sqlite"
	"timepulse/internal/sync"
	"timepulse/internal/validation"
)

// Notifier is the slice of the notification manager the store uses.
type Notifier interface {
	Schedule(id, title, body string, fireAt time.Time) notify.ScheduleResult
	Cancel(id string)
}

// Pusher queues collection uploads to the remote cache. Flush forces any
// queued upload out immediately.
type Pusher interface {
	Push(creds sync.Credentials, payload sync.Payload)
	Flush()
}

// RemoteLoader fetches the collection stored in the remote cache.
type RemoteLoader interface {
	Load(ctx context.Context, creds sync.Credentials) (sync.Payload, error)
}

// Store is the in-memory timer collection backed by the sqlite repository.
// It is safe for concurrent use.
type Store struct {
	mu        gosync.Mutex
	repo      sqlite.Repository
	mapper    *domain.TimerMapper
	validator *validation.TimerValidator
	notifier  Notifier
	pusher    Pusher
	remote    RemoteLoader
	now       func() time.Time

	timers   []domain.Timer
	activeID string
}

// New creates a store over repo. notifier, pusher and remote may be nil;
// the corresponding collaborations are then skipped.
func New(repo sqlite.Repository, notifier Notifier, pusher Pusher, remote RemoteLoader) *Store {
	return &Store{
		repo:      repo,
		mapper:    domain.NewTimerMapper(),
		validator: validation.NewTimerValidator(),
		notifier:  notifier,
		pusher:    pusher,
		remote:    remote,
		now:       time.Now,
	}
}

// Load initialises the store: read the local collection, overlay the
// remote one when sync credentials exist and the remote record is
// non-empty, and seed a default countdown when the collection ends up
// empty. Notifications for pending countdowns are re-armed.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, activeID, err := s.repo.LoadCollection()
	if err != nil {
		return err
	}
	s.timers = s.mapper.FromDatabaseSlice(rows)
	s.activeID = activeID

	if creds := s.credentialsLocked(); !creds.IsZero() && s.remote != nil {
		payload, err := s.remote.Load(ctx, creds)
		if err != nil {
			// Local data stays authoritative when the network is down.
			logging.Debugf("store: remote load failed: %v", err)
		} else if len(payload.Timers) > 0 {
			logging.Debugln("store: replaced local collection from remote")
			s.timers = payload.Timers
			if payload.ActiveID != "" {
				s.activeID = payload.ActiveID
			}
		}
	}

	if len(s.timers) == 0 {
		s.timers = append(s.timers, s.defaultTimer())
	}
	s.ensureActiveLocked()
	s.armNotificationsLocked()

	return s.persistLocked()
}

// List returns a snapshot of the collection in stored order.
func (s *Store) List() []domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Timer, len(s.timers))
	for i, t := range s.timers {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the timer with the given ID.
func (s *Store) Get(id string) (domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.timers[i].Clone(), nil
	}
	return domain.Timer{}, errors.NewNotFoundError("timer", id)
}

// ActiveTimer returns the currently active timer.
func (s *Store) ActiveTimer() (domain.Timer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(s.activeID); i >= 0 {
		return s.timers[i].Clone(), true
	}
	return domain.Timer{}, false
}

// ActiveID returns the ID of the active timer.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Add inserts the timer and makes it active. A timer with the same ID is
// replaced in place. Missing ID and CreatedAt are filled in. The countdown
// completion notification is armed fire-and-forget.
func (s *Store) Add(timer domain.Timer) (domain.Timer, error) {
	if timer.Type == "" {
		timer.Type = domain.TypeCountdown
	}
	if timer.ID == "" {
		timer.ID = uuid.NewString()
	}
	if timer.CreatedAt.IsZero() {
		timer.CreatedAt = s.now()
	}
	if err := s.validator.ValidateForCreation(timer); err != nil {
		return domain.Timer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(timer.ID); i >= 0 {
		s.timers[i] = timer.Clone()
	} else {
		s.timers = append(s.timers, timer.Clone())
	}
	s.activeID = timer.ID
	s.armNotificationLocked(timer)

	return timer, s.persistLocked()
}

// Update applies the patch to the timer with the given ID. Validation runs
// against the patched copy before anything is committed, so a failed update
// leaves the collection untouched.
func (s *Store) Update(id string, patch domain.Patch) (domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Timer{}, errors.NewNotFoundError("timer", id)
	}
	if patch.IsEmpty() {
		return s.timers[i].Clone(), nil
	}

	patched := patch.Apply(s.timers[i])
	if err := s.validator.ValidateForUpdate(patched); err != nil {
		return domain.Timer{}, err
	}

	s.timers[i] = patched
	s.armNotificationLocked(patched)

	return patched.Clone(), s.persistLocked()
}

// Delete removes the timer with the given ID and cancels its notification.
// When the active timer is deleted the first remaining timer is promoted;
// deleting the last timer reseeds the default countdown so the collection
// is never empty.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return errors.NewNotFoundError("timer", id)
	}

	if s.notifier != nil {
		s.notifier.Cancel(id)
	}
	s.timers = append(s.timers[:i], s.timers[i+1:]...)

	if len(s.timers) == 0 {
		s.timers = append(s.timers, s.defaultTimer())
	}
	if s.activeID == id {
		s.activeID = s.timers[0].ID
	}

	return s.persistLocked()
}

// SetActive switches the active timer pointer.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return errors.NewNotFoundError("timer", id)
	}
	if s.activeID == id {
		return nil
	}
	s.activeID = id
	return s.persistLocked()
}

// ReplaceExpiredDefault swaps an expired auto-generated countdown for a
// fresh default one. Timers the user created are never replaced. Reports
// whether a replacement happened.
func (s *Store) ReplaceExpiredDefault(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	old := s.timers[i]
	if !old.AutoGenerated || old.Type != domain.TypeCountdown || !old.Expired(s.now()) {
		return false, nil
	}

	if s.notifier != nil {
		s.notifier.Cancel(id)
	}
	fresh := s.defaultTimer()
	s.timers[i] = fresh
	if s.activeID == id {
		s.activeID = fresh.ID
	}

	return true, s.persistLocked()
}

// Holidays returns the upcoming holidays usable as countdown targets.
func (s *Store) Holidays() []holiday.Holiday {
	return holiday.Upcoming(s.now())
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.timers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) ensureActiveLocked() {
	if s.indexLocked(s.activeID) < 0 && len(s.timers) > 0 {
		s.activeID = s.timers[0].ID
	}
}

// defaultTimer builds the auto-generated countdown to the next holiday.
func (s *Store) defaultTimer() domain.Timer {
	now := s.now()
	name := "New Year's Day"
	target := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, time.Local)
	color := ""
	if h, ok := holiday.Next(now); ok {
		name = h.Name
		target = h.Date
		color = h.Color
	}

	timer := domain.NewCountdown(name, target, "")
	timer.ID = uuid.NewString()
	timer.Color = color
	timer.CreatedAt = now
	timer.AutoGenerated = true
	return timer
}

func (s *Store) armNotificationLocked(t domain.Timer) {
	if s.notifier == nil || t.Type != domain.TypeCountdown || t.Countdown == nil {
		return
	}
	if !t.Countdown.TargetDate.After(s.now()) {
		// The target may have been edited into the past; drop any pending
		// delivery armed for the old target.
		s.notifier.Cancel(t.ID)
		return
	}
	result := s.notifier.Schedule(t.ID, t.Name, "Countdown finished", t.Countdown.TargetDate)
	if result.NeedsPermission {
		logging.Debugf("store: notifications unavailable for %s", t.ID)
	}
}

func (s *Store) armNotificationsLocked() {
	for _, t := range s.timers {
		s.armNotificationLocked(t)
	}
}

// persistLocked writes the collection to sqlite and queues a remote push.
// The local write is authoritative; push failures never surface here.
func (s *Store) persistLocked() error {
	rows := s.mapper.ToDatabaseSlice(s.timers)
	if err := s.repo.SaveCollection(rows, s.activeID); err != nil {
		return err
	}

	if s.pusher != nil {
		if creds := s.credentialsLocked(); !creds.IsZero() {
			timers := make([]domain.Timer, len(s.timers))
			for i, t := range s.timers {
				timers[i] = t.Clone()
			}
			s.pusher.Push(creds, sync.Payload{Timers: timers, ActiveID: s.activeID})
		}
	}
	return nil
}

func (s *Store) credentialsLocked() sync.Credentials {
	id, err := s.repo.GetSetting(sqlite.SettingSyncID)
	if err != nil {
		return sync.Credentials{}
	}
	password, err := s.repo.GetSetting(sqlite.SettingSyncPassword)
	if err != nil {
		return sync.Credentials{}
	}
	return sync.Credentials{SyncID: id, Password: password}
}
