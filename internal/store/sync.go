package store

import (
	"context"

	"timepulse/internal/domain"
	"timepulse/internal/errors"
	"timepulse/internal/repository/sqlite"
	"timepulse/internal/sync"
)

// Credentials returns the stored sync credential pair, zero when the user
// has never logged in.
func (s *Store) Credentials() sync.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credentialsLocked()
}

// SetCredentials stores the sync credential pair and pushes the current
// collection so the remote record exists immediately.
func (s *Store) SetCredentials(creds sync.Credentials) error {
	if creds.SyncID == "" {
		return errors.NewInvalidInputError("sync-id", creds.SyncID, "must not be empty")
	}
	if creds.Password == "" {
		return errors.NewInvalidInputError("password", "", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SetSetting(sqlite.SettingSyncID, creds.SyncID); err != nil {
		return err
	}
	if err := s.repo.SetSetting(sqlite.SettingSyncPassword, creds.Password); err != nil {
		return err
	}
	return s.persistLocked()
}

// ClearCredentials forgets the sync credential pair. The remote record is
// left untouched.
func (s *Store) ClearCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteSetting(sqlite.SettingSyncID); err != nil {
		return err
	}
	return s.repo.DeleteSetting(sqlite.SettingSyncPassword)
}

// PullRemote fetches the remote collection and replaces the local one when
// the remote record is non-empty.
func (s *Store) PullRemote(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.credentialsLocked()
	if creds.IsZero() {
		return errors.NewValidationError("sync credentials are not configured", nil)
	}
	if s.remote == nil {
		return errors.NewValidationError("remote sync is not available", nil)
	}

	payload, err := s.remote.Load(ctx, creds)
	if err != nil {
		return err
	}
	if len(payload.Timers) == 0 {
		return nil
	}

	s.timers = payload.Timers
	if payload.ActiveID != "" {
		s.activeID = payload.ActiveID
	}
	s.ensureActiveLocked()
	s.armNotificationsLocked()

	return s.persistLocked()
}

// PushRemote uploads the current collection immediately, bypassing the
// debounce window.
func (s *Store) PushRemote() error {
	s.mu.Lock()
	creds := s.credentialsLocked()
	if creds.IsZero() {
		s.mu.Unlock()
		return errors.NewValidationError("sync credentials are not configured", nil)
	}
	if s.pusher == nil {
		s.mu.Unlock()
		return errors.NewValidationError("remote sync is not available", nil)
	}

	timers := make([]domain.Timer, len(s.timers))
	for i, t := range s.timers {
		timers[i] = t.Clone()
	}
	s.pusher.Push(creds, sync.Payload{Timers: timers, ActiveID: s.activeID})
	s.mu.Unlock()

	s.pusher.Flush()
	return nil
}
