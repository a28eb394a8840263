package store

import (
	"timepulse/internal/domain"
	"timepulse/internal/errors"
)

// StartStopwatch starts or resumes the stopwatch with the given ID. A
// resume extends the accumulated pause total by the length of the pause
// that just ended. Starting a running stopwatch is a no-op.
func (s *Store) StartStopwatch(id string) (domain.Timer, error) {
	return s.mutateStopwatch(id, func(spec *domain.StopwatchSpec) {
		now := s.now()
		if spec.Running {
			return
		}
		if spec.StartTime == nil {
			spec.StartTime = &now
		} else if spec.PausedAt != nil {
			spec.TotalPaused += now.Sub(*spec.PausedAt)
		}
		spec.PausedAt = nil
		spec.Running = true
	})
}

// PauseStopwatch pauses the stopwatch with the given ID. Pausing a
// stopwatch that is not running is a no-op.
func (s *Store) PauseStopwatch(id string) (domain.Timer, error) {
	return s.mutateStopwatch(id, func(spec *domain.StopwatchSpec) {
		if !spec.Running {
			return
		}
		now := s.now()
		spec.Running = false
		spec.PausedAt = &now
	})
}

// ResetStopwatch stops the stopwatch and clears its elapsed time.
func (s *Store) ResetStopwatch(id string) (domain.Timer, error) {
	return s.mutateStopwatch(id, func(spec *domain.StopwatchSpec) {
		now := s.now()
		spec.Running = false
		spec.StartTime = &now
		spec.PausedAt = nil
		spec.TotalPaused = 0
	})
}

func (s *Store) mutateStopwatch(id string, mutate func(*domain.StopwatchSpec)) (domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Timer{}, errors.NewNotFoundError("timer", id)
	}
	t := s.timers[i]
	if t.Type != domain.TypeStopwatch || t.Stopwatch == nil {
		return domain.Timer{}, errors.NewInvalidInputError("id", id, "not a stopwatch")
	}

	updated := t.Clone()
	mutate(updated.Stopwatch)
	s.timers[i] = updated

	return updated.Clone(), s.persistLocked()
}
