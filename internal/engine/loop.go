// Package engine drives display recomputation for the timer being watched.
// It aligns itself to the wall-clock second with a short burst of fast
// samples, then settles into a once-per-second cadence, publishing only
// when the rendered display actually changes.
package engine

import (
	"sync"
	"time"

	"timepulse/internal/clock"
	"timepulse/internal/domain"
)

// State is the polling loop's lifecycle phase.
type State int

const (
	// StateIdle means no timer is being watched.
	StateIdle State = iota
	// StateAligning means the loop is fast-sampling until the wall-clock
	// second rolls over.
	StateAligning
	// StateSteady means the loop ticks once per second, phase-locked to
	// the wall clock.
	StateSteady
	// StateSuspended means the display is hidden and polling is stopped.
	StateSuspended
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAligning:
		return "aligning"
	case StateSteady:
		return "steady"
	case StateSuspended:
		return "suspended"
	}
	return "unknown"
}

// Loop polls one timer and publishes display updates. Publish and finish
// callbacks run outside the loop's lock, so they may call back into the
// loop or the store.
type Loop struct {
	align   time.Duration
	steady  time.Duration
	publish func(domain.Timer, domain.Display)
	finish  func(domain.Timer)
	now     func() time.Time

	mu       sync.Mutex
	state    State
	timer    domain.Timer
	gen      uint64
	last     domain.Display
	hasLast  bool
	finished map[string]bool
}

// NewLoop creates a stopped loop. publish receives every display change;
// finish fires at most once per countdown completion and may be nil.
func NewLoop(align, steady time.Duration, publish func(domain.Timer, domain.Display), finish func(domain.Timer)) *Loop {
	return &Loop{
		align:    align,
		steady:   steady,
		publish:  publish,
		finish:   finish,
		now:      time.Now,
		state:    StateIdle,
		finished: make(map[string]bool),
	}
}

// State returns the loop's current phase.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start begins watching a timer: an immediate publish, then the align
// burst. Any previous watch is cancelled.
func (l *Loop) Start(t domain.Timer) {
	l.switchTo(t)
}

// TimerSwitched replaces the watched timer. The old loop is cancelled
// before the new one starts, so two loops never run at once.
func (l *Loop) TimerSwitched(t domain.Timer) {
	l.switchTo(t)
}

func (l *Loop) switchTo(t domain.Timer) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.timer = t.Clone()
	l.state = StateAligning
	l.hasLast = false
	if t.Type == domain.TypeCountdown && t.Countdown != nil && t.Countdown.TargetDate.After(l.now()) {
		// Target moved back into the future: the completion may fire again.
		delete(l.finished, t.ID)
	}
	l.mu.Unlock()

	l.tick(gen)
	go l.run(gen)
}

// Hidden suspends polling while keeping the watched timer, mirroring a
// display that is no longer visible.
func (l *Loop) Hidden() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateIdle {
		return
	}
	l.gen++
	l.state = StateSuspended
}

// Visible resumes a suspended loop with a fresh align burst.
func (l *Loop) Visible() {
	l.mu.Lock()
	if l.state != StateSuspended {
		l.mu.Unlock()
		return
	}
	l.gen++
	gen := l.gen
	l.state = StateAligning
	l.hasLast = false
	l.mu.Unlock()

	l.tick(gen)
	go l.run(gen)
}

// Stop cancels polling entirely.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = StateIdle
}

func (l *Loop) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}

// run is the polling goroutine for one generation. It exits as soon as the
// generation is superseded.
func (l *Loop) run(gen uint64) {
	startSec := l.now().Unix()
	for {
		time.Sleep(l.align)
		if !l.current(gen) {
			return
		}
		if l.now().Unix() != startSec {
			break
		}
	}

	l.mu.Lock()
	if l.gen != gen {
		l.mu.Unlock()
		return
	}
	l.state = StateSteady
	l.mu.Unlock()
	l.tick(gen)

	ticker := time.NewTicker(l.steady)
	defer ticker.Stop()
	for range ticker.C {
		if !l.current(gen) {
			return
		}
		l.tick(gen)
	}
}

// tick recomputes the display and publishes when it changed. Completion
// fires at most once per timer until the target is pushed into the future
// again.
func (l *Loop) tick(gen uint64) {
	l.mu.Lock()
	if l.gen != gen {
		l.mu.Unlock()
		return
	}
	t := l.timer
	display := clock.ComputeDisplay(t, l.now())

	changed := !l.hasLast || !display.Equal(l.last)
	l.last = display
	l.hasLast = true

	fireFinish := false
	if display.Finished && t.Type == domain.TypeCountdown && !l.finished[t.ID] {
		l.finished[t.ID] = true
		fireFinish = true
	}
	l.mu.Unlock()

	if changed && l.publish != nil {
		l.publish(t, display)
	}
	if fireFinish && l.finish != nil {
		l.finish(t)
	}
}
