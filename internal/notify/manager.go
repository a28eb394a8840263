// Package notify schedules completion notifications for countdown timers.
// Delivery is delegated to a Sender so the manager stays testable and the
// rest of the application never depends on a platform notification API.
package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"timepulse/internal/logging"
)

// Sender delivers one notification. Implementations may talk to the
// desktop notification daemon, write to the terminal, or record calls in
// tests.
type Sender interface {
	Send(ctx context.Context, id, title, body string) error
}

// ScheduleResult reports what Schedule did with a request.
type ScheduleResult struct {
	// Scheduled is true when a delivery was armed or performed.
	Scheduled bool
	// NeedsPermission is true when no sender is available, mirroring a
	// denied notification permission.
	NeedsPermission bool
}

type pending struct {
	timer  *time.Timer
	fireAt time.Time
}

// Manager owns the set of armed notifications. One notification is pending
// per timer ID at most; rescheduling replaces the previous one.
type Manager struct {
	sender      Sender
	suppression time.Duration
	now         func() time.Time

	mu       sync.Mutex
	pending  map[string]*pending
	lastSent map[string]time.Time
	closed   bool
}

// NewManager creates a manager delivering through sender. A nil sender is
// allowed; Schedule then reports NeedsPermission instead of arming
// anything. Repeat deliveries for the same timer inside the suppression
// window are dropped.
func NewManager(sender Sender, suppression time.Duration) *Manager {
	return &Manager{
		sender:      sender,
		suppression: suppression,
		now:         time.Now,
		pending:     make(map[string]*pending),
		lastSent:    make(map[string]time.Time),
	}
}

// Schedule arms a notification for the timer with the given ID. A fireAt in
// the past delivers immediately. Rescheduling with an unchanged fireAt is a
// no-op so polling loops can call this freely.
func (m *Manager) Schedule(id, title, body string, fireAt time.Time) ScheduleResult {
	if m.sender == nil {
		return ScheduleResult{NeedsPermission: true}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ScheduleResult{}
	}

	if p, ok := m.pending[id]; ok {
		if p.fireAt.Equal(fireAt) {
			m.mu.Unlock()
			return ScheduleResult{Scheduled: true}
		}
		p.timer.Stop()
		delete(m.pending, id)
	}

	now := m.now()
	if !fireAt.After(now) {
		if sent, ok := m.lastSent[id]; ok && now.Sub(sent) < m.suppression {
			m.mu.Unlock()
			logging.Debugf("notify: suppressed repeat for %s", id)
			return ScheduleResult{}
		}
		m.lastSent[id] = now
		m.mu.Unlock()
		m.deliver(id, title, body)
		return ScheduleResult{Scheduled: true}
	}

	p := &pending{fireAt: fireAt}
	p.timer = time.AfterFunc(fireAt.Sub(now), func() {
		m.fire(id, title, body)
	})
	m.pending[id] = p
	m.mu.Unlock()
	return ScheduleResult{Scheduled: true}
}

func (m *Manager) fire(id, title, body string) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	delete(m.pending, id)
	m.lastSent[id] = m.now()
	m.mu.Unlock()

	m.deliver(id, title, body)
}

func (m *Manager) deliver(id, title, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.sender.Send(ctx, id, title, body); err != nil {
		logging.Debugf("notify: delivery failed for %s: %v", id, err)
	}
}

// Cancel disarms any pending notification for the timer with the given ID.
func (m *Manager) Cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.pending[id]; ok {
		p.timer.Stop()
		delete(m.pending, id)
	}
}

// ClearAll disarms every pending notification.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.pending {
		p.timer.Stop()
		delete(m.pending, id)
	}
}

// Active returns the timer IDs with a pending notification, sorted.
func (m *Manager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close disarms all pending notifications and rejects further scheduling.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for id, p := range m.pending {
		p.timer.Stop()
		delete(m.pending, id)
	}
}
