package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	sends []string
}

func (s *recordingSender) Send(ctx context.Context, id, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends = append(s.sends, id)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sends)
}

func TestScheduleImmediateDelivery(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	result := manager.Schedule("t1", "Done", "Timer finished", time.Now().Add(-time.Second))
	assert.True(t, result.Scheduled)
	assert.False(t, result.NeedsPermission)
	assert.Equal(t, 1, sender.count())
	assert.Empty(t, manager.Active())
}

func TestScheduleFutureDelivery(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	result := manager.Schedule("t1", "Done", "Timer finished", time.Now().Add(20*time.Millisecond))
	assert.True(t, result.Scheduled)
	assert.Equal(t, []string{"t1"}, manager.Active())
	assert.Equal(t, 0, sender.count())

	assert.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, manager.Active())
}

func TestScheduleSuppressesRepeatDelivery(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	past := time.Now().Add(-time.Second)
	first := manager.Schedule("t1", "Done", "", past)
	second := manager.Schedule("t1", "Done", "", past.Add(time.Millisecond))

	assert.True(t, first.Scheduled)
	assert.False(t, second.Scheduled)
	assert.Equal(t, 1, sender.count())
}

func TestScheduleUnchangedFireAtIsNoOp(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	fireAt := time.Now().Add(time.Hour)
	require.True(t, manager.Schedule("t1", "Done", "", fireAt).Scheduled)
	require.True(t, manager.Schedule("t1", "Done", "", fireAt).Scheduled)

	assert.Equal(t, []string{"t1"}, manager.Active())
}

func TestScheduleReplacesPrevious(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	manager.Schedule("t1", "Done", "", time.Now().Add(time.Hour))
	manager.Schedule("t1", "Done", "", time.Now().Add(2*time.Hour))

	assert.Equal(t, []string{"t1"}, manager.Active())
	assert.Equal(t, 0, sender.count())
}

func TestCancelDisarms(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	manager.Schedule("t1", "Done", "", time.Now().Add(10*time.Millisecond))
	manager.Cancel("t1")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.count())
	assert.Empty(t, manager.Active())
}

func TestClearAll(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)
	defer manager.Close()

	manager.Schedule("t1", "Done", "", time.Now().Add(time.Hour))
	manager.Schedule("t2", "Done", "", time.Now().Add(time.Hour))
	require.Len(t, manager.Active(), 2)

	manager.ClearAll()
	assert.Empty(t, manager.Active())
}

func TestNilSenderNeedsPermission(t *testing.T) {
	manager := NewManager(nil, 30*time.Minute)
	defer manager.Close()

	result := manager.Schedule("t1", "Done", "", time.Now())
	assert.False(t, result.Scheduled)
	assert.True(t, result.NeedsPermission)
}

func TestCloseRejectsFurtherScheduling(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManager(sender, 30*time.Minute)

	manager.Schedule("t1", "Done", "", time.Now().Add(10*time.Millisecond))
	manager.Close()

	result := manager.Schedule("t2", "Done", "", time.Now().Add(-time.Second))
	assert.False(t, result.Scheduled)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.count())
}
