package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepulse/internal/domain"
)

type recorder struct {
	mu       sync.Mutex
	displays []domain.Display
	ids      []string
	finishes []string
}

func (r *recorder) publish(t domain.Timer, d domain.Display) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays = append(r.displays, d)
	r.ids = append(r.ids, t.ID)
}

func (r *recorder) finish(t domain.Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes = append(r.finishes, t.ID)
}

func (r *recorder) publishCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.displays)
}

func (r *recorder) finishCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.finishes)
}

func (r *recorder) lastID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ids) == 0 {
		return ""
	}
	return r.ids[len(r.ids)-1]
}

func newTestLoop(r *recorder) *Loop {
	return NewLoop(time.Millisecond, 10*time.Millisecond, r.publish, r.finish)
}

func countdown(id string, target time.Time) domain.Timer {
	t := domain.NewCountdown("test", target, "")
	t.ID = id
	return t
}

func TestStartPublishesImmediately(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("t1", time.Now().Add(time.Hour)))
	assert.GreaterOrEqual(t, r.publishCount(), 1)
	assert.Equal(t, "t1", r.lastID())
	assert.Equal(t, StateAligning, loop.State())
}

func TestLoopReachesSteadyState(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("t1", time.Now().Add(time.Hour)))
	assert.Eventually(t, func() bool {
		return loop.State() == StateSteady
	}, 3*time.Second, 5*time.Millisecond)
}

func TestFinishFiresExactlyOnce(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("t1", time.Now().Add(-time.Second)))
	assert.Eventually(t, func() bool {
		return r.finishCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Stays at one even as the loop keeps ticking.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, r.finishCount())
}

func TestFinishRearmsWhenTargetMovesToFuture(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("t1", time.Now().Add(-time.Second)))
	require.Eventually(t, func() bool {
		return r.finishCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Editing the target into the future re-arms the completion; once it
	// passes again the finish fires a second time.
	loop.TimerSwitched(countdown("t1", time.Now().Add(50*time.Millisecond)))
	assert.Eventually(t, func() bool {
		return r.finishCount() == 2
	}, 3*time.Second, 5*time.Millisecond)
}

func TestTimerSwitchedCancelsPreviousLoop(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("old", time.Now().Add(time.Hour)))
	loop.TimerSwitched(countdown("new", time.Now().Add(2*time.Hour)))

	// Once the switch has settled, only the new timer publishes.
	time.Sleep(50 * time.Millisecond)
	mark := r.publishCount()
	assert.Eventually(t, func() bool {
		return r.publishCount() > mark
	}, 3*time.Second, 5*time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.ids[mark:] {
		assert.Equal(t, "new", id)
	}
}

func TestHiddenSuspendsPolling(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("t1", time.Now().Add(time.Hour)))
	loop.Hidden()
	assert.Equal(t, StateSuspended, loop.State())

	time.Sleep(20 * time.Millisecond)
	mark := r.publishCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, mark, r.publishCount())
}

func TestVisibleResumesFromSuspension(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Start(countdown("t1", time.Now().Add(time.Hour)))
	loop.Hidden()
	mark := r.publishCount()

	loop.Visible()
	assert.Equal(t, StateAligning, loop.State())
	assert.Greater(t, r.publishCount(), mark)
}

func TestVisibleWithoutSuspensionIsNoOp(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	loop.Visible()
	assert.Equal(t, StateIdle, loop.State())
	assert.Equal(t, 0, r.publishCount())
}

func TestStopReturnsToIdle(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)

	loop.Start(countdown("t1", time.Now().Add(time.Hour)))
	loop.Stop()
	assert.Equal(t, StateIdle, loop.State())

	time.Sleep(20 * time.Millisecond)
	mark := r.publishCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, mark, r.publishCount())
}

func TestPublishSkippedWhenDisplayUnchanged(t *testing.T) {
	r := &recorder{}
	loop := newTestLoop(r)
	defer loop.Stop()

	// A long-finished countdown renders the same display forever, so after
	// the initial publish the loop stays quiet.
	loop.Start(countdown("t1", time.Now().Add(-time.Hour)))
	time.Sleep(50 * time.Millisecond)
	mark := r.publishCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, mark, r.publishCount())
	assert.Equal(t, 1, mark)
}
