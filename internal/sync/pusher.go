package sync

import (
	"context"
	stdsync "sync"
	"time"

	"timepulse/internal/logging"
)

// Pusher coalesces rapid collection mutations into a single upload. Each
// Push restarts the debounce window; the latest payload wins. Upload
// failures are logged and swallowed so local state is never blocked on the
// network.
type Pusher struct {
	client *Client
	window time.Duration
	ttl    time.Duration

	mu      stdsync.Mutex
	timer   *time.Timer
	creds   Credentials
	payload Payload
	dirty   bool
}

// NewPusher creates a pusher that uploads through client after mutations
// have been quiet for the given window.
func NewPusher(client *Client, window, ttl time.Duration) *Pusher {
	return &Pusher{
		client: client,
		window: window,
		ttl:    ttl,
	}
}

// Push queues the payload for upload, restarting the debounce window.
func (p *Pusher) Push(creds Credentials, payload Payload) {
	if creds.IsZero() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.creds = creds
	p.payload = payload
	p.dirty = true
	if p.timer == nil {
		p.timer = time.AfterFunc(p.window, p.fire)
	} else {
		p.timer.Reset(p.window)
	}
}

// Flush uploads any pending payload immediately, bypassing the debounce.
func (p *Pusher) Flush() {
	p.fire()
}

// Close stops the debounce timer and uploads any pending payload.
func (p *Pusher) Close() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	p.fire()
}

func (p *Pusher) fire() {
	p.mu.Lock()
	if !p.dirty {
		p.mu.Unlock()
		return
	}
	creds := p.creds
	payload := p.payload
	p.dirty = false
	p.mu.Unlock()

	if err := p.client.Save(context.Background(), creds, payload, p.ttl); err != nil {
		logging.Debugf("sync push failed: %v", err)
	}
}
