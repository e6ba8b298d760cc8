// Package notifiertest provides a recording notifier.Emitter for tests.
package notifiertest

import (
	"context"
	"sync"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier"
)

// Recorder keeps every emitted notification in order.
type Recorder struct {
	mu    sync.Mutex
	items []entity.Notification
}

var _ notifier.Emitter = (*Recorder)(nil)

// Emit implements notifier.Emitter.
func (r *Recorder) Emit(_ context.Context, n entity.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Notification(nil), r.items...)
}

// OfType returns the payloads of the recorded notifications of type t.
func (r *Recorder) OfType(t entity.NotificationType) []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []interface{}
	for _, n := range r.items {
		if n.Type == t {
			out = append(out, n.Payload)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
