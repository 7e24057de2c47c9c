package app

import (
	"sync"

	"github.com/bft-labs/mooring/internal/domain"
)

// HandlerRegistry is an ordered, append-only list of shutdown callbacks.
// There is no removal. Registration after shutdown has begun still
// succeeds, but the coordinator snapshots the registry exactly once, so a
// handler registered after that snapshot is simply never invoked.
type HandlerRegistry struct {
	mu       sync.Mutex
	handlers []domain.Handler
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register appends a handler, to be invoked in this registration order.
func (r *HandlerRegistry) Register(fn domain.HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, domain.Handler{Index: len(r.handlers), Run: fn})
}

// Snapshot returns the registered handlers in registration order. The
// coordinator calls this exactly once, at the start of the handler
// invocation step.
func (r *HandlerRegistry) Snapshot() []domain.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}
