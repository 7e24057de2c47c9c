package app

import (
	"sync"

	"github.com/bft-labs/mooring/internal/domain"
)

// StateCell holds the lifecycle state behind an RWMutex, the same shape
// other small Kubernetes-facing readiness trackers in this codebase's
// lineage use rather than atomic.Value, since reads (probe handlers) vastly
// outnumber writes (façade calls).
type StateCell struct {
	mu sync.RWMutex

	current domain.State

	// gracePeriodActive is true from the moment shutdown is requested
	// until State actually transitions to StateShuttingDown. While true,
	// IsReady() reports false regardless of the underlying state — a
	// deliberately preserved quirk of the predicate, distinct from the
	// probe bodies, which keep reflecting the pre-shutdown state during
	// this same window.
	gracePeriodActive bool
}

// NewStateCell creates a cell in the initial StateNotReady state.
func NewStateCell() *StateCell {
	return &StateCell{current: domain.StateNotReady}
}

// Get returns the raw current state, as read by the probe handlers.
func (c *StateCell) Get() domain.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SignalReady applies the signalReady event. No-op outside StateNotReady.
func (c *StateCell) SignalReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Next(domain.EventSignalReady)
}

// SignalNotReady applies the signalNotReady event. No-op outside StateReady.
func (c *StateCell) SignalNotReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Next(domain.EventSignalNotReady)
}

// BeginGracePeriod marks the start of the pre-shutdown grace delay. It does
// not change the raw state; it only affects IsReady() until CommitShutdown
// is called.
func (c *StateCell) BeginGracePeriod() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gracePeriodActive = true
}

// CommitShutdown transitions the raw state to StateShuttingDown and clears
// the grace sub-state. Returns the resulting state (always StateShuttingDown).
func (c *StateCell) CommitShutdown() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Next(domain.EventShutdown)
	c.gracePeriodActive = false
	return c.current
}

// IsReady implements the isServerReady predicate. It is not a plain
// current==StateReady check: SHUTTING_DOWN also reads as ready, mirroring
// the /ready probe staying 200 during shutdown so a proxy has time to
// notice before traffic stops being routed, except during the grace
// window, where it is forced false regardless of the underlying state.
func (c *StateCell) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gracePeriodActive {
		return false
	}
	return c.current == domain.StateReady || c.current == domain.StateShuttingDown
}

// IsShuttingDown implements the isServerShuttingDown predicate.
func (c *StateCell) IsShuttingDown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current == domain.StateShuttingDown
}
