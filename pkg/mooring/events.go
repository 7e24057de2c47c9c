package mooring

import "github.com/bft-labs/mooring/internal/domain"

// State mirrors the three lifecycle values an orchestrator cares about.
type State int

const (
	StateNotReady State = iota
	StateReady
	StateShuttingDown
)

// String returns the orchestrator-facing literal, identical to a probe
// body for the matching state.
func (s State) String() string {
	return domain.State(s).String()
}

func convertState(s domain.State) State {
	return State(s)
}

// StateChangeEvent describes a single lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives notifications about Mooring lifecycle events.
// Implementations should return quickly: for SignalReady and
// SignalNotReady, OnStateChange is called synchronously on the caller's
// goroutine; the shutdown transition is reported from a separate
// goroutine once the channel returned by Shutdown has closed.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
}

// BaseEventHandler is a no-op EventHandler implementations can embed to
// pick only the callbacks they care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}

// eventEmitterWrapper adapts an EventHandler to the notifications the
// internal state cell produces, swallowing the call entirely when no
// handler was configured.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) emit(previous, current domain.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}
