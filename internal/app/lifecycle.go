package app

import (
	"time"

	"github.com/bft-labs/mooring/internal/domain"
	"github.com/bft-labs/mooring/internal/ports"
)

// Lifecycle composes the state cell, beacon registry, handler registry and
// coordinator into the single object the public facade talks to. It holds
// no knowledge of HTTP or signals; those live one layer up.
type Lifecycle struct {
	state       *StateCell
	beacons     *BeaconRegistry
	handlers    *HandlerRegistry
	coordinator *Coordinator
	logger      ports.Logger
}

// NewLifecycle wires a Lifecycle, except for the probe server: the probe
// server needs a StateReader to be constructed, and the coordinator needs
// the constructed probe server to close — construction is necessarily
// two-phase. Call StateReader() to build the probe server, then SetProbe
// to complete wiring before Shutdown is ever called.
//
// term is invoked once the sequence completes or the timeout watchdog
// fires, whichever happens first.
func NewLifecycle(
	logger ports.Logger,
	term ports.Terminator,
	gracePeriod, timeout time.Duration,
) *Lifecycle {
	state := NewStateCell()
	beacons := NewBeaconRegistry(logger)
	handlers := NewHandlerRegistry()

	return &Lifecycle{
		state:    state,
		beacons:  beacons,
		handlers: handlers,
		coordinator: NewCoordinator(
			state, beacons, handlers, nil, logger, term, gracePeriod, timeout,
		),
		logger: logger,
	}
}

// StateReader exposes the state cell for the probe server to read. It
// satisfies probeserver.StateReader structurally.
func (l *Lifecycle) StateReader() *StateCell {
	return l.state
}

// SetProbe completes construction by giving the coordinator the probe
// server to close during shutdown. Must be called before Shutdown.
func (l *Lifecycle) SetProbe(probe probeCloser) {
	l.coordinator.probe = probe
}

// State returns the raw lifecycle state, as read by the probe handlers.
func (l *Lifecycle) State() domain.State {
	return l.state.Get()
}

// SignalReady marks the process ready to serve traffic.
func (l *Lifecycle) SignalReady() {
	l.state.SignalReady()
}

// SignalNotReady marks the process temporarily unable to serve traffic,
// without beginning shutdown.
func (l *Lifecycle) SignalNotReady() {
	l.state.SignalNotReady()
}

// IsServerReady implements the isServerReady predicate.
func (l *Lifecycle) IsServerReady() bool {
	return l.state.IsReady()
}

// IsServerShuttingDown implements the isServerShuttingDown predicate.
func (l *Lifecycle) IsServerShuttingDown() bool {
	return l.state.IsShuttingDown()
}

// RegisterShutdownHandler appends a callback to be run, in registration
// order, once shutdown has drained all outstanding beacons. Registering
// after shutdown has already snapshotted the registry still succeeds but
// the handler is never invoked.
func (l *Lifecycle) RegisterShutdownHandler(fn domain.HandlerFunc) {
	l.handlers.Register(fn)
}

// CreateBeacon registers a new unit of work that defers shutdown until
// retired. diag is an arbitrary caller-supplied value surfaced for
// diagnostics; it is never interpreted.
func (l *Lifecycle) CreateBeacon(diag any) (domain.BeaconID, error) {
	return l.beacons.Create(diag)
}

// RetireBeacon retires a previously created beacon.
func (l *Lifecycle) RetireBeacon(id domain.BeaconID) error {
	return l.beacons.Retire(id)
}

// Shutdown begins the shutdown sequence if it has not already started,
// and returns a channel that closes once the probe server has been
// closed — before the terminate collaborator is invoked.
func (l *Lifecycle) Shutdown() <-chan struct{} {
	return l.coordinator.Shutdown()
}
