// Package mooring is an embeddable lifecycle manager for long-running
// processes run under a Kubernetes-class orchestrator: HTTP probe
// endpoints, a readiness state machine, in-flight-work beacons, and an
// ordered shutdown-handler registry.
//
// This root package is a thin alias over github.com/bft-labs/mooring/pkg/mooring,
// kept for callers who only need the common path; pkg/mooring can also be
// imported directly.
//
// Example usage:
//
//	m, err := mooring.New(mooring.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m.SignalReady()
//	// ... serve traffic ...
//	<-m.Shutdown()
package mooring

import "github.com/bft-labs/mooring/pkg/mooring"

// Config holds the lifecycle manager's tunables. See pkg/mooring.Config.
type Config = mooring.Config

// Mooring is a single lifecycle-manager instance.
type Mooring = mooring.Mooring

// Option configures optional behavior of a Mooring instance.
type Option = mooring.Option

// Logger is the structured logging interface Mooring emits events to.
type Logger = mooring.Logger

// EventHandler receives notifications about Mooring lifecycle events.
type EventHandler = mooring.EventHandler

// BaseEventHandler is a no-op EventHandler to embed for partial implementations.
type BaseEventHandler = mooring.BaseEventHandler

// StateChangeEvent describes a single lifecycle transition.
type StateChangeEvent = mooring.StateChangeEvent

// Beacon is a handle for one outstanding unit of work that defers shutdown.
type Beacon = mooring.Beacon

// New constructs a Mooring instance. See pkg/mooring.New.
func New(cfg Config, opts ...Option) (*Mooring, error) {
	return mooring.New(cfg, opts...)
}

// WithLogger sets the structured logger events are reported to.
func WithLogger(logger Logger) Option {
	return mooring.WithLogger(logger)
}

// WithEventHandler sets a handler notified of lifecycle state changes.
func WithEventHandler(handler EventHandler) Option {
	return mooring.WithEventHandler(handler)
}

// WithTerminator overrides the collaborator invoked to force process exit.
func WithTerminator(term mooring.Terminator) Option {
	return mooring.WithTerminator(term)
}

// Current version of the mooring module.
const Version = mooring.Version
