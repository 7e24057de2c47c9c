// Package mooring is an embeddable lifecycle manager mediating between a
// Kubernetes-class orchestrator and a long-running process: three HTTP
// probe endpoints, a readiness state machine, a pre-shutdown grace delay,
// in-flight-work beacons, and an ordered shutdown-handler registry.
package mooring

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/bft-labs/mooring/internal/adapters/terminate"
	"github.com/bft-labs/mooring/internal/app"
	"github.com/bft-labs/mooring/internal/domain"
	"github.com/bft-labs/mooring/internal/probeserver"
	"github.com/bft-labs/mooring/pkg/log"
)

// Mooring is a single lifecycle-manager instance. Every entity below it
// (state, beacon registry, handler registry, probe server) belongs
// exclusively to this instance; there are no process-wide singletons, so
// an application may embed more than one.
type Mooring struct {
	config     Config
	instanceID string
	lifecycle  *app.Lifecycle
	probe      *probeserver.Server
	emitter    *eventEmitterWrapper
	logger     Logger
}

// New constructs a Mooring instance: it starts the probe server
// synchronously, so Addr() is usable as soon as New returns. The instance
// begins in StateNotReady.
func New(cfg Config, opts ...Option) (*Mooring, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	instanceID := uuid.New().String()
	logger = log.WithFields(logger, log.String("instance", instanceID))

	term := o.terminator
	if term == nil {
		term = terminate.OSExit{}
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	lifecycle := app.NewLifecycle(logger, term, cfg.GracePeriod, cfg.Timeout)

	probe, err := probeserver.New(cfg.bindAddr(), lifecycle.StateReader(), logger)
	if err != nil {
		return nil, fmt.Errorf("mooring: starting probe server: %w", err)
	}
	lifecycle.SetProbe(probe)

	return &Mooring{
		config:     cfg,
		instanceID: instanceID,
		lifecycle:  lifecycle,
		probe:      probe,
		emitter:    emitter,
		logger:     logger,
	}, nil
}

// Addr returns the probe server's bound address, including the port the
// kernel assigned if Config.Ephemeral was set.
func (m *Mooring) Addr() string {
	return m.probe.Addr()
}

// InstanceID returns this instance's process-unique identity, the same
// value tagged onto every structured log event it emits.
func (m *Mooring) InstanceID() string {
	return m.instanceID
}

// Signals returns the set of process signals the caller's signal source
// should treat as a shutdown trigger, per Config.Signals.
func (m *Mooring) Signals() []os.Signal {
	return m.config.Signals
}

// SignalReady marks the process ready to serve traffic: NOT_READY → READY,
// a no-op otherwise.
func (m *Mooring) SignalReady() {
	before := m.lifecycle.State()
	m.lifecycle.SignalReady()
	m.emitter.emit(before, m.lifecycle.State(), "signalReady")
}

// SignalNotReady marks the process temporarily unable to serve traffic:
// READY → NOT_READY, a no-op during shutdown.
func (m *Mooring) SignalNotReady() {
	before := m.lifecycle.State()
	m.lifecycle.SignalNotReady()
	m.emitter.emit(before, m.lifecycle.State(), "signalNotReady")
}

// IsServerReady reports whether the process should be considered ready by
// the orchestrator. True once READY, and again once SHUTTING_DOWN (the
// /ready probe deliberately keeps reading ready during shutdown too), but
// forced false during the grace window.
func (m *Mooring) IsServerReady() bool {
	return m.lifecycle.IsServerReady()
}

// IsServerShuttingDown reports whether the process has committed to
// shutting down.
func (m *Mooring) IsServerShuttingDown() bool {
	return m.lifecycle.IsServerShuttingDown()
}

// RegisterShutdownHandler appends fn to the ordered handler registry. fn
// runs once all beacons have drained; a returned error is logged and
// never aborts the sequence.
func (m *Mooring) RegisterShutdownHandler(fn func() error) {
	m.lifecycle.RegisterShutdownHandler(domain.HandlerFunc(fn))
}

// CreateBeacon registers a new outstanding unit of work that defers
// shutdown until its Die method is called. diag is surfaced for
// diagnostics only; it is never interpreted.
func (m *Mooring) CreateBeacon(diag any) (*Beacon, error) {
	id, err := m.lifecycle.CreateBeacon(diag)
	if err != nil {
		return nil, err
	}
	return &Beacon{id: id, m: m}, nil
}

// Shutdown begins the shutdown sequence if it has not already started —
// repeated calls are idempotent — and returns a channel that closes once
// the probe server has been closed, before terminate is invoked.
func (m *Mooring) Shutdown() <-chan struct{} {
	before := m.lifecycle.State()
	done := m.lifecycle.Shutdown()
	go func() {
		<-done
		m.emitter.emit(before, m.lifecycle.State(), "shutdown")
	}()
	return done
}
