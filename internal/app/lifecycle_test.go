package app

import (
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/mooring/internal/domain"
	"github.com/bft-labs/mooring/pkg/log"
)

func TestLifecycle_InitialStateIsNotReady(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), newFakeTerminator(), 0, time.Second)
	l.SetProbe(&fakeProbe{})

	if l.State() != domain.StateNotReady {
		t.Fatalf("State() = %v, want %v", l.State(), domain.StateNotReady)
	}
	if l.IsServerReady() {
		t.Fatal("IsServerReady() = true initially")
	}
	if l.IsServerShuttingDown() {
		t.Fatal("IsServerShuttingDown() = true initially")
	}
}

func TestLifecycle_SignalReadyMakesServerReady(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), newFakeTerminator(), 0, time.Second)
	l.SetProbe(&fakeProbe{})

	l.SignalReady()
	if !l.IsServerReady() {
		t.Fatal("IsServerReady() = false after SignalReady")
	}
}

func TestLifecycle_BeaconLifecycle(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), newFakeTerminator(), 0, time.Second)
	l.SetProbe(&fakeProbe{})

	id, err := l.CreateBeacon("request-42")
	if err != nil {
		t.Fatalf("CreateBeacon() error = %v", err)
	}
	if err := l.RetireBeacon(id); err != nil {
		t.Fatalf("RetireBeacon() error = %v", err)
	}
	if err := l.RetireBeacon(id); !errors.Is(err, domain.ErrBeaconAlreadyRetired) {
		t.Fatalf("second RetireBeacon() error = %v, want %v", err, domain.ErrBeaconAlreadyRetired)
	}
}

func TestLifecycle_ShutdownTransitionsAndTerminates(t *testing.T) {
	term := newFakeTerminator()
	probe := &fakeProbe{}
	l := NewLifecycle(log.NewNoopLogger(), term, 0, time.Second)
	l.SetProbe(probe)
	l.SignalReady()

	var handlerRan bool
	l.RegisterShutdownHandler(func() error { handlerRan = true; return nil })

	done := l.Shutdown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown() never completed")
	}

	if !l.IsServerShuttingDown() {
		t.Fatal("IsServerShuttingDown() = false after Shutdown completed")
	}
	if !l.IsServerReady() {
		t.Fatal("IsServerReady() = false once shutting down")
	}
	if !handlerRan {
		t.Fatal("registered shutdown handler did not run")
	}
	if !probe.wasClosed() {
		t.Fatal("probe server was not closed")
	}

	select {
	case <-term.calls:
	case <-time.After(time.Second):
		t.Fatal("Terminate() was never called")
	}
}

func TestLifecycle_CreateBeaconFailsAfterShutdownHandlersStart(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), newFakeTerminator(), 0, time.Second)
	l.SetProbe(&fakeProbe{})

	done := l.Shutdown()
	<-done

	if _, err := l.CreateBeacon("too-late"); !errors.Is(err, domain.ErrLifecycleFinalized) {
		t.Fatalf("CreateBeacon() after shutdown error = %v, want %v", err, domain.ErrLifecycleFinalized)
	}
}
