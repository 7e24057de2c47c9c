package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/mooring/pkg/log"
)

type fakeProbe struct {
	mu     sync.Mutex
	closed bool
}

func (p *fakeProbe) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakeProbe) wasClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type fakeTerminator struct {
	calls chan struct{}
}

func newFakeTerminator() *fakeTerminator {
	return &fakeTerminator{calls: make(chan struct{}, 8)}
}

func (t *fakeTerminator) Terminate() {
	t.calls <- struct{}{}
}

func TestCoordinator_RunsHandlersInOrderThenClosesAndTerminates(t *testing.T) {
	state := NewStateCell()
	beacons := NewBeaconRegistry(log.NewNoopLogger())
	handlers := NewHandlerRegistry()
	probe := &fakeProbe{}
	term := newFakeTerminator()

	var order []int
	var mu sync.Mutex
	handlers.Register(func() error { mu.Lock(); order = append(order, 0); mu.Unlock(); return nil })
	handlers.Register(func() error { mu.Lock(); order = append(order, 1); mu.Unlock(); return nil })

	c := NewCoordinator(state, beacons, handlers, probe, log.NewNoopLogger(), term, 0, time.Second)

	done := c.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown() never closed its done channel")
	}

	if !probe.wasClosed() {
		t.Fatal("probe server was not closed")
	}
	if !state.IsShuttingDown() {
		t.Fatal("state did not transition to shutting down")
	}

	select {
	case <-term.calls:
	case <-time.After(time.Second):
		t.Fatal("Terminate() was never called")
	}

	mu.Lock()
	got := append([]int(nil), order...)
	mu.Unlock()
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("handlers ran in order %v, want [0 1]", got)
	}
}

func TestCoordinator_ShutdownIsIdempotent(t *testing.T) {
	state := NewStateCell()
	beacons := NewBeaconRegistry(log.NewNoopLogger())
	handlers := NewHandlerRegistry()

	var calls int
	var mu sync.Mutex
	handlers.Register(func() error { mu.Lock(); calls++; mu.Unlock(); return nil })

	c := NewCoordinator(state, beacons, handlers, &fakeProbe{}, log.NewNoopLogger(), newFakeTerminator(), 0, time.Second)

	d1 := c.Shutdown()
	d2 := c.Shutdown()

	<-d1
	<-d2

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestCoordinator_WaitsForBeaconsBeforeHandlers(t *testing.T) {
	state := NewStateCell()
	beacons := NewBeaconRegistry(log.NewNoopLogger())
	handlers := NewHandlerRegistry()

	handlerRan := make(chan struct{})
	handlers.Register(func() error { close(handlerRan); return nil })

	id, err := beacons.Create("in-flight-request")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	c := NewCoordinator(state, beacons, handlers, &fakeProbe{}, log.NewNoopLogger(), newFakeTerminator(), 0, 5*time.Second)
	c.Shutdown()

	select {
	case <-handlerRan:
		t.Fatal("handler ran before the outstanding beacon was retired")
	case <-time.After(100 * time.Millisecond):
	}

	if err := beacons.Retire(id); err != nil {
		t.Fatalf("Retire() error = %v", err)
	}

	select {
	case <-handlerRan:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran after the beacon was retired")
	}
}

func TestCoordinator_GracePeriodDelaysShutdown(t *testing.T) {
	state := NewStateCell()
	state.SignalReady()
	beacons := NewBeaconRegistry(log.NewNoopLogger())
	handlers := NewHandlerRegistry()

	grace := 150 * time.Millisecond
	c := NewCoordinator(state, beacons, handlers, &fakeProbe{}, log.NewNoopLogger(), newFakeTerminator(), grace, 5*time.Second)

	start := time.Now()
	done := c.Shutdown()

	// During the grace window, IsReady must read false even though the raw
	// state has not committed to shutting down yet.
	time.Sleep(20 * time.Millisecond)
	if state.IsReady() {
		t.Fatal("IsReady() = true during the grace period")
	}
	if state.IsShuttingDown() {
		t.Fatal("IsShuttingDown() = true before the grace period elapsed")
	}

	<-done
	if elapsed := time.Since(start); elapsed < grace {
		t.Fatalf("shutdown completed after %v, want at least %v", elapsed, grace)
	}
}

func TestCoordinator_TimeoutForcesTerminate(t *testing.T) {
	state := NewStateCell()
	beacons := NewBeaconRegistry(log.NewNoopLogger())
	handlers := NewHandlerRegistry()

	block := make(chan struct{})
	handlers.Register(func() error { <-block; return nil })

	term := newFakeTerminator()
	c := NewCoordinator(state, beacons, handlers, &fakeProbe{}, log.NewNoopLogger(), term, 0, 30*time.Millisecond)

	c.Shutdown()

	select {
	case <-term.calls:
	case <-time.After(time.Second):
		t.Fatal("timeout watchdog never called Terminate()")
	}

	close(block)
}
