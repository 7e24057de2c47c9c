package workload

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/mooring/pkg/log"
)

type fakeBeacon struct {
	mu     *sync.Mutex
	retire func()
}

func (b fakeBeacon) Die() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.retire()
	return nil
}

type fakeSource struct {
	mu      sync.Mutex
	created int
	retired int
	closed  bool
}

func (s *fakeSource) CreateBeacon(diag any) (Beacon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	return fakeBeacon{mu: &s.mu, retire: func() { s.retired++ }}, nil
}

func TestSimulator_StartStop(t *testing.T) {
	source := &fakeSource{}
	sim := New(source, log.NewNoopLogger(), 3, time.Millisecond, 5*time.Millisecond)

	if err := sim.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if err := sim.Stop(time.Second); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	if source.created == 0 {
		t.Error("expected at least one beacon to be created")
	}
}
