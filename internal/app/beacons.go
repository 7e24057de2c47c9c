package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/mooring/internal/domain"
	"github.com/bft-labs/mooring/internal/ports"
)

// beaconPollInterval is the cadence AwaitEmpty polls the registry at.
const beaconPollInterval = 500 * time.Millisecond

// BeaconRegistry tracks outstanding units of work that defer shutdown.
type BeaconRegistry struct {
	mu        sync.Mutex
	live      map[domain.BeaconID]domain.Beacon
	nextID    domain.BeaconID
	finalized bool
	logger    ports.Logger
}

// NewBeaconRegistry creates an empty registry.
func NewBeaconRegistry(logger ports.Logger) *BeaconRegistry {
	return &BeaconRegistry{
		live:   make(map[domain.BeaconID]domain.Beacon),
		logger: logger,
	}
}

// Create registers a new outstanding beacon. It fails with
// ErrLifecycleFinalized only once Finalize has been called, i.e. once the
// coordinator has begun invoking shutdown handlers; it always succeeds
// before that, including throughout the grace period.
func (r *BeaconRegistry) Create(diag any) (domain.BeaconID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return 0, domain.ErrLifecycleFinalized
	}

	r.nextID++
	id := r.nextID
	r.live[id] = domain.Beacon{ID: id, Context: diag}
	r.logger.Debug("beacon-created", ports.Any("beacon", id))
	return id, nil
}

// Retire removes a beacon. A second Retire on the same id fails with
// ErrBeaconAlreadyRetired.
func (r *BeaconRegistry) Retire(id domain.BeaconID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live[id]; !ok {
		return domain.ErrBeaconAlreadyRetired
	}
	delete(r.live, id)
	r.logger.Debug("beacon-retired", ports.Any("beacon", id))
	return nil
}

// IsEmpty reports whether any beacon is still outstanding.
func (r *BeaconRegistry) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live) == 0
}

// AwaitEmpty blocks until the registry becomes empty, returning
// immediately if it already is. It returns ctx.Err() if ctx is canceled
// first; there is no per-beacon timeout, only the outer shutdown timeout
// bounds total elapsed time.
func (r *BeaconRegistry) AwaitEmpty(ctx context.Context) error {
	if r.IsEmpty() {
		return nil
	}

	ticker := time.NewTicker(beaconPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if r.IsEmpty() {
				return nil
			}
		}
	}
}

// Finalize marks the registry as finalized: subsequent Create calls fail
// with ErrLifecycleFinalized. Called by the coordinator right before it
// begins invoking shutdown handlers.
func (r *BeaconRegistry) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalized = true
}
