// Package workload simulates inbound requests for cmd/mooring-demo: a
// pool of workers that each create a beacon, hold it for a random
// duration as if serving a request, then retire it. It exists purely to
// give the demo binary something running concurrently with shutdown to
// show beacons actually deferring the handler phase.
package workload

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/mooring/pkg/log"
)

// BeaconSource is the narrow mooring surface a worker needs.
type BeaconSource interface {
	CreateBeacon(diag any) (Beacon, error)
}

// Beacon is the narrow surface of mooring.Beacon a worker needs.
type Beacon interface {
	Die() error
}

// Simulator runs a fixed pool of request-simulating workers, cancelable
// as a group and awaitable with a timeout so shutdown can wait for every
// in-flight simulated request to finish before returning.
type Simulator struct {
	source  BeaconSource
	logger  log.Logger
	count   int
	minWork time.Duration
	maxWork time.Duration

	wg     sync.WaitGroup
	runCtx context.Context
	cancel context.CancelFunc
}

// New builds a Simulator with count workers, each holding its simulated
// beacon for a random duration in [minWork, maxWork].
func New(source BeaconSource, logger log.Logger, count int, minWork, maxWork time.Duration) *Simulator {
	return &Simulator{
		source:  source,
		logger:  logger,
		count:   count,
		minWork: minWork,
		maxWork: maxWork,
	}
}

// Start launches the worker pool. Stop must be called exactly once.
func (s *Simulator) Start(ctx context.Context) error {
	s.runCtx, s.cancel = context.WithCancel(ctx)

	for i := 0; i < s.count; i++ {
		s.wg.Add(1)
		go s.runWorker(i)
	}
	return nil
}

// Stop cancels all workers and waits up to timeout for them to drain.
func (s *Simulator) Stop(timeout time.Duration) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		s.logger.Warn("workload: shutdown timeout, workers still draining", log.Duration("timeout", timeout))
		return context.DeadlineExceeded
	}
}

func (s *Simulator) runWorker(id int) {
	defer s.wg.Done()

	backoff := newBackoff(50*time.Millisecond, 2*time.Second)

	for {
		select {
		case <-s.runCtx.Done():
			return
		default:
		}

		requestID := uuid.New().String()
		beacon, err := s.source.CreateBeacon(requestID)
		if err != nil {
			// Lifecycle has begun finalizing; no more simulated requests.
			return
		}

		work := s.minWork + time.Duration(rand.Int63n(int64(s.maxWork-s.minWork+1)))
		s.logger.Debug("workload: request started",
			log.Int("worker", id), log.String("requestID", requestID), log.Duration("work", work))

		select {
		case <-time.After(work):
		case <-s.runCtx.Done():
		}

		if err := beacon.Die(); err != nil {
			s.logger.Warn("workload: beacon retire failed", log.Err(err))
		}

		backoff.sleep()
	}
}

// backoff implements exponential backoff with jitter between a worker's
// simulated requests.
type backoff struct {
	max     time.Duration
	current time.Duration
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{max: max, current: initial}
}

func (b *backoff) sleep() {
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	time.Sleep(time.Duration(float64(b.current) + jitter))

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
}
