package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/mooring/internal/domain"
	"github.com/bft-labs/mooring/internal/ports"
)

// probeCloser is the narrow contract the coordinator needs from the probe
// server: close it, with a bound on how long to wait for keep-alive
// sockets to drain.
type probeCloser interface {
	Close(ctx context.Context) error
}

// closeGrace bounds how long Close waits for the probe server's
// keep-alive connections to drain.
const closeGrace = 5 * time.Second

// Coordinator drives the shutdown sequence: grace delay, state
// transition, beacon drain, sequential handler invocation, probe server
// close, terminate — all racing an independent wall-clock watchdog that
// forces terminate if the sequence overruns.
type Coordinator struct {
	state    *StateCell
	beacons  *BeaconRegistry
	handlers *HandlerRegistry
	probe    probeCloser
	logger   ports.Logger
	term     ports.Terminator

	gracePeriod time.Duration
	timeout     time.Duration

	once          sync.Once
	done          chan struct{}
	terminateOnce sync.Once
}

// NewCoordinator wires a coordinator over the given components.
func NewCoordinator(
	state *StateCell,
	beacons *BeaconRegistry,
	handlers *HandlerRegistry,
	probe probeCloser,
	logger ports.Logger,
	term ports.Terminator,
	gracePeriod, timeout time.Duration,
) *Coordinator {
	return &Coordinator{
		state:       state,
		beacons:     beacons,
		handlers:    handlers,
		probe:       probe,
		logger:      logger,
		term:        term,
		gracePeriod: gracePeriod,
		timeout:     timeout,
		done:        make(chan struct{}),
	}
}

// Shutdown initiates the sequence exactly once; subsequent calls return
// the same completion channel immediately without restarting anything.
// The returned channel closes when the coordinator reaches step 6
// (closing the probe server) — before terminate is invoked.
func (c *Coordinator) Shutdown() <-chan struct{} {
	c.once.Do(func() {
		go c.run()
	})
	return c.done
}

func (c *Coordinator) run() {
	c.logger.Info("shutdown-requested")

	g := new(errgroup.Group)

	sequenceDone := make(chan struct{})
	g.Go(func() error {
		c.runSequence()
		close(sequenceDone)
		return nil
	})

	g.Go(func() error {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		select {
		case <-sequenceDone:
			return nil
		case <-timer.C:
			c.logger.Warn("timeout-exceeded", ports.Duration("timeout", c.timeout))
			c.forceTerminate()
			return nil
		}
	})

	_ = g.Wait()
}

// runSequence executes the grace delay, commit, beacon drain, handler
// invocation and probe close steps of the shutdown sequence.
func (c *Coordinator) runSequence() {
	if c.gracePeriod > 0 {
		c.state.BeginGracePeriod()
		c.logger.Info("grace-period-started", ports.Duration("gracePeriod", c.gracePeriod))
		time.Sleep(c.gracePeriod)
		c.logger.Info("grace-period-ended")
	}

	c.state.CommitShutdown()

	if err := c.beacons.AwaitEmpty(context.Background()); err != nil {
		c.logger.Warn("beacon drain interrupted", ports.Err(err))
	}

	c.beacons.Finalize()

	for _, h := range c.handlers.Snapshot() {
		c.invokeHandler(h)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeGrace)
	defer cancel()
	if err := c.probe.Close(closeCtx); err != nil {
		c.logger.Warn("probe-server-close-failed", ports.Err(err))
	}
	c.logger.Info("probe-server-closed")

	close(c.done)

	c.terminate()
}

// invokeHandler runs a single handler, recovering from panics and
// swallowing errors: a handler failure is logged and never aborts the
// sequence.
func (c *Coordinator) invokeHandler(h domain.Handler) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler-failed", ports.Int("handler", h.Index), ports.Any("panic", r))
		}
	}()

	c.logger.Debug("handler-invoked", ports.Int("handler", h.Index))
	if err := h.Run(); err != nil {
		c.logger.Error("handler-failed", ports.Int("handler", h.Index), ports.Err(err))
	}
}

func (c *Coordinator) terminate() {
	c.logger.Info("terminated")
	c.terminateOnce.Do(c.term.Terminate)
}

func (c *Coordinator) forceTerminate() {
	c.terminateOnce.Do(c.term.Terminate)
}
