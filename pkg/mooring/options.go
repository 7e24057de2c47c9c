package mooring

import (
	"github.com/bft-labs/mooring/internal/ports"
	"github.com/bft-labs/mooring/pkg/log"
)

// Logger is the structured logging interface Mooring emits events to.
// *ZerologAdapter from pkg/log satisfies this, as does any custom
// implementation.
type Logger = log.Logger

// Terminator is the collaborator invoked to force process exit as the
// final step of shutdown.
type Terminator = ports.Terminator

// Option configures optional behavior of a Mooring instance.
type Option func(*options)

type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	terminator   ports.Terminator
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the structured logger events are reported to. If not
// provided, a no-op logger is used.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler notified of lifecycle state changes.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithTerminator overrides the collaborator invoked to force process
// exit. If not provided, the default calls os.Exit(0).
func WithTerminator(term Terminator) Option {
	return func(o *options) {
		o.terminator = term
	}
}
