package ports

import "github.com/bft-labs/mooring/pkg/log"

// Logger is the structured logging contract the application layer depends
// on. It is a direct alias of the public pkg/log.Logger so that a caller's
// custom logger (implemented against pkg/log) can be handed straight to
// the internal layers without an adapter.
type Logger = log.Logger

// Field is a structured log field. Alias of pkg/log.Field.
type Field = log.Field

// Helper constructors re-exported for convenience inside internal/app and
// internal/adapters, avoiding an extra import line at every call site.
var (
	String   = log.String
	Int      = log.Int
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
