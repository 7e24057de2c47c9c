package mooring

import "github.com/bft-labs/mooring/internal/domain"

// Re-exported domain errors. Callers check these with errors.Is.
var (
	// ErrBeaconAlreadyRetired is returned by a second Die() on a Beacon.
	ErrBeaconAlreadyRetired = domain.ErrBeaconAlreadyRetired

	// ErrLifecycleFinalized is returned by CreateBeacon once shutdown has
	// begun invoking handlers.
	ErrLifecycleFinalized = domain.ErrLifecycleFinalized

	// ErrInvalidConfig is returned by New when Config.Validate fails.
	ErrInvalidConfig = domain.ErrInvalidConfig
)
