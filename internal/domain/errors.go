package domain

import "errors"

// Domain errors returned by the public API. Callers check them with errors.Is.
var (
	// ErrBeaconAlreadyRetired is returned by a second Die() call on the same beacon.
	ErrBeaconAlreadyRetired = errors.New("mooring: beacon already retired")

	// ErrLifecycleFinalized is returned by CreateBeacon once the shutdown
	// coordinator has begun invoking handlers.
	ErrLifecycleFinalized = errors.New("mooring: lifecycle already finalized")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("mooring: invalid configuration")
)
