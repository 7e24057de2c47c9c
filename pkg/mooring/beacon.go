package mooring

import "github.com/bft-labs/mooring/internal/domain"

// Beacon is a handle for one outstanding unit of work that defers
// shutdown until retired. Each Beacon retires at most once; a second
// Die returns ErrBeaconAlreadyRetired.
type Beacon struct {
	id domain.BeaconID
	m  *Mooring
}

// Die retires the beacon. Shutdown's beacon-drain step unblocks once
// every outstanding beacon has been retired.
func (b *Beacon) Die() error {
	return b.m.lifecycle.RetireBeacon(b.id)
}
