package domain

// BeaconID is an opaque, process-unique identity for an outstanding unit
// of work. It is an arena-assigned index inside the beacon registry; the
// public API hands out a small *mooring.Beacon handle wrapping it rather
// than the index itself.
type BeaconID uint64

// Beacon is a single outstanding unit of work registered with the
// lifecycle. The shutdown coordinator will not invoke shutdown handlers
// while any beacon remains outstanding.
type Beacon struct {
	ID      BeaconID
	Context any
}
