package clock

import "time"

// Timestamp pairs an Epoch with a nano reading taken against that
// epoch's nano source. Epoch is a pointer so that two Timestamps built
// from the same epoch (without a rebuild in between) can be compared
// for epoch identity with ==.
type Timestamp struct {
	Epoch    *Epoch
	NanosNow int64
}

// Instant returns the effective wall-clock instant this timestamp
// represents: Epoch.GlobalInstant offset by how far NanosNow has
// advanced past the epoch's NanosBefore reading.
func (t Timestamp) Instant() time.Time {
	delta := t.NanosNow - t.Epoch.NanosBefore
	return t.Epoch.GlobalInstant.Add(time.Duration(delta))
}
