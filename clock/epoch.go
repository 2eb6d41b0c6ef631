package clock

import "time"

// Epoch is a reference point tying a relative nano counter to a global
// wall-clock instant. WithVMNanos is the form a SystemClock builds;
// WithUncertaintyWindow is a downgraded form (e.g. received from
// another process) that can no longer relate timestamps across epochs.
type Epoch struct {
	// HasVMNanos is true when NanosBefore/NanosAfter are meaningful.
	HasVMNanos bool

	// NanosBefore, NanosAfter bracket the GlobalInstant capture on the
	// monotonic nano source, in that order. Only set when HasVMNanos.
	NanosBefore int64
	NanosAfter  int64

	// GlobalInstant is the wall-clock instant captured between
	// NanosBefore and NanosAfter (or the only instant, for
	// WithUncertaintyWindow epochs).
	GlobalInstant time.Time

	// UncertaintyNanos is the uncertainty window for a
	// WithUncertaintyWindow epoch. For a WithVMNanos epoch, the
	// equivalent uncertainty is Duration().
	UncertaintyNanos int64
}

// NewEpochWithVMNanos builds a WithVMNanos epoch from the three values
// captured in order: nanosBefore, globalInstant, nanosAfter.
func NewEpochWithVMNanos(nanosBefore int64, globalInstant time.Time, nanosAfter int64) Epoch {
	return Epoch{
		HasVMNanos:    true,
		NanosBefore:   nanosBefore,
		NanosAfter:    nanosAfter,
		GlobalInstant: globalInstant,
	}
}

// NewEpochWithUncertaintyWindow builds a downgraded epoch that only
// carries a global instant and an uncertainty window.
func NewEpochWithUncertaintyWindow(globalInstant time.Time, uncertaintyNanos int64) Epoch {
	return Epoch{
		GlobalInstant:    globalInstant,
		UncertaintyNanos: uncertaintyNanos,
	}
}

// Duration returns the uncertainty of the global measurement:
// NanosAfter - NanosBefore for a WithVMNanos epoch, or
// UncertaintyNanos otherwise.
func (e Epoch) Duration() int64 {
	if e.HasVMNanos {
		return e.NanosAfter - e.NanosBefore
	}
	return e.UncertaintyNanos
}
