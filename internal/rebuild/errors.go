package rebuild

import "errors"

// Non-fatal pipeline conditions. Each is recovered locally: the offending
// event or candidate round is dropped, logged, and counted in Diagnostics.
var (
	// ErrUnresolvedEntity marks a kill referencing an unknown steam id.
	ErrUnresolvedEntity = errors.New("kill references unknown entity")
	// ErrRoundBoundary marks a malformed or out-of-order round_end event.
	ErrRoundBoundary = errors.New("malformed round boundary")
	// ErrOutOfRangeEvent marks an event whose tick falls in no round's range.
	ErrOutOfRangeEvent = errors.New("event tick outside all rounds")
)
