package checking

import (
	"locksim/event"
	"locksim/state"
)

// A Checker verifies that the configured properties hold for a
// discovered state space.
type Checker[S any] interface {
	Check(root state.StateSpace[S]) CheckerResponse
}

// CheckerResponse holds the result of checking the system.
type CheckerResponse interface {
	// Returns true if every property holds, and a description of the
	// result. On a violation the description contains the property that
	// broke and the sequence of states leading to the violating state.
	Response() (bool, string)

	// Export the run that caused a property violation as the sequence
	// of its event ids, suitable for the replay scheduler. Returns an
	// empty slice if no property was violated.
	Export() []event.EventId
}
