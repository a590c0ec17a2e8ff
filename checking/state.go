package checking

import "locksim/state"

// The state of the system at one point of an execution, as seen by a
// predicate.
type State[S any] struct {
	// The local states of the participants.
	LocalStates map[int]S

	// The activity status of the participants. False means the
	// participant has abandoned the protocol and takes no further
	// steps.
	Active map[int]bool

	// True if this is the last recorded state of a run.
	IsTerminal bool

	// The sequence of global states that led to this state, ending with
	// this state.
	Sequence []state.GlobalState[S]
}
