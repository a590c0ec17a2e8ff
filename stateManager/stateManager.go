package stateManager

import (
	"locksim/state"
)

// A StateManager collects the global states discovered across runs and
// aggregates them into the state space handed to the checker.
type StateManager[T, S any] interface {
	// Create a RunStateManager collecting the states of a single run.
	GetRunStateManager() *RunStateManager[T, S]

	// Add a completed run to the state space. Safe to call from
	// multiple goroutines.
	AddRun(run []state.GlobalState[S])

	// The aggregated state space.
	State() state.StateSpace[S]

	// Discard the collected state so a new simulation can start.
	Reset()
}
