package stateManager

import (
	"locksim/event"
	"locksim/state"

	"golang.org/x/exp/maps"
)

// A RunStateManager collects the state of a single run at a time.
//
// It is only accessed from the goroutine driving the run. When the run
// completes, EndRun hands the collected sequence to the StateManager
// and resets, after which the RunStateManager can collect the next run.
type RunStateManager[T, S any] struct {
	sm            StateManager[T, S]
	getLocalState func(*T) S

	run []state.GlobalState[S]
}

func NewRunStateManager[T, S any](sm StateManager[T, S], getLocalState func(*T) S) *RunStateManager[T, S] {
	return &RunStateManager[T, S]{
		sm:            sm,
		getLocalState: getLocalState,

		run: make([]state.GlobalState[S], 0),
	}
}

// UpdateGlobalState collects the local state of every node and appends
// the global state to the current run. evt is the event that caused the
// transition, or nil for the initial state.
func (rss *RunStateManager[T, S]) UpdateGlobalState(nodes map[int]*T, active map[int]bool, evt event.Event) {
	states := map[int]S{}
	for id, node := range nodes {
		states[id] = rss.getLocalState(node)
	}

	rss.run = append(rss.run, state.GlobalState[S]{
		LocalStates: states,
		Active:      maps.Clone(active),
		Evt:         state.CreateEventRecord(evt),
	})
}

func (rss *RunStateManager[T, S]) EndRun() {
	rss.sm.AddRun(rss.run)
	rss.run = make([]state.GlobalState[S], 0)
}
