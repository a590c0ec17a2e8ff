package scheduler

import (
	"errors"

	"locksim/event"
)

// A GlobalScheduler manages the exploration of the interleaving space
// across runs. It hands out RunSchedulers to the workers simulating
// individual runs and coordinates them so the exploration stays
// consistent.
type GlobalScheduler interface {
	// Create a RunScheduler that communicates with this scheduler.
	GetRunScheduler() RunScheduler

	// Reset the scheduler so a new simulation can start from scratch.
	Reset()
}

// A RunScheduler selects the order of events within single runs.
//
// AddEvent may be called from a different goroutine than the one
// driving the run; StartRun, GetEvent and EndRun are always called from
// the run's own goroutine.
type RunScheduler interface {
	// Get the next event of the run. Returns RunEndedError when the run
	// has no more events. The returned event must have been added during
	// the current run.
	GetEvent() (event.Event, error)

	// Add an event to the set of pending events.
	AddEvent(event.Event)

	// Prepare a new run. Returns NoRunsError when every run has been
	// explored. May block until a new run is available.
	StartRun() error

	// Finish the current run and prepare for the next one.
	EndRun()
}

var (
	RunEndedError = errors.New("scheduler: the run has ended")
	NoRunsError   = errors.New("scheduler: no new runs available")
)
