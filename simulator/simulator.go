// Package simulator drives the exploration of the interleaving space.
//
// A Simulator runs the system under test repeatedly, once per
// interleaving picked by the scheduler, and hands the states it
// discovers to the state manager. Runs are simulated concurrently by a
// configurable number of workers.
package simulator

import (
	"fmt"

	"locksim/abandonment"
	"locksim/eventManager"
	"locksim/request"
	"locksim/scheduler"
	"locksim/stateManager"
)

type Simulator[T any, S any] struct {
	// The scheduler keeps track of the pending events and selects the
	// order they execute in.
	Scheduler scheduler.GlobalScheduler

	sm stateManager.StateManager[T, S]

	// If true, errors raised while simulating runs are collected and
	// returned in aggregate at the end. If false, the first error
	// interrupts the simulation.
	ignoreErrors bool

	// If true, panics raised by a node are allowed to propagate. If
	// false they are recovered and reported as errors.
	ignorePanics bool

	maxRuns       int
	maxDepth      int
	numConcurrent int
}

func NewSimulator[T any, S any](sch scheduler.GlobalScheduler, sm stateManager.StateManager[T, S], ignoreErrors bool, ignorePanics bool, maxRuns int, maxDepth int, numConcurrent int) *Simulator[T, S] {
	return &Simulator[T, S]{
		Scheduler: sch,
		sm:        sm,

		ignoreErrors: ignoreErrors,
		ignorePanics: ignorePanics,

		maxRuns:       maxRuns,
		maxDepth:      maxDepth,
		numConcurrent: numConcurrent,
	}
}

// Simulate explores the behavior of the system under the provided
// requests.
//
// initNodes creates the participants of a run, keyed by id. It is
// called once per run so that runs start from identical, independent
// states. stopFunc is called on every participant when its run ends.
// At least one request must be provided, otherwise no event would ever
// be scheduled and every run would be empty.
//
// Simulate returns nil if the exploration runs to completion or
// reaches the configured number of runs.
func (s Simulator[T, S]) Simulate(am abandonment.Manager[T], initNodes func(eventManager.SimulationParameters) map[int]*T, stopFunc func(*T), requests ...request.Request) error {
	if len(requests) < 1 {
		return fmt.Errorf("simulator: at least one request is needed to start the simulation")
	}

	cfg := &runParameters[T]{
		initNodes: initNodes,
		stopNode:  stopFunc,
		requests:  requests,
	}

	// Make sure no state from a previous simulation leaks into this one
	s.sm.Reset()
	s.Scheduler.Reset()

	// Signals the workers to start the next run
	nextRun := make(chan bool)
	// One status update per completed run, carrying its error if any
	status := make(chan error)
	// Each worker signals on closing when it stops simulating runs
	closing := make(chan bool)

	ongoing := 0
	startedRuns := 0
	for i := 0; i < s.numConcurrent; i++ {
		ongoing++
		rsch := s.Scheduler.GetRunScheduler()
		rsim := newRunSimulator(rsch, s.sm.GetRunStateManager(), am.GetRunManager(rsch), s.maxDepth, s.ignorePanics)
		go rsim.SimulateRuns(nextRun, status, closing, cfg)

		startedRuns++
		nextRun <- true

		if startedRuns >= s.maxRuns {
			break
		}
	}

	return s.mainLoop(ongoing, startedRuns, nextRun, status, closing)
}

// mainLoop receives one status update per completed run and hands out
// permission to start new ones until maxRuns is reached or an error
// stops the simulation. It returns when all workers have closed.
func (s *Simulator[T, S]) mainLoop(ongoing int, startedRuns int, nextRun chan bool, status chan error, closing chan bool) error {
	errorSlice := []error{}
	var out error

	stopped := false
	stop := func() {
		if !stopped {
			stopped = true
			close(nextRun)
		}
	}

	for ongoing > 0 {
		select {
		case err := <-status:
			if err != nil {
				if !s.ignoreErrors {
					out = err
					stop()
					break
				}
				errorSlice = append(errorSlice, err)
			}

			if startedRuns < s.maxRuns && !stopped {
				nextRun <- true
				startedRuns++
			} else {
				stop()
			}
		case <-closing:
			ongoing--
		}
	}

	stop()

	// All workers have stopped, so nobody will send on these anymore
	close(closing)
	close(status)

	if s.ignoreErrors && len(errorSlice) > 0 {
		return simulationError{
			errorSlice: errorSlice,
		}
	}
	return out
}
