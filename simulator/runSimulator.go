package simulator

import (
	"errors"
	"fmt"
	"runtime/debug"

	"locksim/abandonment"
	"locksim/event"
	"locksim/eventManager"
	"locksim/request"
	"locksim/scheduler"
	"locksim/stateManager"
)

// A runSimulator simulates runs one at a time. Several runSimulators
// work in parallel, each with its own run scheduler, run state manager
// and abandonment run manager.
type runSimulator[T, S any] struct {
	sch scheduler.RunScheduler
	sm  *stateManager.RunStateManager[T, S]
	am  abandonment.RunManager[T]

	nextEvt chan error

	maxDepth     int
	ignorePanics bool
}

func newRunSimulator[T, S any](sch scheduler.RunScheduler, sm *stateManager.RunStateManager[T, S], am abandonment.RunManager[T], maxDepth int, ignorePanics bool) *runSimulator[T, S] {
	return &runSimulator[T, S]{
		sch: sch,
		sm:  sm,
		am:  am,

		nextEvt: make(chan error),

		maxDepth:     maxDepth,
		ignorePanics: ignorePanics,
	}
}

// SimulateRuns simulates a new run every time it receives a signal on
// the nextRun channel. It stops when the channel closes or when the
// scheduler reports that every run has been explored, and signals on
// the closing channel before returning. One status update is sent per
// completed run.
func (rs *runSimulator[T, S]) SimulateRuns(nextRun chan bool, status chan error, closing chan bool, cfg *runParameters[T]) {
	for range nextRun {
		err := rs.simulateRun(cfg)
		if errors.Is(err, scheduler.NoRunsError) {
			break
		}
		status <- err
	}

	closing <- true
}

func (rs *runSimulator[T, S]) simulateRun(cfg *runParameters[T]) error {
	nodes, err := rs.initRun(cfg.initNodes, cfg.requests...)
	if err != nil {
		return err
	}

	defer rs.teardownRun(nodes, cfg.stopNode)

	err = rs.executeRun(nodes)
	if err != nil {
		return fmt.Errorf("simulator: an error occurred while simulating a run: %w", err)
	}
	return nil
}

// initRun prepares a new run: it acquires a run from the scheduler,
// creates fresh nodes, records the initial state and schedules the
// requests of the scenario.
func (rs *runSimulator[T, S]) initRun(initNodes func(sp eventManager.SimulationParameters) map[int]*T, requests ...request.Request) (map[int]*T, error) {
	// The scheduler must have started the run before any event is added
	err := rs.sch.StartRun()
	if err != nil {
		return nil, err
	}

	nodes := initNodes(eventManager.SimulationParameters{
		EventAdder: rs.sch,
	})

	// Schedules the abandon events, if any
	rs.am.Init(nodes)

	rs.sm.UpdateGlobalState(nodes, rs.am.Active(), nil)

	err = rs.scheduleRequests(requests, nodes)
	if err != nil {
		return nil, err
	}

	return nodes, nil
}

// executeRun gets events from the scheduler and executes them until
// the run ends or the depth limit is reached. The global state is
// recorded after every event.
func (rs *runSimulator[T, S]) executeRun(nodes map[int]*T) error {
	depth := 0
	for depth < rs.maxDepth {
		evt, err := rs.sch.GetEvent()
		if errors.Is(err, scheduler.RunEndedError) {
			return nil
		} else if err != nil {
			return err
		}
		node, ok := nodes[evt.Target()]
		if !ok {
			return fmt.Errorf("simulator: event targets a participant that does not exist: %v", evt.Target())
		}
		err = rs.executeEvent(node, evt)
		if err != nil {
			return err
		}
		rs.sm.UpdateGlobalState(nodes, rs.am.Active(), evt)
		depth++
	}
	return nil
}

// executeEvent runs the event in a separate goroutine and blocks until
// the event signals completion on the nextEvt channel.
func (rs *runSimulator[T, S]) executeEvent(node *T, evt event.Event) error {
	go func() {
		if !rs.ignorePanics {
			// A panic in a node is a fault in the system under test and is
			// reported as a simulation error
			defer func() {
				if p := recover(); p != nil {
					rs.nextEvt <- fmt.Errorf("simulator: participant panicked while executing an event: %v \nStack Trace:\n%s", p, debug.Stack())
				}
			}()
		}
		evt.Execute(node, rs.nextEvt)
	}()
	return <-rs.nextEvt
}

func (rs *runSimulator[T, S]) scheduleRequests(requests []request.Request, nodes map[int]*T) error {
	addedRequests := 0
	for _, r := range requests {
		if _, ok := nodes[r.Participant]; !ok {
			continue
		}
		rs.sch.AddEvent(
			event.NewRequestEvent(addedRequests, r.Participant),
		)
		addedRequests++
	}
	if addedRequests == 0 {
		return fmt.Errorf("simulator: no request targets an existing participant")
	}
	return nil
}

// teardownRun ends the run with the scheduler and state manager and
// stops the nodes.
func (rs *runSimulator[T, S]) teardownRun(nodes map[int]*T, stopFunc func(*T)) {
	rs.sch.EndRun()
	rs.sm.EndRun()

	if stopFunc == nil {
		return
	}
	for _, node := range nodes {
		stopFunc(node)
	}
}

// The parameters shared by all runs of a simulation. Read only.
type runParameters[T any] struct {
	initNodes func(sp eventManager.SimulationParameters) map[int]*T
	stopNode  func(*T)
	requests  []request.Request
}
