package simulator

import (
	"locksim/event"
	"locksim/scheduler"
)

// Dummy node and scheduler types used across the tests

type MockNode struct {
	steps []event.Step

	err    error
	panics bool
}

func (n *MockNode) Step(s event.Step) error {
	if n.panics {
		panic("mock node panicked")
	}
	n.steps = append(n.steps, s)
	return n.err
}

// MockRunScheduler schedules events first in first out and allows a
// fixed number of runs.
type MockRunScheduler struct {
	addedEvents []event.Event
	runs        int
	maxRuns     int
}

func NewMockRunScheduler(maxRuns int) *MockRunScheduler {
	return &MockRunScheduler{
		addedEvents: make([]event.Event, 0),
		maxRuns:     maxRuns,
	}
}

func (ms *MockRunScheduler) AddEvent(evt event.Event) {
	ms.addedEvents = append(ms.addedEvents, evt)
}

func (ms *MockRunScheduler) GetEvent() (event.Event, error) {
	if len(ms.addedEvents) == 0 {
		return nil, scheduler.RunEndedError
	}
	evt := ms.addedEvents[0]
	ms.addedEvents = ms.addedEvents[1:]
	return evt, nil
}

func (ms *MockRunScheduler) StartRun() error {
	if ms.runs >= ms.maxRuns {
		return scheduler.NoRunsError
	}
	ms.runs++
	ms.addedEvents = make([]event.Event, 0)
	return nil
}

func (ms *MockRunScheduler) EndRun() {}

type MockGlobalScheduler struct {
	rs *MockRunScheduler
}

func NewMockGlobalScheduler(runs int) *MockGlobalScheduler {
	return &MockGlobalScheduler{
		rs: NewMockRunScheduler(runs),
	}
}

func (mg *MockGlobalScheduler) GetRunScheduler() scheduler.RunScheduler {
	return mg.rs
}

func (mg *MockGlobalScheduler) Reset() {}
