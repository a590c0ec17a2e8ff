package scheduler

import (
	"errors"
	"sync"

	"locksim/event"
)

// Replay schedules exactly one run: the provided sequence of event ids,
// as exported from a checker response. It fails if the recorded
// sequence can not be reproduced.
type Replay struct {
	trace []event.EventId
	done  bool
}

func NewReplay(trace []event.EventId) *Replay {
	return &Replay{
		trace: trace,
	}
}

func (r *Replay) GetRunScheduler() RunScheduler {
	if r.done {
		return newRunReplay(nil)
	}
	r.done = true
	return newRunReplay(r.trace)
}

func (r *Replay) Reset() {
	r.done = false
}

type runReplay struct {
	sync.Mutex

	trace []event.EventId
	index int

	pendingEvents []event.Event
}

func newRunReplay(trace []event.EventId) *runReplay {
	return &runReplay{
		trace: trace,
		index: 0,

		pendingEvents: make([]event.Event, 0),
	}
}

func (rr *runReplay) GetEvent() (event.Event, error) {
	rr.Lock()
	defer rr.Unlock()

	if rr.index >= len(rr.trace) {
		rr.trace = nil
		return nil, RunEndedError
	}
	evtId := rr.trace[rr.index]
	evt := rr.popEvent(evtId)
	if evt == nil {
		return nil, errors.New("scheduler: unable to reproduce the recorded run")
	}
	rr.index++
	return evt, nil
}

func (rr *runReplay) popEvent(id event.EventId) event.Event {
	for i, evt := range rr.pendingEvents {
		if evt.Id() == id {
			rr.pendingEvents = append(rr.pendingEvents[:i], rr.pendingEvents[i+1:]...)
			return evt
		}
	}
	return nil
}

func (rr *runReplay) AddEvent(evt event.Event) {
	rr.Lock()
	defer rr.Unlock()
	rr.pendingEvents = append(rr.pendingEvents, evt)
}

func (rr *runReplay) StartRun() error {
	rr.Lock()
	defer rr.Unlock()
	if rr.trace == nil {
		return NoRunsError
	}
	return nil
}

func (rr *runReplay) EndRun() {
	rr.Lock()
	defer rr.Unlock()
	rr.index = 0
	rr.trace = nil
}
