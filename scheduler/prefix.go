package scheduler

import (
	"errors"
	"sync"

	"locksim/event"
)

type trace []event.EventId

// Prefix explores the interleaving space systematically, depth first.
//
// It keeps a stack of unexplored prefixes. A new run replays one prefix
// and continues from its end; every alternative event that was pending
// at a branching point is pushed as a new prefix. The exploration stops
// once the stack drains, at which point the entire reachable space has
// been covered without scheduling the same run twice.
type Prefix struct {
	// unexplored prefixes
	prefixes []trace

	// Signals a change in ongoing or prefixes. Run schedulers wait here
	// while the stack is empty but other runs are still executing and
	// may still push prefixes.
	cond *sync.Cond

	// Number of run schedulers currently executing a run.
	ongoing int
}

func NewPrefix() *Prefix {
	return &Prefix{
		prefixes: []trace{{}},
		cond:     sync.NewCond(new(sync.Mutex)),
	}
}

func (p *Prefix) GetRunScheduler() RunScheduler {
	return newRunPrefix(p)
}

func (p *Prefix) Reset() {
	p.cond.L.Lock()
	defer p.cond.L.Unlock()
	p.prefixes = []trace{{}}
	p.ongoing = 0
}

func (p *Prefix) addTrace(tr trace) {
	p.cond.L.Lock()
	defer p.cond.L.Unlock()

	p.prefixes = append(p.prefixes, tr)

	if len(p.prefixes) == 1 {
		p.cond.Broadcast()
	}
}

func (p *Prefix) endRun() {
	p.cond.L.Lock()
	defer p.cond.L.Unlock()

	p.ongoing--
	p.cond.Broadcast()
}

func (p *Prefix) getTrace() trace {
	p.cond.L.Lock()
	defer p.cond.L.Unlock()

	// If the stack is empty but runs are still ongoing they may yet push
	// new prefixes, so wait. If the stack is empty and nothing is
	// ongoing the exploration is complete.
	for len(p.prefixes) == 0 && p.ongoing > 0 {
		p.cond.Wait()
	}
	if len(p.prefixes) == 0 {
		return nil
	}

	tr := p.prefixes[len(p.prefixes)-1]
	p.prefixes = p.prefixes[:len(p.prefixes)-1]

	p.ongoing++
	return tr
}

type runPrefix struct {
	sync.Mutex

	p *Prefix

	currentIndex int
	currentTrace trace

	pendingEvents []event.Event
}

func newRunPrefix(p *Prefix) *runPrefix {
	return &runPrefix{
		p: p,

		currentIndex:  0,
		currentTrace:  make(trace, 0),
		pendingEvents: make([]event.Event, 0),
	}
}

func (rp *runPrefix) GetEvent() (event.Event, error) {
	rp.Lock()
	defer rp.Unlock()

	if len(rp.pendingEvents) == 0 {
		return nil, RunEndedError
	}

	var evt event.Event
	if rp.currentIndex < len(rp.currentTrace) {
		// Still replaying the assigned prefix.
		evtId := rp.currentTrace[rp.currentIndex]
		evt = rp.popEvent(evtId)
		if evt == nil {
			return nil, errors.New("scheduler: prefix names an event that is not pending")
		}
	} else {
		// Past the prefix: pick the last pending event and fork a new
		// prefix for every alternative that was pending here.
		evt = rp.pendingEvents[len(rp.pendingEvents)-1]
		rp.pendingEvents = rp.pendingEvents[:len(rp.pendingEvents)-1]

		for _, pendingEvt := range rp.pendingEvents {
			newTrace := make(trace, len(rp.currentTrace))
			copy(newTrace, rp.currentTrace)
			newTrace = append(newTrace, pendingEvt.Id())
			rp.p.addTrace(newTrace)
		}
		rp.currentTrace = append(rp.currentTrace, evt.Id())
	}
	rp.currentIndex++
	return evt, nil
}

func (rp *runPrefix) popEvent(evtId event.EventId) event.Event {
	for i, pendingEvt := range rp.pendingEvents {
		if evtId == pendingEvt.Id() {
			rp.pendingEvents = append(rp.pendingEvents[:i], rp.pendingEvents[i+1:]...)
			return pendingEvt
		}
	}
	return nil
}

func (rp *runPrefix) AddEvent(evt event.Event) {
	rp.Lock()
	defer rp.Unlock()
	rp.pendingEvents = append(rp.pendingEvents, evt)
}

func (rp *runPrefix) StartRun() error {
	rp.Lock()
	defer rp.Unlock()

	rp.currentIndex = 0
	rp.pendingEvents = rp.pendingEvents[:0]
	tr := rp.p.getTrace()
	if tr == nil {
		return NoRunsError
	}
	rp.currentTrace = tr
	return nil
}

func (rp *runPrefix) EndRun() {
	rp.p.endRun()
}
