package event

import "fmt"

// RequestEvent seeds an acquire cycle on the target participant. It is
// how the driver's scenario enters the simulation.
//
// Requests are provided in sequential order at the start of every run,
// so the index is consistent between runs.
type RequestEvent struct {
	Index  int
	target int
}

func NewRequestEvent(index, target int) RequestEvent {
	return RequestEvent{
		Index:  index,
		target: target,
	}
}

func (re RequestEvent) Id() EventId {
	return EventId(fmt.Sprintf("Request %v", re.Index))
}

func (re RequestEvent) String() string {
	return fmt.Sprintf("{Request %v %v}", re.Index, re.target)
}

func (re RequestEvent) Execute(node any, nextEvt chan error) {
	n, ok := node.(Stepper)
	if !ok {
		nextEvt <- fmt.Errorf("event: node %v can not perform protocol steps", re.target)
		return
	}
	nextEvt <- n.Step(StepAcquire)
}

func (re RequestEvent) Target() int {
	return re.target
}
