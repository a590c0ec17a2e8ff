package event

import "fmt"

// A Step is one protocol action a participant can take as a discrete
// event.
type Step string

const (
	// StepAcquire requests a ticket, or queues the intent if a cycle is
	// already in flight.
	StepAcquire Step = "Acquire"
	// StepPoll is the wait-check: it enters the protected region if the
	// held ticket is being served and otherwise records a failed check.
	StepPoll Step = "Poll"
	// StepRelease exits the protected region.
	StepRelease Step = "Release"
)

// A Stepper is a node that can perform protocol steps.
type Stepper interface {
	Step(Step) error
}

// StepEvent performs a single protocol step on the target node.
//
// seq is a per-target sequence number assigned by the node when it
// schedules its next step. It makes the id unique within a run while
// staying identical across runs that share the same prefix.
type StepEvent struct {
	step   Step
	target int
	seq    int
}

func NewStepEvent(step Step, target, seq int) StepEvent {
	return StepEvent{
		step:   step,
		target: target,
		seq:    seq,
	}
}

func (se StepEvent) Id() EventId {
	return EventId(fmt.Sprintf("%v %v-%v", se.step, se.target, se.seq))
}

func (se StepEvent) String() string {
	return fmt.Sprintf("{%v %v}", se.step, se.target)
}

func (se StepEvent) Execute(node any, nextEvt chan error) {
	n, ok := node.(Stepper)
	if !ok {
		nextEvt <- fmt.Errorf("event: node %v can not perform protocol steps", se.target)
		return
	}
	nextEvt <- n.Step(se.step)
}

func (se StepEvent) Target() int {
	return se.target
}
