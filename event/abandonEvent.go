package event

import "fmt"

// AbandonEvent marks the target participant as having walked away from
// the protocol mid-cycle. The participant takes no further steps and a
// ticket it holds is never handed back, which is exactly the liveness
// hazard the protocol model leaves open.
//
// The callback is provided by the abandonment manager and performs the
// bookkeeping; the event only decides when in the interleaving the
// abandonment happens.
type AbandonEvent struct {
	target int
	f      func(int) error
}

func NewAbandonEvent(target int, f func(int) error) AbandonEvent {
	return AbandonEvent{
		target: target,
		f:      f,
	}
}

func (ae AbandonEvent) Id() EventId {
	return EventId(fmt.Sprintf("Abandon %v", ae.target))
}

func (ae AbandonEvent) String() string {
	return fmt.Sprintf("{Abandon %v}", ae.target)
}

func (ae AbandonEvent) Execute(_ any, nextEvt chan error) {
	nextEvt <- ae.f(ae.target)
}

func (ae AbandonEvent) Target() int {
	return ae.target
}
