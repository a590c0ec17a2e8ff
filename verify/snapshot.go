package verify

import (
	"fmt"

	"locksim/lock"
	"locksim/ticket"
)

// Snapshot is the local state of a contender as collected by the state
// manager: its phase and held ticket, plus the dispenser counters at
// the same moment. The counters are shared state; recording them in
// every snapshot lets the predicates relate a contender's ticket to the
// serving ticket without a side channel.
type Snapshot struct {
	Phase   lock.Phase
	Ticket  ticket.Ticket
	Serving ticket.Ticket
	Next    ticket.Ticket
}

// Capture reads the state of the contender from the protocol instance.
func Capture(c *Contender) Snapshot {
	return Snapshot{
		Phase:   c.lk.PhaseOf(c.id),
		Ticket:  c.lk.Held(c.id),
		Serving: c.lk.Serving(),
		Next:    c.lk.NextTicket(),
	}
}

func SnapshotsEqual(a, b Snapshot) bool {
	return a == b
}

func (s Snapshot) String() string {
	return fmt.Sprintf("{%v t%v s%v n%v}", s.Phase, s.Ticket, s.Serving, s.Next)
}
