package lock

import "locksim/ticket"

// Phase is the lifecycle phase of a participant.
// A participant is in exactly one phase at any time and cycles
// Idle -> Awaiting -> Critical -> Idle.
type Phase uint8

const (
	Idle Phase = iota
	Awaiting
	Critical
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Awaiting:
		return "Awaiting"
	case Critical:
		return "Critical"
	}
	return "Unknown"
}

// registry tracks the phase and the single held ticket of each
// participant. Participants not present in the maps are Idle and hold
// the zero sentinel, which matches the initial state.
//
// The registry is a plain field store; every precondition is the state
// machine's concern.
type registry struct {
	phase map[int]Phase
	held  map[int]ticket.Ticket
}

func newRegistry() registry {
	return registry{
		phase: make(map[int]Phase),
		held:  make(map[int]ticket.Ticket),
	}
}

func (r registry) phaseOf(p int) Phase {
	return r.phase[p]
}

func (r registry) heldBy(p int) ticket.Ticket {
	return r.held[p]
}

func (r registry) set(p int, ph Phase, t ticket.Ticket) {
	r.phase[p] = ph
	r.held[p] = t
}
