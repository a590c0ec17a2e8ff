package verify

import (
	"locksim/checking"
	"locksim/lock"
	"locksim/ticket"
)

// The safety properties of the ticket lock. Each predicate is evaluated
// on every discovered state; together they form an inductive argument
// for mutual exclusion.

// MutualExclusion: at most one contender is in the protected region.
func MutualExclusion(s checking.State[Snapshot]) bool {
	inside := 0
	for _, snap := range s.LocalStates {
		if snap.Phase == lock.Critical {
			inside++
		}
	}
	return inside <= 1
}

// AdmissionCorrectness: a contender is in the protected region only
// while its ticket is the serving ticket.
func AdmissionCorrectness(s checking.State[Snapshot]) bool {
	return checking.ForAllParticipants(func(snap Snapshot) bool {
		return snap.Phase != lock.Critical || snap.Ticket == snap.Serving
	}, s, false)
}

// PhaseConsistency: an idle contender holds the zero sentinel, and a
// waiting contender holds a ticket that has been issued but not yet
// served past.
func PhaseConsistency(s checking.State[Snapshot]) bool {
	return checking.ForAllParticipants(func(snap Snapshot) bool {
		switch snap.Phase {
		case lock.Idle:
			return snap.Ticket == ticket.Zero
		case lock.Awaiting:
			return ticket.Le(snap.Serving, snap.Ticket) && ticket.Less(snap.Ticket, snap.Next)
		}
		return true
	}, s, false)
}

// UniqueTickets: no two contenders hold the same ticket at the same
// time. Idle contenders hold the shared zero sentinel and are exempt.
func UniqueTickets(s checking.State[Snapshot]) bool {
	seen := map[ticket.Ticket]bool{}
	for _, snap := range s.LocalStates {
		if snap.Phase == lock.Idle {
			continue
		}
		if seen[snap.Ticket] {
			return false
		}
		seen[snap.Ticket] = true
	}
	return true
}

// ServingBound: the serving counter never passes the issuance counter.
func ServingBound(s checking.State[Snapshot]) bool {
	return ticket.Le(dispenserView(s).Serving, dispenserView(s).Next)
}

// IssuanceBound: every held ticket has actually been issued.
func IssuanceBound(s checking.State[Snapshot]) bool {
	return checking.ForAllParticipants(func(snap Snapshot) bool {
		return snap.Phase == lock.Idle || ticket.Less(snap.Ticket, snap.Next)
	}, s, false)
}

// Monotonicity: the dispenser counters never decrease from one state to
// the next. The checker evaluates every state along a run, so checking
// the last transition of the sequence covers all of them.
func Monotonicity(s checking.State[Snapshot]) bool {
	if len(s.Sequence) < 2 {
		return true
	}
	prev := dispenserViewOf(s.Sequence[len(s.Sequence)-2].LocalStates)
	cur := dispenserViewOf(s.Sequence[len(s.Sequence)-1].LocalStates)
	return ticket.Le(prev.Serving, cur.Serving) && ticket.Le(prev.Next, cur.Next)
}

// Quiescence holds if every fully explored run ends with all contenders
// idle and the serving counter caught up with issuance. Runs where a
// contender abandons the protocol mid-cycle violate it: the serving
// counter can never pass the abandoned ticket.
func Quiescence() checking.Predicate[Snapshot] {
	return checking.Eventually(func(s checking.State[Snapshot]) bool {
		return checking.ForAllParticipants(func(snap Snapshot) bool {
			return snap.Phase == lock.Idle && snap.Serving == snap.Next
		}, s, false)
	})
}

// Invariants returns the full safety battery. Quiescence is not
// included since it only holds for scenarios where every contender
// completes its cycles.
func Invariants() []checking.Predicate[Snapshot] {
	return []checking.Predicate[Snapshot]{
		MutualExclusion,
		AdmissionCorrectness,
		PhaseConsistency,
		UniqueTickets,
		ServingBound,
		IssuanceBound,
		Monotonicity,
	}
}

// Every snapshot of a state carries the same dispenser counters, so any
// one of them is the global view.
func dispenserView(s checking.State[Snapshot]) Snapshot {
	return dispenserViewOf(s.LocalStates)
}

func dispenserViewOf(locals map[int]Snapshot) Snapshot {
	for _, snap := range locals {
		return snap
	}
	return Snapshot{}
}
