// Package lock implements a ticket-based mutual-exclusion protocol:
// contenders draw sequentially increasing tickets and are admitted to
// the protected region strictly in ticket order.
//
// The package provides the protocol twice. Protocol is the bare
// four-action state machine with an externally driven schedule, meant
// for a driver that decides when each participant takes a step (a model
// checker, or a caller implementing its own waiting). Mutex wraps the
// same semantics into a conventional blocking acquire/release API for
// production use.
package lock

import (
	"errors"
	"fmt"
	"sync"

	"locksim/ticket"
)

// ErrContractViolation reports that an action was attempted while its
// precondition did not hold. It is always a caller error, never a
// transient condition, so it is not retried. Check with errors.Is.
var ErrContractViolation = errors.New("lock: protocol contract violation")

// Protocol is the four-action ticket lock state machine.
//
// All state lives behind a single mutex so that every action is one
// indivisible step: no partial effect of an action can ever be
// observed, matching the atomically observed transitions of the
// protocol. None of the actions block; waiting is the driver's concern.
type Protocol struct {
	mu  sync.Mutex
	d   Dispenser
	reg registry
}

// New returns a protocol instance in the initial state: both dispenser
// counters at zero, every participant idle and holding the zero
// sentinel. The instance is long lived shared state and must be passed
// explicitly to whoever drives it.
func New() *Protocol {
	return &Protocol{
		reg: newRegistry(),
	}
}

// Request issues a fresh ticket to p and moves it to Awaiting.
//
// Precondition: p is Idle. The returned ticket strictly follows every
// previously issued ticket.
func (l *Protocol) Request(p int) (ticket.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ph := l.reg.phaseOf(p); ph != Idle {
		return ticket.Zero, fmt.Errorf("request by %v while %v: %w", p, ph, ErrContractViolation)
	}
	t := l.d.Issue()
	l.reg.set(p, Awaiting, t)
	return t, nil
}

// Wait is the not-yet-admitted check. It has no effect and exists so a
// driver can observe "still waiting" as a discrete step.
//
// Precondition: p is Awaiting, holds k, and k is not the serving
// ticket.
func (l *Protocol) Wait(p int, k ticket.Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ph := l.reg.phaseOf(p); ph != Awaiting {
		return fmt.Errorf("wait by %v while %v: %w", p, ph, ErrContractViolation)
	}
	if held := l.reg.heldBy(p); held != k {
		return fmt.Errorf("wait by %v with ticket %v but holding %v: %w", p, k, held, ErrContractViolation)
	}
	if l.d.IsCurrent(k) {
		return fmt.Errorf("wait by %v on served ticket %v: %w", p, k, ErrContractViolation)
	}
	return nil
}

// Enter admits p to the protected region. This is the sole admission
// point: it succeeds exactly when the held ticket is the serving one.
//
// Precondition: p is Awaiting and holds k, and k is the serving ticket.
func (l *Protocol) Enter(p int, k ticket.Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ph := l.reg.phaseOf(p); ph != Awaiting {
		return fmt.Errorf("enter by %v while %v: %w", p, ph, ErrContractViolation)
	}
	if held := l.reg.heldBy(p); held != k {
		return fmt.Errorf("enter by %v with ticket %v but holding %v: %w", p, k, held, ErrContractViolation)
	}
	if !l.d.IsCurrent(k) {
		return fmt.Errorf("enter by %v with ticket %v while serving %v: %w", p, k, l.d.Serving(), ErrContractViolation)
	}
	l.reg.set(p, Critical, k)
	return nil
}

// Exit releases the protected region: the serving counter advances and
// p returns to Idle, its ticket reverting to the zero sentinel.
//
// Precondition: p is Critical.
func (l *Protocol) Exit(p int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ph := l.reg.phaseOf(p); ph != Critical {
		return fmt.Errorf("exit by %v while %v: %w", p, ph, ErrContractViolation)
	}
	l.d.AdvanceServing()
	l.reg.set(p, Idle, ticket.Zero)
	return nil
}

// Serving returns the ticket currently authorized to enter.
func (l *Protocol) Serving() ticket.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.Serving()
}

// NextTicket returns the next ticket the dispenser will issue.
func (l *Protocol) NextTicket() ticket.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.NextTicket()
}

// PhaseOf returns the current lifecycle phase of p.
func (l *Protocol) PhaseOf(p int) Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.phaseOf(p)
}

// Held returns the ticket currently held by p, or the zero sentinel if
// p is idle.
func (l *Protocol) Held(p int) ticket.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.heldBy(p)
}
