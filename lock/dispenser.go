package lock

import "locksim/ticket"

// Dispenser holds the global issuance state: the next ticket to hand out
// and the ticket currently authorized to enter the protected region.
//
// Both counters only ever advance by one successor step at a time, and
// serving never passes next. The Dispenser is mutated exclusively by the
// protocol state machine; it enforces no preconditions of its own.
type Dispenser struct {
	next    ticket.Ticket
	serving ticket.Ticket
}

// Issue hands out the next ticket and advances the issuance counter.
// The returned ticket strictly follows every previously issued ticket.
func (d *Dispenser) Issue() ticket.Ticket {
	t := d.next
	d.next = d.next.Succ()
	return t
}

// AdvanceServing admits the next ticket in line. Called only when the
// holder of the serving ticket leaves the protected region.
func (d *Dispenser) AdvanceServing() {
	d.serving = d.serving.Succ()
}

// IsCurrent reports whether t is the ticket currently authorized to
// enter the protected region. This is the sole admission test.
func (d *Dispenser) IsCurrent(t ticket.Ticket) bool {
	return t == d.serving
}

// Serving returns the ticket currently authorized to enter.
func (d *Dispenser) Serving() ticket.Ticket {
	return d.serving
}

// NextTicket returns the next ticket to be issued.
func (d *Dispenser) NextTicket() ticket.Ticket {
	return d.next
}
