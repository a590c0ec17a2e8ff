// Package ticket defines the ordered value domain that decides admission
// order into the protected region.
//
// The domain is a total order with a distinguished minimum and a
// deterministic immediate successor. The axioms are what the rest of the
// protocol relies on, so they are kept isolated here and tested on their
// own before the protocol composes them. A monotone unsigned counter
// satisfies the contract and is what this implementation uses.
package ticket

import (
	"math"
	"strconv"
)

// A Ticket is an opaque position in the admission order.
//
// The zero value is the distinguished minimum. It doubles as the
// "holds no ticket" sentinel for idle participants.
type Ticket uint64

// Zero precedes every other ticket.
const Zero Ticket = 0

// Less reports whether a strictly precedes b.
func Less(a, b Ticket) bool {
	return a < b
}

// Le reports whether a precedes or equals b.
func Le(a, b Ticket) bool {
	return a <= b
}

// Succ returns the immediate successor of t: the unique minimal ticket
// strictly following t.
//
// The domain is practically unbounded. Exhausting it is a configuration
// error and not a condition to recover from, so Succ panics rather than
// silently wrapping around.
func (t Ticket) Succ() Ticket {
	if t == math.MaxUint64 {
		panic("ticket: domain exhausted")
	}
	return t + 1
}

func (t Ticket) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
