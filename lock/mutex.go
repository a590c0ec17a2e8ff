package lock

import (
	"sync"

	"go.uber.org/atomic"

	"locksim/ticket"
)

// Mutex is a blocking, first-come-first-served lock over the ticket
// protocol. Acquire draws a ticket and parks the caller until that
// ticket is served; Release admits the next ticket in line.
//
// Waiters park on a per-ticket channel and the releaser wakes exactly
// the next ticket, so no waiter spins and no herd is woken.
//
// Invariants:
//   - serving is the ticket currently allowed inside
//   - every ticket drawn from next is eventually equal to serving,
//     in draw order
//   - waiters holds at most one entry per ticket, only for tickets
//     strictly after serving
type Mutex struct {
	next atomic.Uint64

	mu      sync.Mutex
	serving ticket.Ticket
	waiters map[ticket.Ticket]chan struct{}
}

// Handle is an opaque ticket handle returned by Acquire. Only the
// handle can release, so a caller can never present another
// contender's ticket: the mismatched-ticket contract violations of the
// bare protocol are unrepresentable here.
type Handle struct {
	m *Mutex
	t ticket.Ticket
}

func NewMutex() *Mutex {
	return &Mutex{
		waiters: make(map[ticket.Ticket]chan struct{}),
	}
}

// Acquire draws the next ticket and blocks until it is served. The
// full request -> wait -> enter cycle of the protocol happens inside.
func (m *Mutex) Acquire() *Handle {
	t := ticket.Ticket(m.next.Add(1) - 1)

	m.mu.Lock()
	if t == m.serving {
		m.mu.Unlock()
		return &Handle{m: m, t: t}
	}

	ch := make(chan struct{})
	m.waiters[t] = ch
	m.mu.Unlock()

	// Park on our own ticket only. After the wake it is our turn by
	// construction.
	<-ch
	return &Handle{m: m, t: t}
}

// Ticket returns the queue position the handle was admitted under.
func (h *Handle) Ticket() ticket.Ticket {
	return h.t
}

// Release leaves the protected region and admits the next ticket.
// Releasing a handle that is not currently served (including releasing
// twice) is a contract violation and panics.
func (h *Handle) Release() {
	m := h.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if h.t != m.serving {
		panic("lock: release of a handle that is not being served")
	}

	m.serving = m.serving.Succ()
	if ch, ok := m.waiters[m.serving]; ok {
		delete(m.waiters, m.serving)
		close(ch)
	}
}
