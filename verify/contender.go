// Package verify drives the ticket lock protocol through simulated
// interleavings and defines the properties that must hold in every
// reachable state.
//
// The contenders in this package take the role the real goroutines of a
// lock.Mutex would play: each protocol action becomes a discrete event
// the scheduler can reorder freely. A failed admission check parks the
// contender, and the releaser wakes exactly the next contender in line,
// so every run consists of finitely many events and the interleaving
// space can be explored exhaustively.
package verify

import (
	"fmt"

	"locksim/event"
	"locksim/eventManager"
	"locksim/lock"
	"locksim/ticket"
)

// A Contender is one participant contending for the protected region.
// It performs its protocol actions as steps scheduled through the
// event adder, one action per event.
type Contender struct {
	id  int
	lk  *lock.Protocol
	wl  *waitlist
	add eventManager.EventAdder

	// Sequence number of the next scheduled step. Makes event ids
	// unique within a run and stable across runs sharing a prefix.
	seq int

	held      ticket.Ticket
	backlog   int
	abandoned bool
}

// NewGroup creates n contenders with ids 0 through n-1, sharing one
// protocol instance. The group belongs to a single run.
func NewGroup(sp eventManager.SimulationParameters, n int) map[int]*Contender {
	lk := lock.New()
	wl := newWaitlist()
	nodes := map[int]*Contender{}
	for id := 0; id < n; id++ {
		nodes[id] = &Contender{
			id:  id,
			lk:  lk,
			wl:  wl,
			add: sp.EventAdder,
		}
	}
	return nodes
}

// Step performs one protocol action. A contender that has abandoned the
// protocol ignores all further steps.
func (c *Contender) Step(s event.Step) error {
	if c.abandoned {
		return nil
	}
	switch s {
	case event.StepAcquire:
		return c.acquire()
	case event.StepPoll:
		return c.poll()
	case event.StepRelease:
		return c.release()
	}
	return fmt.Errorf("verify: contender %v received unknown step %v", c.id, s)
}

// Abandon makes the contender walk away from the protocol: it takes no
// further steps and never hands back a ticket it holds.
func (c *Contender) Abandon() {
	c.abandoned = true
}

func (c *Contender) acquire() error {
	if c.lk.PhaseOf(c.id) != lock.Idle {
		// A cycle is already in flight. Queue the intent; the release at
		// the end of the current cycle starts the next one.
		c.backlog++
		return nil
	}
	t, err := c.lk.Request(c.id)
	if err != nil {
		return err
	}
	c.held = t
	c.schedule(event.StepPoll)
	return nil
}

func (c *Contender) poll() error {
	if c.held == c.lk.Serving() {
		if err := c.lk.Enter(c.id, c.held); err != nil {
			return err
		}
		c.schedule(event.StepRelease)
		return nil
	}
	if err := c.lk.Wait(c.id, c.held); err != nil {
		return err
	}
	// Park until the release preceding our turn wakes us. Polling again
	// before that can not succeed, so no new step is scheduled.
	c.wl.park(c.held, c)
	return nil
}

func (c *Contender) release() error {
	if err := c.lk.Exit(c.id); err != nil {
		return err
	}
	c.held = ticket.Zero
	// Wake exactly the contender whose ticket is now being served, if it
	// is parked.
	if w := c.wl.take(c.lk.Serving()); w != nil {
		w.schedule(event.StepPoll)
	}
	if c.backlog > 0 {
		c.backlog--
		c.schedule(event.StepAcquire)
	}
	return nil
}

func (c *Contender) schedule(s event.Step) {
	c.add.AddEvent(event.NewStepEvent(s, c.id, c.seq))
	c.seq++
}

// waitlist tracks which contender is parked on which ticket, so a
// releaser can wake exactly the next contender in line.
//
// One waitlist is shared by the contenders of a run. The events of a
// run execute one at a time, so no locking is needed.
type waitlist struct {
	parked map[ticket.Ticket]*Contender
}

func newWaitlist() *waitlist {
	return &waitlist{
		parked: make(map[ticket.Ticket]*Contender),
	}
}

func (wl *waitlist) park(t ticket.Ticket, c *Contender) {
	wl.parked[t] = c
}

func (wl *waitlist) take(t ticket.Ticket) *Contender {
	c := wl.parked[t]
	delete(wl.parked, t)
	return c
}
