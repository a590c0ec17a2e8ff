// Package abandonment decides which participants walk away from the
// protocol during a simulation, and lets the scheduler decide when.
//
// A participant that abandons takes no further steps. A ticket it holds
// at that point is never handed back, so everybody queued behind it is
// stuck. The safety properties of the protocol are unaffected;
// quiescence is not.
package abandonment

import (
	"fmt"

	"locksim/event"
	"locksim/eventManager"
)

// Manager configures which participants abandon the protocol. It hands
// out one RunManager per run so that runs do not share bookkeeping.
type Manager[T any] interface {
	GetRunManager(ea eventManager.EventAdder) RunManager[T]
}

// RunManager tracks abandonment during a single run.
type RunManager[T any] interface {
	// Init receives the participants of the run before any event
	// executes.
	Init(nodes map[int]*T)

	// Active returns the activity status of the participants. False
	// means the participant has abandoned the protocol.
	Active() map[int]bool
}

// New returns a manager that makes the listed participants abandon the
// protocol at some point decided by the scheduler. abandonFunc performs
// the participant side of the bookkeeping, e.g. flagging the node so
// its steps become no-ops.
func New[T any](abandonFunc func(*T), participants []int) Manager[T] {
	return &manager[T]{
		abandonFunc:  abandonFunc,
		participants: participants,
	}
}

// None returns a manager under which every participant stays active for
// the whole run.
func None[T any]() Manager[T] {
	return &manager[T]{
		abandonFunc:  func(*T) {},
		participants: []int{},
	}
}

type manager[T any] struct {
	abandonFunc  func(*T)
	participants []int
}

func (m *manager[T]) GetRunManager(ea eventManager.EventAdder) RunManager[T] {
	return &runManager[T]{
		abandonFunc:  m.abandonFunc,
		participants: m.participants,
		ea:           ea,
	}
}

type runManager[T any] struct {
	abandonFunc  func(*T)
	participants []int
	ea           eventManager.EventAdder

	nodes  map[int]*T
	active map[int]bool
}

// Init marks all participants active and schedules one abandon event
// per configured participant. The scheduler interleaves those events
// with the protocol steps like any other event.
func (rm *runManager[T]) Init(nodes map[int]*T) {
	rm.nodes = nodes
	rm.active = map[int]bool{}
	for id := range nodes {
		rm.active[id] = true
	}
	for _, id := range rm.participants {
		if _, ok := nodes[id]; !ok {
			continue
		}
		rm.ea.AddEvent(event.NewAbandonEvent(id, rm.abandon))
	}
}

func (rm *runManager[T]) Active() map[int]bool {
	return rm.active
}

func (rm *runManager[T]) abandon(id int) error {
	node, ok := rm.nodes[id]
	if !ok {
		return fmt.Errorf("abandonment: participant %v is not part of the run", id)
	}
	if !rm.active[id] {
		return fmt.Errorf("abandonment: participant %v has already abandoned", id)
	}
	rm.active[id] = false
	rm.abandonFunc(node)
	return nil
}
