package scheduler

import (
	"math/rand"
	"sync"

	"locksim/event"
)

// Random is a random-walk scheduler: each step it picks uniformly among
// the currently pending events.
//
// It has no designated stop point and schedules runs until the
// simulator's maxRuns bound is reached. It guarantees neither full
// coverage nor distinct runs, but tends to spread over the interleaving
// space more evenly than a depth-first search cut off at the same
// budget.
type Random struct {
	rand *rand.Rand
}

// NewRandom creates a Random scheduler. The seed is used to derive the
// seeds of the run schedulers, so a simulation is reproducible from it.
func NewRandom(seed int64) *Random {
	return &Random{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) GetRunScheduler() RunScheduler {
	return newRandomRun(r.rand.Int63())
}

func (r *Random) Reset() {
}

type randomRun struct {
	sync.Mutex

	pendingEvents []event.Event

	rand *rand.Rand
}

func newRandomRun(seed int64) *randomRun {
	return &randomRun{
		pendingEvents: make([]event.Event, 0),

		rand: rand.New(rand.NewSource(seed)),
	}
}

func (rs *randomRun) GetEvent() (event.Event, error) {
	rs.Lock()
	defer rs.Unlock()

	if len(rs.pendingEvents) == 0 {
		return nil, RunEndedError
	}

	index := rs.rand.Intn(len(rs.pendingEvents))
	evt := rs.pendingEvents[index]

	// Swap-remove. The order of pendingEvents does not matter since the
	// next pick is uniform anyway.
	rs.pendingEvents[index] = rs.pendingEvents[len(rs.pendingEvents)-1]
	rs.pendingEvents = rs.pendingEvents[:len(rs.pendingEvents)-1]

	return evt, nil
}

func (rs *randomRun) AddEvent(evt event.Event) {
	rs.Lock()
	defer rs.Unlock()
	rs.pendingEvents = append(rs.pendingEvents, evt)
}

func (rs *randomRun) StartRun() error {
	rs.Lock()
	defer rs.Unlock()
	rs.pendingEvents = make([]event.Event, 0)
	return nil
}

func (rs *randomRun) EndRun() {
}
