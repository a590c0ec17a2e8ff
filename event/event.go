package event

// An Event is one atomically observed step of the simulated system.
// The scheduler interleaves events; each event knows how to execute
// itself on its target node.
type Event interface {
	// An id identifying the event.
	// Two events that, given the same input state, result in the same
	// output state must have the same id. Implementations should embed
	// an event-type tag to avoid collisions across implementations.
	Id() EventId

	// Execute the event on the target node.
	// The event runs on a separate goroutine and must signal on the
	// channel when the simulator can proceed to the next event.
	// Panics raised while executing are recovered by the simulator and
	// returned as errors.
	Execute(node any, nextEvt chan error)

	// The id of the node whose state the event changes.
	Target() int
}

// An EventId identifies an event within a run.
type EventId string

// EventsEquals reports whether both events have the same id, or both
// are nil.
func EventsEquals(a, b Event) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Id() == b.Id()
}
