package eventManager

import "locksim/event"

// An EventAdder can receive events. During a simulation it is the
// run's scheduler; nodes use it to schedule their follow-up steps.
type EventAdder interface {
	AddEvent(event.Event)
}
