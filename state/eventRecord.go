package state

import (
	"fmt"

	"locksim/event"
)

// A record of an executed event: the id and the string representation.
// Recorded instead of the event itself so the collected state space
// holds no references into the run.
type EventRecord struct {
	Id   event.EventId
	Repr string
}

func (er EventRecord) String() string {
	return er.Repr
}

// CreateEventRecord records the event, or a zero record for the
// initial state where no event has executed yet.
func CreateEventRecord(evt event.Event) EventRecord {
	if evt == nil {
		return EventRecord{}
	}
	return EventRecord{
		Id:   evt.Id(),
		Repr: fmt.Sprint(evt),
	}
}
