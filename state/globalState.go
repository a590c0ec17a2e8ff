package state

import "fmt"

// The global state of the system at one step of a run.
type GlobalState[S any] struct {
	// The local states of the participants, keyed by participant id.
	LocalStates map[int]S

	// The activity status of the participants.
	//
	// True means the participant is still taking protocol steps. False
	// means it has abandoned the protocol mid-cycle and will never
	// perform another action. Every participant is represented.
	Active map[int]bool

	// A record of the event that caused the transition into this state.
	Evt EventRecord
}

func (gs GlobalState[S]) String() string {
	abandoned := []int{}
	for id, active := range gs.Active {
		if !active {
			abandoned = append(abandoned, id)
		}
	}
	return fmt.Sprintf("Evt: %v\t States: %v\t Abandoned: %v\t", gs.Evt, gs.LocalStates, abandoned)
}
