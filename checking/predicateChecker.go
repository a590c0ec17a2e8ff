package checking

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"locksim/event"
	"locksim/state"
)

// A Predicate is a property evaluated on a state. It returns true if
// the property holds for the state and false otherwise.
type Predicate[S any] func(s State[S]) bool

// PredicateChecker verifies a battery of predicates against every state
// of the discovered state space.
type PredicateChecker[S any] struct {
	predicates []Predicate[S]
}

func NewPredicateChecker[S any](predicates ...Predicate[S]) *PredicateChecker[S] {
	return &PredicateChecker[S]{
		predicates: predicates,
	}
}

// Check searches the state space depth first and stops at the first
// state breaking a predicate.
func (pc *PredicateChecker[S]) Check(root state.StateSpace[S]) CheckerResponse {
	if resp := pc.checkNode(root, []state.GlobalState[S]{}); resp != nil {
		return resp
	}
	return &predicateCheckerResponse[S]{
		Result:   true,
		Sequence: nil,
		Test:     -1,
	}
}

func (pc *PredicateChecker[S]) checkNode(node state.StateSpace[S], sequence []state.GlobalState[S]) *predicateCheckerResponse[S] {
	sequence = append(sequence, node.Payload())
	if ok, index := pc.checkState(node.Payload(), node.IsTerminal(), sequence); !ok {
		return &predicateCheckerResponse[S]{
			Result:   false,
			Sequence: sequence,
			Test:     index,
		}
	}

	for _, child := range node.Children() {
		if resp := pc.checkNode(child, sequence); resp != nil {
			return resp
		}
	}
	return nil
}

func (pc *PredicateChecker[S]) checkState(gs state.GlobalState[S], terminal bool, sequence []state.GlobalState[S]) (bool, int) {
	for index, pred := range pc.predicates {
		if !pred(State[S]{
			LocalStates: gs.LocalStates,
			Active:      gs.Active,
			IsTerminal:  terminal,
			Sequence:    sequence,
		}) {
			return false, index
		}
	}
	return true, -1
}

type predicateCheckerResponse[S any] struct {
	Result   bool                   // True if every predicate holds
	Sequence []state.GlobalState[S] // The sequence of states leading to the violation, nil if Result is true
	Test     int                    // The index of the broken predicate, -1 if Result is true
}

func (pcr predicateCheckerResponse[S]) Response() (bool, string) {
	if pcr.Result {
		return pcr.Result, "All predicates hold"
	}
	var buffer bytes.Buffer
	wrt := tabwriter.NewWriter(&buffer, 4, 4, 0, ' ', 0)
	out := fmt.Sprintf("Predicate broken. Predicate: %v. Sequence: \n", pcr.Test)
	for _, element := range pcr.Sequence {
		fmt.Fprintf(wrt, "-> %v \n", element)
	}
	wrt.Flush()
	out += buffer.String()
	return pcr.Result, out
}

func (pcr predicateCheckerResponse[S]) Export() []event.EventId {
	evtSequence := []event.EventId{}
	if pcr.Sequence == nil {
		return evtSequence
	}
	// The first entry is the initial state, which no event caused.
	for _, gs := range pcr.Sequence[1:] {
		evtSequence = append(evtSequence, gs.Evt.Id)
	}
	return evtSequence
}
