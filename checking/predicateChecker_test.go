package checking

import (
	"testing"

	"golang.org/x/exp/slices"

	"locksim/event"
	"locksim/state"
	"locksim/tree"
)

// Builds a small state space by hand:
//
//	0 -> 1 -> 2
//	  -> 3 (violating)
func buildStateSpace() state.StateSpace[int] {
	gs := func(id event.EventId, val int) state.GlobalState[int] {
		return state.GlobalState[int]{
			LocalStates: map[int]int{0: val},
			Active:      map[int]bool{0: true},
			Evt:         state.EventRecord{Id: id, Repr: string(id)},
		}
	}
	root := tree.New(gs("", 0), func(a, b state.GlobalState[int]) bool { return a.Evt.Id == b.Evt.Id })
	mid := root.AddChild(gs("1", 1))
	mid.AddChild(gs("2", 2))
	root.AddChild(gs("3", 13))
	return state.TreeStateSpace[int]{Tree: &root}
}

func TestPredicateCheckerHolds(t *testing.T) {
	checker := NewPredicateChecker(
		func(s State[int]) bool { return s.LocalStates[0] < 100 },
	)
	resp := checker.Check(buildStateSpace())
	ok, desc := resp.Response()
	if !ok {
		t.Errorf("Expected every predicate to hold. Got: %v", desc)
	}
	if len(resp.Export()) != 0 {
		t.Errorf("Expected an empty export when no predicate is broken. Got: %v", resp.Export())
	}
}

func TestPredicateCheckerFindsViolation(t *testing.T) {
	checker := NewPredicateChecker(
		func(s State[int]) bool { return s.LocalStates[0] < 10 },
	)
	resp := checker.Check(buildStateSpace())
	ok, _ := resp.Response()
	if ok {
		t.Fatalf("Expected the checker to find the violating state")
	}
	exported := resp.Export()
	if !slices.Equal(exported, []event.EventId{"3"}) {
		t.Errorf("Expected the export to name the violating run. Got: %v", exported)
	}
}

func TestPredicateCheckerSequence(t *testing.T) {
	// The sequence handed to a predicate ends with the state under
	// check and starts at the initial state.
	var depths []int
	checker := NewPredicateChecker(
		func(s State[int]) bool {
			depths = append(depths, len(s.Sequence))
			return s.LocalStates[0] != s.Sequence[0].LocalStates[0] || len(s.Sequence) == 1
		},
	)
	resp := checker.Check(buildStateSpace())
	if ok, desc := resp.Response(); !ok {
		t.Fatalf("Expected every predicate to hold. Got: %v", desc)
	}
	if len(depths) != 4 {
		t.Errorf("Expected the checker to visit 4 states. Got: %v", len(depths))
	}
}
