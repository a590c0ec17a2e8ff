package stateManager

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/exp/maps"

	"locksim/state"
	"locksim/tree"
)

// TreeStateManager organizes the discovered state space as an in-memory
// tree with the initial state as the root. A path from the root to a
// leaf is one explored run; runs sharing a prefix share the
// corresponding nodes.
type TreeStateManager[T, S any] struct {
	sync.RWMutex
	stateRoot *tree.Tree[state.GlobalState[S]]

	getLocalState func(*T) S
	stateEq       func(S, S) bool
}

// NewTreeStateManager creates a TreeStateManager configured with a
// function collecting the local state of a node and a function checking
// equality of two local states.
func NewTreeStateManager[T, S any](getLocalState func(*T) S, stateEq func(S, S) bool) *TreeStateManager[T, S] {
	return &TreeStateManager[T, S]{
		getLocalState: getLocalState,
		stateEq:       stateEq,
	}
}

// AddRun merges the run into the discovered state space.
//
// Safe to call from multiple goroutines.
func (sm *TreeStateManager[T, S]) AddRun(run []state.GlobalState[S]) {
	sm.Lock()
	defer sm.Unlock()

	if len(run) < 1 {
		return
	}

	currentTree := sm.stateRoot
	if currentTree == nil {
		currentTree = sm.initStateTree(run[0])
		sm.stateRoot = currentTree
	}
	for _, st := range run[1:] {
		// Follow existing nodes where the run retraces a known prefix,
		// add new nodes where it diverges.
		if nextState := currentTree.GetChild(st); nextState != nil {
			currentTree = nextState
			continue
		}
		currentTree = currentTree.AddChild(st)
	}
}

func (sm *TreeStateManager[T, S]) initStateTree(s state.GlobalState[S]) *tree.Tree[state.GlobalState[S]] {
	cmp := func(a, b state.GlobalState[S]) bool {
		if a.Evt.Id != b.Evt.Id {
			return false
		}
		if !maps.EqualFunc(a.LocalStates, b.LocalStates, sm.stateEq) {
			return false
		}
		return maps.Equal(a.Active, b.Active)
	}
	root := tree.New(s, cmp)
	return &root
}

func (sm *TreeStateManager[T, S]) GetRunStateManager() *RunStateManager[T, S] {
	return NewRunStateManager[T, S](sm, sm.getLocalState)
}

// Export writes the Newick representation of the state tree.
func (sm *TreeStateManager[T, S]) Export(wrt io.Writer) {
	sm.RLock()
	defer sm.RUnlock()
	fmt.Fprint(wrt, sm.stateRoot.Newick())
}

func (sm *TreeStateManager[T, S]) State() state.StateSpace[S] {
	sm.RLock()
	defer sm.RUnlock()
	return state.TreeStateSpace[S]{Tree: sm.stateRoot}
}

func (sm *TreeStateManager[T, S]) Reset() {
	sm.Lock()
	defer sm.Unlock()
	sm.stateRoot = nil
}
