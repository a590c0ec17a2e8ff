package state

import (
	"fmt"
	"io"

	"locksim/tree"
)

// StateSpace is the discovered state space of the system under test.
// The root is the initial state; a path from the root to a leaf is one
// explored run.
type StateSpace[S any] interface {
	Payload() GlobalState[S]
	Children() []StateSpace[S]
	IsTerminal() bool

	Export(io.Writer)
}

// TreeStateSpace adapts the tree collected by the state manager to the
// StateSpace interface.
type TreeStateSpace[S any] struct {
	*tree.Tree[GlobalState[S]]
}

func (tss TreeStateSpace[S]) Children() []StateSpace[S] {
	out := []StateSpace[S]{}
	for _, child := range tss.Tree.Children() {
		out = append(out, TreeStateSpace[S]{
			Tree: child,
		})
	}
	return out
}

func (tss TreeStateSpace[S]) IsTerminal() bool {
	return tss.IsLeafNode()
}

func (tss TreeStateSpace[S]) Export(w io.Writer) {
	fmt.Fprint(w, tss.Newick())
}
