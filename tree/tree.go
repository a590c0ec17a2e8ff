// Package tree provides the tree structure used to organize the
// discovered state space.
package tree

import (
	"fmt"
	"strings"
)

type Tree[T any] struct {
	payload  T
	parent   *Tree[T]
	children []*Tree[T]
	depth    int
	eq       func(a, b T) bool
}

// New creates a root node holding the payload. eq decides whether two
// payloads represent the same state and is inherited by all children.
func New[T any](payload T, eq func(a, b T) bool) Tree[T] {
	return Tree[T]{
		payload:  payload,
		parent:   nil,
		children: []*Tree[T]{},
		depth:    0,
		eq:       eq,
	}
}

// Len returns the total number of nodes in the tree.
func (t *Tree[T]) Len() int {
	n := 1
	for _, child := range t.children {
		n += child.Len()
	}
	return n
}

// AddChild adds a child with the provided payload and returns it.
func (t *Tree[T]) AddChild(payload T) *Tree[T] {
	node := &Tree[T]{
		payload:  payload,
		parent:   t,
		children: []*Tree[T]{},
		depth:    t.depth + 1,
		eq:       t.eq,
	}
	t.children = append(t.children, node)
	return node
}

// GetChild returns the first child with an equal payload, or nil.
func (t *Tree[T]) GetChild(payload T) *Tree[T] {
	for _, node := range t.children {
		if t.eq(payload, node.payload) {
			return node
		}
	}
	return nil
}

// HasChild reports whether some child has an equal payload.
func (t *Tree[T]) HasChild(payload T) bool {
	return t.GetChild(payload) != nil
}

func (t *Tree[T]) String() string {
	out := strings.Builder{}
	for i := 0; i < t.depth; i++ {
		out.WriteString("-")
	}
	out.WriteString(fmt.Sprintf("%v\n", t.payload))
	for _, child := range t.children {
		out.WriteString(child.String())
	}
	return out.String()
}

func (t *Tree[T]) IsRoot() bool {
	return t.parent == nil
}

func (t *Tree[T]) IsLeafNode() bool {
	return len(t.children) == 0
}

// SearchLeafNodes reports whether search is true for some leaf node.
func (t *Tree[T]) SearchLeafNodes(search func(T) bool) bool {
	if t.IsLeafNode() {
		return search(t.payload)
	}
	for _, child := range t.children {
		if child.SearchLeafNodes(search) {
			return true
		}
	}
	return false
}

// DepthFirstSearch reports whether search is true for some node.
func (t *Tree[T]) DepthFirstSearch(search func(T) bool) bool {
	if search(t.payload) {
		return true
	}
	for _, child := range t.children {
		if child.DepthFirstSearch(search) {
			return true
		}
	}
	return false
}

func (t *Tree[T]) Payload() T {
	return t.payload
}

func (t *Tree[T]) Parent() *Tree[T] {
	return t.parent
}

func (t *Tree[T]) Depth() int {
	return t.depth
}

func (t *Tree[T]) Children() []*Tree[T] {
	return t.children
}

// Newick renders the tree in Newick notation, one line for the whole
// tree terminated by a semicolon.
func (t *Tree[T]) Newick() string {
	out := strings.Builder{}
	if len(t.children) > 0 {
		out.WriteString("(")
		for i, child := range t.children {
			if i > 0 {
				out.WriteString(",")
			}
			out.WriteString(child.Newick())
		}
		out.WriteString(")")
	}
	out.WriteString(fmt.Sprintf("%q", fmt.Sprint(t.payload)))
	if t.IsRoot() {
		out.WriteString(";")
	}
	return out.String()
}
