package tree

import "testing"

func TestTreeAddChild(t *testing.T) {
	tree := New("root", func(a, b string) bool { return a == b })
	tree.AddChild("a")
	child := tree.AddChild("b")
	child.AddChild("b-1")

	if !tree.IsRoot() {
		t.Fatalf("Expected the root node to report IsRoot")
	}
	if tree.Len() != 4 {
		t.Fatalf("Added four elements to the tree. Has length: %v", tree.Len())
	}
	if len(tree.Children()) != 2 {
		t.Fatalf("Added two children to the root. Got: %v", len(tree.Children()))
	}
	if child.IsRoot() {
		t.Fatalf("A child node should not report IsRoot")
	}
	if child.Depth() != 1 {
		t.Fatalf("Expected the child to have depth 1. Got: %v", child.Depth())
	}

	if !tree.DepthFirstSearch(func(s string) bool { return s == "b-1" }) {
		t.Fatalf("Expected to find \"b-1\" with a depth first search")
	}
	if tree.SearchLeafNodes(func(s string) bool { return s == "b" }) {
		t.Fatalf("\"b\" is an interior node, not a leaf")
	}
	if !tree.SearchLeafNodes(func(s string) bool { return s == "a" }) {
		t.Fatalf("Expected \"a\" to be a leaf node")
	}
}

func TestTreeGetChild(t *testing.T) {
	tree := New(0, func(a, b int) bool { return a == b })
	tree.AddChild(1)
	tree.AddChild(2)

	if tree.GetChild(3) != nil {
		t.Errorf("Did not expect to find a child with payload 3")
	}
	child := tree.GetChild(2)
	if child == nil {
		t.Fatalf("Expected to find a child with payload 2")
	}
	if child.Payload() != 2 {
		t.Errorf("Expected payload 2. Got: %v", child.Payload())
	}
	if !tree.HasChild(1) {
		t.Errorf("Expected to find a child with payload 1")
	}
	if child.Parent() == nil || child.Parent().Payload() != 0 {
		t.Errorf("Expected the parent of the child to be the root")
	}
}

func TestTreeNewick(t *testing.T) {
	tree := New("r", func(a, b string) bool { return a == b })
	a := tree.AddChild("a")
	a.AddChild("a-1")
	tree.AddChild("b")

	expected := `(("a-1")"a","b")"r";`
	if got := tree.Newick(); got != expected {
		t.Errorf("Unexpected Newick representation. \nGot: %v\nExpected: %v", got, expected)
	}
}
