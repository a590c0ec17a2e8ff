package ticket

import (
	"math"
	"testing"
)

var samples = []Ticket{
	Zero,
	Zero.Succ(),
	Ticket(2),
	Ticket(17),
	Ticket(math.MaxUint64 - 1),
	Ticket(math.MaxUint64),
}

func TestTotalOrderAxioms(t *testing.T) {
	for _, a := range samples {
		if !Le(a, a) {
			t.Errorf("Le is not reflexive for %v", a)
		}
		for _, b := range samples {
			// Totality: at least one direction holds
			if !Le(a, b) && !Le(b, a) {
				t.Errorf("Le is not total for %v, %v", a, b)
			}
			// Antisymmetry
			if Le(a, b) && Le(b, a) && a != b {
				t.Errorf("Le is not antisymmetric for %v, %v", a, b)
			}
			for _, c := range samples {
				// Transitivity
				if Le(a, b) && Le(b, c) && !Le(a, c) {
					t.Errorf("Le is not transitive for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestZeroIsMinimum(t *testing.T) {
	for _, a := range samples {
		if !Le(Zero, a) {
			t.Errorf("Zero should precede %v", a)
		}
	}
}

func TestSuccessor(t *testing.T) {
	for _, a := range samples {
		if a == Ticket(math.MaxUint64) {
			continue
		}
		s := a.Succ()
		if !Less(a, s) {
			t.Errorf("Successor %v should strictly follow %v", s, a)
		}
		// s is the minimal ticket strictly following a:
		// everything that does not precede a does not precede s either,
		// except a itself.
		for _, b := range samples {
			if Less(a, b) && Less(b, s) {
				t.Errorf("Found %v strictly between %v and its successor %v", b, a, s)
			}
		}
	}
}

func TestLessConsistentWithLe(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			if Less(a, b) != (Le(a, b) && a != b) {
				t.Errorf("Less and Le disagree for %v, %v", a, b)
			}
		}
	}
}

func TestSuccExhaustionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected Succ to panic when the domain is exhausted")
		}
	}()
	Ticket(math.MaxUint64).Succ()
}
