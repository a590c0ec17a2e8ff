package lock

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/slices"

	"locksim/ticket"
)

func TestMutexSequential(t *testing.T) {
	m := NewMutex()
	for i := 0; i < 3; i++ {
		h := m.Acquire()
		if h.Ticket() != ticket.Ticket(i) {
			t.Errorf("Expected ticket %v. Got: %v", i, h.Ticket())
		}
		h.Release()
	}
}

func TestMutexServesInDrawOrder(t *testing.T) {
	m := NewMutex()

	var (
		mu     sync.Mutex
		served []ticket.Ticket
		wg     sync.WaitGroup
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := m.Acquire()
			mu.Lock()
			served = append(served, h.Ticket())
			mu.Unlock()
			h.Release()
		}()
	}
	wg.Wait()

	if len(served) != 100 {
		t.Fatalf("Expected 100 acquisitions. Got: %v", len(served))
	}
	if !slices.IsSortedFunc(served, func(a, b ticket.Ticket) bool { return ticket.Less(a, b) }) {
		t.Errorf("Tickets were not served in draw order: %v", served)
	}
}

func TestMutexExcludes(t *testing.T) {
	m := NewMutex()

	var inside, maxInside int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := m.Acquire()
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			h.Release()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("Expected at most one holder at a time. Got: %v", maxInside)
	}
}

func TestMutexBlocksUntilServed(t *testing.T) {
	m := NewMutex()
	first := m.Acquire()

	done := make(chan struct{})
	go func() {
		h := m.Acquire()
		h.Release()
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Second acquire finished while the first handle was held")
	case <-time.After(50 * time.Millisecond):
	}

	first.Release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Second acquire did not proceed after release")
	}
}

func TestMutexDoubleReleasePanics(t *testing.T) {
	m := NewMutex()
	h := m.Acquire()
	h.Release()
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a second release to panic")
		}
	}()
	h.Release()
}
