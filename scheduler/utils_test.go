package scheduler

import (
	"errors"
	"testing"

	"locksim/event"
)

type MockEvent struct {
	id     event.EventId
	target int
}

func (me MockEvent) Id() event.EventId {
	return me.id
}

func (me MockEvent) Execute(_ any, chn chan error) {
	chn <- nil
}

func (me MockEvent) Target() int {
	return me.target
}

// Exercises a deterministic scheduler with two concurrent events and
// expects it to produce both interleavings exactly once.
func testDeterministicExplore2Events(t *testing.T, gsch GlobalScheduler) {
	sch := gsch.GetRunScheduler()
	err := sch.StartRun()
	if err != nil {
		t.Errorf("Did not expect to receive an error. Got %v", err)
	}
	sch.AddEvent(MockEvent{"0", 0})
	sch.AddEvent(MockEvent{"1", 0})

	run1 := collectRun(t, sch, 2)
	assertRunEnded(t, sch)
	sch.EndRun()

	err = sch.StartRun()
	if err != nil {
		t.Errorf("Did not expect to receive an error. Got %v", err)
	}
	sch.AddEvent(MockEvent{"0", 0})
	sch.AddEvent(MockEvent{"1", 0})

	run2 := collectRun(t, sch, 2)
	assertRunEnded(t, sch)
	sch.EndRun()

	for i := 0; i < 2; i++ {
		if run1[i].Id() != run2[1-i].Id() {
			t.Errorf("Expected run 2 to be the reverse of run 1. Got: Run1: %v, Run2: %v", run1, run2)
		}
	}

	err = sch.StartRun()
	if !errors.Is(err, NoRunsError) {
		t.Errorf("Expected to get a NoRunsError. Got: %v", err)
	}
}

// Exercises a deterministic scheduler where new events become pending
// only after an earlier event executed. Expects two runs, both starting
// with event 0 and covering both orders of the follow-ups.
func testDeterministicExploreBranchingEvents(t *testing.T, gsch GlobalScheduler) {
	sch := gsch.GetRunScheduler()

	runs := [][]event.Event{}
	for {
		err := sch.StartRun()
		if errors.Is(err, NoRunsError) {
			break
		}
		if err != nil {
			t.Errorf("Did not expect to receive an error. Got %v", err)
		}
		sch.AddEvent(MockEvent{"0", 0})

		run := collectRun(t, sch, 1)
		if run[0].Id() != "0" {
			t.Errorf("Expected event 0 first. Got: %v", run[0])
		}
		sch.AddEvent(MockEvent{"1", 0})
		sch.AddEvent(MockEvent{"2", 0})
		run = append(run, collectRun(t, sch, 2)...)
		assertRunEnded(t, sch)

		sch.EndRun()
		runs = append(runs, run)
	}

	if len(runs) != 2 {
		t.Fatalf("Expected two runs. Got: %v", len(runs))
	}
	if runs[0][0].Id() != runs[1][0].Id() {
		t.Errorf("Both runs should start with the same event. Run1 %v, Run2: %v", runs[0][0], runs[1][0])
	}
	for i := 1; i < 3; i++ {
		if runs[0][i].Id() != runs[1][3-i].Id() {
			t.Errorf("Expected run 2 to be the reverse of run 1 after the first event. Got: Run1: %v, Run2: %v", runs[0], runs[1])
		}
	}
}

// Runs the branching scenario with two run schedulers working
// concurrently against the same global scheduler.
func testConcurrentDeterministic(t *testing.T, gsch GlobalScheduler) {
	runs := [][]event.Event{}
	runChan := make(chan []event.Event)
	for i := 0; i < 2; i++ {
		go func() {
			sch := gsch.GetRunScheduler()
			for {
				err := sch.StartRun()
				if errors.Is(err, NoRunsError) {
					break
				}
				sch.AddEvent(MockEvent{"0", 0})

				run := collectRun(t, sch, 1)
				if run[0].Id() != "0" {
					t.Errorf("Expected event 0 first. Got: %v", run[0])
				}
				sch.AddEvent(MockEvent{"1", 0})
				sch.AddEvent(MockEvent{"2", 0})
				run = append(run, collectRun(t, sch, 2)...)
				assertRunEnded(t, sch)

				sch.EndRun()
				runChan <- run
			}
		}()
	}
	for run := range runChan {
		runs = append(runs, run)
		if len(runs) == 2 {
			close(runChan)
		}
	}

	if runs[0][0].Id() != runs[1][0].Id() {
		t.Errorf("Both runs should start with the same event. Run1 %v, Run2: %v", runs[0][0], runs[1][0])
	}
	for i := 1; i < 3; i++ {
		if runs[0][i].Id() != runs[1][3-i].Id() {
			t.Errorf("Expected run 2 to be the reverse of run 1 after the first event. Got: Run1: %v, Run2: %v", runs[0], runs[1])
		}
	}
}

// Retrieves n events from the scheduler.
func collectRun(t *testing.T, sch RunScheduler, n int) []event.Event {
	t.Helper()
	run := []event.Event{}
	for i := 0; i < n; i++ {
		evt, err := sch.GetEvent()
		if err != nil {
			t.Errorf("Did not expect to receive an error. Got %v", err)
		}
		run = append(run, evt)
	}
	return run
}

func assertRunEnded(t *testing.T, sch RunScheduler) {
	t.Helper()
	if _, err := sch.GetEvent(); !errors.Is(err, RunEndedError) {
		t.Errorf("Expected to get a RunEndedError. Got: %v", err)
	}
}
