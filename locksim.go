// Package locksim simulates and verifies a ticket based mutual
// exclusion protocol under controlled interleavings.
//
// A simulation runs a set of participants through acquire/release
// cycles, explores the different orders their protocol steps can
// interleave in, and checks a battery of properties against every
// state it discovers. A violated property is reported together with
// the run leading up to it, which can be replayed for debugging.
package locksim

import (
	"io"
	"log"
	"runtime"

	"locksim/abandonment"
	"locksim/checking"
	"locksim/config"
	"locksim/event"
	"locksim/eventManager"
	"locksim/request"
	"locksim/scheduler"
	"locksim/simulator"
	"locksim/stateManager"
)

// PrepareSimulation configures a simulator with the provided options.
//
// Default values are used for options that are not provided. The
// default scheduler is the prefix scheduler.
func PrepareSimulation[T, S any](smOpts StateManagerOption[T, S], opts ...SimulatorOption) Simulation[T, S] {
	var (
		// Maximum number of runs simulated
		maxRuns = 10000

		// Maximum number of events in a run
		maxDepth = 100

		// Number of runs simulated concurrently
		numConcurrent = runtime.GOMAXPROCS(0)

		ignoreErrors = false
		ignorePanics = false

		sch scheduler.GlobalScheduler
	)

	for _, opt := range opts {
		switch t := opt.(type) {
		case config.SchedulerOption:
			sch = t.Sch
		case config.MaxRunsOption:
			maxRuns = t.MaxRuns
		case config.MaxDepthOption:
			maxDepth = t.MaxDepth
		case config.NumConcurrentOption:
			numConcurrent = t.N
		case config.IgnoreErrorOption:
			ignoreErrors = true
		case config.IgnorePanicOption:
			ignorePanics = true
		}
	}
	if sch == nil {
		sch = scheduler.NewPrefix()
	}

	sm := smOpts.sm

	sim := simulator.NewSimulator(sch, sm, ignoreErrors, ignorePanics, maxRuns, maxDepth, numConcurrent)
	return Simulation[T, S]{
		sim: sim,
		sm:  sm,
	}
}

// Simulation stores a configured simulator.
//
// It can be used for several simulations, one at a time. A simulation
// is started by calling Run.
type Simulation[T, S any] struct {
	sim *simulator.Simulator[T, S]
	sm  stateManager.StateManager[T, S]
}

// Run simulates the scenario described by the requests and checks the
// configured properties against the discovered state space.
//
// The InitNodeOption, RequestOption and CheckerOption are mandatory.
// RunOptions are optional and fall back to default values.
func (sr Simulation[T, S]) Run(InitNodes InitNodeOption[T], requestOpts RequestOption, checker CheckerOption[S], opts ...RunOptions) checking.CheckerResponse {
	var (
		requests = []request.Request{}

		export []io.Writer

		stopFunc = func(*T) {}

		am abandonment.Manager[T]
	)

	for _, opt := range opts {
		switch t := opt.(type) {
		case config.StopOption[T]:
			stopFunc = t.Stop
		case config.ExportOption:
			export = append(export, t.W)
		case config.AbandonmentOption[T]:
			am = t.Am
		}
	}

	if am == nil {
		am = abandonment.None[T]()
	}

	requests = append(requests, requestOpts.request...)
	if len(requests) == 0 {
		log.Panicf("At least one request must be provided to start the simulation")
	}

	err := sr.sim.Simulate(am, InitNodes.f, stopFunc, requests...)
	if err != nil {
		log.Panicf("Received an error while running simulation: %v", err)
	}

	state := sr.sm.State()
	for _, w := range export {
		state.Export(w)
	}

	return checker.checker.Check(state)
}

// An option used to configure the simulator.
type SimulatorOption interface {
	// noop method
	SimOpt()
}

// RandomWalkScheduler configures the simulation to use a random walk
// scheduler.
//
// The random walk scheduler uniformly picks the next event among the
// currently pending ones. It has no designated stop point and
// schedules runs until maxRuns is reached, possibly repeating runs. It
// generally provides a more varied sample of the interleaving space
// than a systematic search cut off at the same budget.
func RandomWalkScheduler(seed int64) SimulatorOption {
	return config.SchedulerOption{Sch: scheduler.NewRandom(seed)}
}

// PrefixScheduler configures the simulation to use a prefix scheduler.
//
// The prefix scheduler performs a systematic depth first search of the
// interleaving space. It stops when the entire space is explored and
// never schedules the same run twice.
func PrefixScheduler() SimulatorOption {
	return config.SchedulerOption{Sch: scheduler.NewPrefix()}
}

// ReplayScheduler configures the simulation to replay the provided
// run, given as a sequence of event ids as exported by
// CheckerResponse.Export. The simulation fails if the run can not be
// reproduced.
func ReplayScheduler(run []event.EventId) SimulatorOption {
	return config.SchedulerOption{Sch: scheduler.NewReplay(run)}
}

// WithScheduler configures the simulation to use the provided
// scheduler.
func WithScheduler(sch scheduler.GlobalScheduler) SimulatorOption {
	return config.SchedulerOption{Sch: sch}
}

// MaxRuns configures the maximum number of simulated runs.
//
// Default value is 10000.
func MaxRuns(maxRuns int) SimulatorOption {
	return config.MaxRunsOption{MaxRuns: maxRuns}
}

// MaxDepth configures the maximum number of events in a run.
//
// Default value is 100.
//
// Note that liveness properties can not be verified on runs that are
// cut off before they end.
func MaxDepth(maxDepth int) SimulatorOption {
	return config.MaxDepthOption{MaxDepth: maxDepth}
}

// NumConcurrent configures the number of runs simulated concurrently.
//
// Default value is GOMAXPROCS.
func NumConcurrent(n int) SimulatorOption {
	return config.NumConcurrentOption{N: n}
}

// IgnorePanic lets panics raised by a participant propagate and stop
// the simulation, instead of catching them and reporting them as
// errors. Useful for inspecting the panicking state in a debugger.
func IgnorePanic() SimulatorOption {
	return config.IgnorePanicOption{}
}

// IgnoreError makes the simulation continue past errors and report
// them in aggregate at the end, instead of stopping at the first one.
func IgnoreError() SimulatorOption {
	return config.IgnoreErrorOption{}
}

// Optional parameters used to configure a simulation.
type RunOptions interface {
	RunOpt()
}

// WithAbandonment specifies the abandonment manager used for the
// simulation.
//
// Default is that no participant abandons the protocol.
func WithAbandonment[T any](am abandonment.Manager[T]) RunOptions {
	return config.AbandonmentOption[T]{Am: am}
}

// WithAbandoningParticipants makes the listed participants walk away
// from the protocol at a point chosen by the scheduler. abandonFunc is
// called on the node when it abandons and should make its remaining
// steps no-ops.
func WithAbandoningParticipants[T any](abandonFunc func(*T), participants ...int) RunOptions {
	return config.AbandonmentOption[T]{
		Am: abandonment.New(abandonFunc, participants),
	}
}

// StateManagerOption configures the state manager collecting the
// states of the system under test.
type StateManagerOption[T, S any] struct {
	sm stateManager.StateManager[T, S]
}

// WithStateManager uses the provided state manager in the simulation.
func WithStateManager[T, S any](sm stateManager.StateManager[T, S]) StateManagerOption[T, S] {
	return StateManagerOption[T, S]{sm: sm}
}

// WithTreeStateManager uses a TreeStateManager in the simulation,
// configured with a function collecting the local state of a node and
// a function checking equality of two local states.
func WithTreeStateManager[T, S any](getLocalState func(*T) S, statesEqual func(S, S) bool) StateManagerOption[T, S] {
	sm := stateManager.NewTreeStateManager(getLocalState, statesEqual)
	return StateManagerOption[T, S]{sm: sm}
}

// InitNodeOption configures how the participants are created.
//
// The function is called once per run and should return fresh,
// independent participants. The provided SimulationParameters carry
// the run specific hooks, in particular the EventAdder the
// participants schedule their steps on.
type InitNodeOption[T any] struct {
	f func(eventManager.SimulationParameters) map[int]*T
}

// InitNodeFunc uses the provided function to generate the map of
// participants.
func InitNodeFunc[T any](f func(sp eventManager.SimulationParameters) map[int]*T) InitNodeOption[T] {
	return InitNodeOption[T]{f: f}
}

// InitSingleNode uses the provided function to generate each
// participant individually and collects them in a map.
func InitSingleNode[T any](nodeIds []int, f func(id int, sp eventManager.SimulationParameters) *T) InitNodeOption[T] {
	t := func(sp eventManager.SimulationParameters) map[int]*T {
		nodes := map[int]*T{}
		for _, id := range nodeIds {
			nodes[id] = f(id, sp)
		}
		return nodes
	}
	return InitNodeOption[T]{f: t}
}

// CheckerOption configures the checker verifying the properties of the
// protocol.
type CheckerOption[S any] struct {
	checker checking.Checker[S]
}

// WithPredicateChecker uses a PredicateChecker configured with the
// provided predicates.
func WithPredicateChecker[S any](predicates ...checking.Predicate[S]) CheckerOption[S] {
	return CheckerOption[S]{
		checker: checking.NewPredicateChecker(predicates...),
	}
}

// WithChecker uses the provided checker.
func WithChecker[S any](checker checking.Checker[S]) CheckerOption[S] {
	return CheckerOption[S]{checker: checker}
}

// RequestOption configures the requests seeding the scenario of the
// simulation.
type RequestOption struct {
	request []request.Request
}

// WithRequests configures the requests seeding the scenario of the
// simulation.
func WithRequests(requests ...request.Request) RequestOption {
	return RequestOption{request: requests}
}

// Export adds a writer the discovered state space is exported to.
//
// Can be applied multiple times. Default is no writers.
func Export(w io.Writer) RunOptions {
	return config.ExportOption{W: w}
}

// WithStopFunction configures a function stopping a participant after
// a run, cleaning up any outstanding operations.
func WithStopFunction[T any](stop func(*T)) RunOptions {
	return config.StopOption[T]{Stop: stop}
}
