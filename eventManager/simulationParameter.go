package eventManager

// SimulationParameters carries the run specific hooks the nodes need.
// The init-node function receives a fresh set for every run.
type SimulationParameters struct {
	// EventAdder receives the events the nodes schedule while they
	// execute, typically their own next protocol step.
	EventAdder EventAdder
}
