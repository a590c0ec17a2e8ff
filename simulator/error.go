package simulator

import "fmt"

// simulationError aggregates the errors collected over a simulation
// where ignoreErrors is set.
type simulationError struct {
	errorSlice []error
}

func (se simulationError) Error() string {
	return fmt.Sprintf("simulator: %v errors occurred while simulating runs. \nError 1: %v", len(se.errorSlice), se.errorSlice[0])
}
