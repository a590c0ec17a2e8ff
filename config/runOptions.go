package config

import (
	"io"

	"locksim/abandonment"
)

// Configures the abandonment manager used during the simulation.

// The abandonment manager controls which participants walk away from
// the protocol mid-run. Default value is no abandonments.
type AbandonmentOption[T any] struct {
	Am abandonment.Manager[T]
}

func (ao AbandonmentOption[T]) RunOpt() {}

// Configures io.Writers that the discovered state space is exported to.

// Can be applied multiple times to add multiple writers.
// Default value is no writers.
type ExportOption struct {
	W io.Writer
}

func (eo ExportOption) RunOpt() {}

// Configures a function shutting down a participant after a run.

// The function should clean up any outstanding operations to avoid
// leaks across runs. Default value is an empty function.
type StopOption[T any] struct {
	Stop func(*T)
}

func (so StopOption[T]) RunOpt() {}
