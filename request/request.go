package request

// A Request seeds the simulation scenario. Each request starts one
// acquire/release cycle for a participant; the harness schedules the
// intermediate protocol steps (poll, enter, exit) as events of their
// own, so the scheduler can interleave them freely.
type Request struct {
	Participant int
}

// Acquire returns a request for one full lock cycle by participant p.
// The same participant may appear in several requests; cycles beyond
// the first are queued and run back to back.
func Acquire(p int) Request {
	return Request{Participant: p}
}
