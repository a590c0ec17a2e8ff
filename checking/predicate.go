package checking

// Eventually turns a predicate over terminal states into one that can
// run on every state: it checks the provided predicate on terminal
// states and holds vacuously everywhere else.
func Eventually[S any](pred Predicate[S]) Predicate[S] {
	return func(s State[S]) bool {
		if !s.IsTerminal {
			return true
		}
		return pred(s)
	}
}

// ForAllParticipants checks that cond holds for every participant in
// the state. If onlyActive is true, participants that have abandoned
// the protocol are skipped.
func ForAllParticipants[S any](cond func(S) bool, s State[S], onlyActive bool) bool {
	for id, local := range s.LocalStates {
		if onlyActive && !s.Active[id] {
			continue
		}
		if !cond(local) {
			return false
		}
	}
	return true
}
