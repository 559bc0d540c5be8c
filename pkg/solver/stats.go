package solver

import "github.com/google/uuid"

// Stats accumulates search-wide counters for one Solve call (§6). It is
// exposed on the returned Solution (or the last scope's System on
// failure) for hosts that want to log or persist search behavior.
type Stats struct {
	SessionID        string
	ConstraintsSimplified int
	ConstraintsSolved     int
	ConstraintsFailed     int
	ScopesEntered         int
	BindingsTried         int
	DisjunctionsExplored  int

	// ComponentsSplit is the number of connected components the initial
	// constraint graph was partitioned into (§4.4), for host diagnostics
	// and Solution.NumComponents. It counts components found, not
	// recursive split-and-recompose operations performed: search itself
	// still proceeds over the whole graph in one tree (see DESIGN.md).
	ComponentsSplit int
}

// newStats allocates a Stats with a fresh session identifier, used to
// correlate a search's trace output and persisted snapshot.
func newStats() Stats {
	return Stats{SessionID: uuid.NewString()}
}

// Stats returns a copy of the system's running counters.
func (s *System) Stats() Stats { return s.stats }
