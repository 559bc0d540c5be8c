package solver

import "constraintlab/pkg/typeterm"

// Binding is one variable's fixed type in a completed Solution.
type Binding struct {
	Var  VarID
	Type typeterm.Term
}

// Solution is one complete, internally consistent assignment of fixed
// types to every type variable the search touched, together with the
// score it accumulated getting there and the overload choices it made
// along the way (§4.7).
type Solution struct {
	Score        Score
	Bindings     []Binding
	Overloads    []OverloadChoice
	FreeVars     []VarID
	Restrictions []RestrictionRecord
	Stats        Stats

	// Components maps each bound variable to the id of the connected
	// component of the original constraint graph it belonged to, and
	// NumComponents is the count of such components. A host can use this
	// to report which parts of a large solution are independent of one
	// another, or to recombine per-component alternatives cheaply.
	Components    map[VarID]int
	NumComponents int
}

// RestrictionRecord is one restriction-tagged constraint that
// contributed to this solution, kept for host diagnostics (e.g.
// explaining why a conversion rather than a direct match was chosen).
type RestrictionRecord struct {
	First, Second typeterm.Term
	Restriction   Restriction
}

// TypeOf returns the fixed type bound to v in this solution, if any.
func (sol Solution) TypeOf(v VarID) (typeterm.Term, bool) {
	for _, b := range sol.Bindings {
		if b.Var == v {
			return b.Type, true
		}
	}
	return nil, false
}
