package solver

// maxDepth bounds recursion as a last-resort guard against a host ops
// implementation that never terminates Simplify; search that hits it
// fails the branch rather than overflowing the goroutine stack.
const maxDepth = 512

// Solve runs the full backtracking search to completion, exploring every
// branch (pruned by score where the monotonicity invariant allows it)
// and returning every complete solution whose score equals the best
// score found, in the order they were found. When no complete solution
// is found (every branch failed, or free variables remained under
// Disallow) it returns a nil slice and an ErrNoSolution error.
func (s *System) Solve(freeVarPolicy FreeVariablePolicy) ([]Solution, error) {
	s.freeVarPolicy = freeVarPolicy

	allVars := make([]VarID, len(s.vars))
	for i := range s.vars {
		allVars[i] = VarID(i)
	}
	s.initialComponents, s.numInitialComponents = s.computeComponents(allVars)
	s.stats.ComponentsSplit = s.numInitialComponents

	var found []Solution

	continueAfter := func() bool {
		sol := s.snapshotSolution()
		s.tracer.FoundSolution(sol.Score)
		if !s.haveBestScore || sol.Score.Less(s.bestScore) {
			s.bestScore = sol.Score
			s.haveBestScore = true
		}
		found = append(found, sol)
		return false
	}

	s.solve(continueAfter)

	if len(found) == 0 {
		return nil, ErrNoSolution{Constraint: s.failedConstraint}
	}

	bestIdx, _ := FindBestSolution(found, true)
	best := found[:0:0]
	for _, sol := range found {
		if sol.Score.Compare(found[bestIdx].Score) == 0 {
			best = append(best, sol)
		}
	}
	return best, nil
}

// solve is the recursive core of search: drain the worklist, then branch
// on whatever remains live (a disjunction, an unbound variable with
// candidate bindings, or nothing — a complete solution). continueAfter
// is invoked at the base case and its return value propagated, exactly
// like the scope-guarded helpers in bind.go and disjunction.go.
//
// Per-constraint score pruning against the best known solution (§4.5)
// happens inside runWorklist itself, not here; the check below is the
// §4.6 item 3 terminal-case prune, which also covers the case where the
// worklist was already empty (so runWorklist never iterated) yet the
// score assigned by the binding that got us here already exceeds best.
func (s *System) solve(continueAfter func() bool) bool {
	if s.depth >= maxDepth {
		return false
	}
	if failed := s.runWorklist(); failed != nil {
		return false
	}

	s.depth++
	defer func() { s.depth-- }()
	s.stats.ScopesEntered++

	if d := s.pickDisjunction(); d != nil {
		return s.solveDisjunction(d, func() bool {
			return s.solve(continueAfter)
		})
	}

	if pb, ok := s.pickNextVariable(); ok {
		return s.tryTypeVariableBindings(pb, func() bool {
			return s.solve(continueAfter)
		})
	}

	if s.haveBestScore && s.bestScore.Less(s.score) {
		return false
	}
	if s.freeVarPolicy == Disallow && s.hasFreeVariables() {
		return false
	}

	return continueAfter()
}

// pickNextVariable selects the next unbound variable to try bindings
// for, using the §4.6a comparator over (FullyBound, InvolvesTypeVariables,
// HasLiteralBindings, -|Bindings|): a variable that some constraint fully
// determines, that isn't merely reachable through another unbound
// variable, and that has no literal fallback yields the tightest
// branching factor, so it is preferred first.
func (s *System) pickNextVariable() (potentialBindings, bool) {
	var bestPB potentialBindings
	haveBest := false

	for i := range s.vars {
		v := VarID(i)
		if s.Representative(v) != v || s.vars[v].hasFixed {
			continue
		}
		pb := s.getPotentialBindings(v)
		if len(pb.Bindings) == 0 {
			continue
		}
		if !haveBest || pb.betterThan(bestPB) {
			bestPB, haveBest = pb, true
		}
	}
	return bestPB, haveBest
}

// ErrNoSolution is returned by Solve when every branch of the search
// failed. Constraint is the constraint that reported Error (or left the
// branch pruned) when that happened outside any search scope, such as
// during the initial worklist drain. A failure inside a branch is
// cleared when that branch's Scope exits, so Constraint is then nil.
type ErrNoSolution struct {
	Constraint *Constraint
}

func (e ErrNoSolution) Error() string {
	if e.Constraint == nil {
		return "constraint system has no solution"
	}
	return "constraint system has no solution: failed at " + e.Constraint.String()
}
