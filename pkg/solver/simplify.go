package solver

// runWorklist drains the worklist, simplifying each constraint via the
// host callback until it empties, a constraint reports Error, or the
// score already exceeds the best known solution (§4.5). Solved
// constraints are retired; Unsolved constraints are left live and
// dropped from the worklist (they re-enter it if a later binding touches
// one of their variables — see requeue). On Error, or once pruned, the
// remainder of the worklist is discarded outright rather than left
// queued: the branch is about to be rolled back by the caller's
// Scope.Exit, and a pointer left sitting on the worklist would otherwise
// get popped and reprocessed by a sibling branch's own runWorklist call
// under the wrong scope. Returns the constraint that failed (or whose
// processing left the branch pruned), or nil if the worklist drained
// cleanly within budget.
func (s *System) runWorklist() *Constraint {
	for len(s.worklist) > 0 {
		c := s.worklist[0]
		s.worklist = s.worklist[1:]
		if !c.active {
			continue
		}
		outcome := s.simplifyOne(c)
		switch outcome {
		case Solved:
			s.retireConstraint(c)
		case Unsolved:
			// stays live, waits for requeue
		case Error:
			s.failedConstraint = c
			s.worklist = s.worklist[:0]
			return c
		}
		// §4.5: "after each constraint, if the current score already
		// exceeds the best known solution, abort as failure (pruning)."
		if s.haveBestScore && s.bestScore.Less(s.score) {
			s.failedConstraint = c
			s.worklist = s.worklist[:0]
			return c
		}
	}
	return nil
}

// simplifyOne dispatches a single constraint to the host simplifier,
// normalizing Conjunction away first (its nested constraints are simply
// added to the live store; Conjunction itself carries no semantics of
// its own once its members are live) and routing Disjunction to the
// caller via search.go/disjunction.go rather than the host, since branching
// is the solver's own responsibility, not the host's.
func (s *System) simplifyOne(c *Constraint) Outcome {
	s.stats.ConstraintsSimplified++
	var outcome Outcome
	switch c.Kind {
	case KindConjunction:
		for _, n := range c.Nested {
			s.AddConstraint(*n)
		}
		outcome = Solved
	case KindDisjunction:
		// Branching on a disjunction's alternatives is search's own
		// responsibility (disjunction.go), not the host's; leave it live
		// and unsolved so pickDisjunction finds it once the rest of the
		// worklist has drained.
		outcome = Unsolved
	default:
		outcome = s.simplify(s, c)
	}
	s.tracer.Simplify(c, outcome)
	switch outcome {
	case Solved:
		s.stats.ConstraintsSolved++
	case Error:
		s.stats.ConstraintsFailed++
	}
	return outcome
}

// requeue puts every live constraint mentioning the representative of v
// back on the worklist, used after a binding changes v's fixed type so
// constraints that depended on it get a chance to re-simplify.
func (s *System) requeue(v VarID) {
	rep := s.Representative(v)
	for _, c := range s.graph[rep] {
		if !c.active {
			continue
		}
		already := false
		for _, w := range s.worklist {
			if w == c {
				already = true
				break
			}
		}
		if !already {
			s.worklist = append(s.worklist, c)
		}
	}
}
