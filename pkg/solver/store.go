package solver

// addConstraint appends c to the live store (in insertion order), adds
// it to the worklist, indexes it in the variable adjacency graph, and —
// if a scope is active — records it as generated within that scope so
// it can be unwound on rollback.
func (s *System) addConstraint(c *Constraint) {
	c.active = true
	s.live = append(s.live, c)
	s.worklist = append(s.worklist, c)
	s.indexConstraint(c)
	if s.generated != nil {
		s.generated[c] = struct{}{}
	}
	if c.Restriction != RestrictionNone {
		s.constraintRestrictions = append(s.constraintRestrictions, constraintRestriction{
			first: c.First, second: c.Second, restriction: c.Restriction,
		})
	}
}

// newConstraint allocates a constraint with a fresh, system-scoped id.
func (s *System) newConstraint(c Constraint) *Constraint {
	s.nextConstraintID++
	c.id = s.nextConstraintID
	out := c
	return &out
}

// AddConstraint is the public entry point hosts and the driver use to
// introduce a new constraint into the live system.
func (s *System) AddConstraint(c Constraint) *Constraint {
	out := s.newConstraint(c)
	s.addConstraint(out)
	return out
}

// indexConstraint adds c to the graph index under the representative of
// every free variable its (simplified) operand terms mention.
func (s *System) indexConstraint(c *Constraint) {
	for _, v := range s.constraintVars(c) {
		rep := s.Representative(v)
		s.graph[rep] = append(s.graph[rep], c)
	}
}

// removeConstraintFromGraph removes c from every adjacency bucket it was
// indexed under. O(bucket size); buckets are small in practice.
func (s *System) removeConstraintFromGraph(c *Constraint) {
	for _, v := range s.constraintVars(c) {
		rep := s.Representative(v)
		bucket := s.graph[rep]
		for i, entry := range bucket {
			if entry == c {
				s.graph[rep] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
	}
}

// constraintVars returns every free variable mentioned by c's operand
// terms (and, for composite constraints, its nested constraints).
func (s *System) constraintVars(c *Constraint) []VarID {
	var out []VarID
	collect := func(c *Constraint) {
		if c.First != nil {
			out = append(out, s.ops.FreeVars(s.ops.Simplify(c.First, s))...)
		}
		if c.Second != nil {
			out = append(out, s.ops.FreeVars(s.ops.Simplify(c.Second, s))...)
		}
	}
	if c.Kind == KindDisjunction || c.Kind == KindConjunction {
		for _, n := range c.Nested {
			if n.Kind == KindConjunction {
				for _, inner := range n.Nested {
					collect(inner)
				}
				continue
			}
			collect(n)
		}
		return out
	}
	collect(c)
	return out
}

// removeFromLive removes c from the live store and the graph without
// touching the retired list (c is not being discharged or rolled back —
// it is being temporarily set aside, per §4.6b's disjunction-branching
// step). Returns the index c occupied in s.live so the caller can
// restore it there via reinsertLive.
func (s *System) removeFromLive(c *Constraint) int {
	idx := -1
	for i, entry := range s.live {
		if entry == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return -1
	}
	c.active = false
	s.live = append(s.live[:idx], s.live[idx+1:]...)
	s.removeConstraintFromGraph(c)
	return idx
}

// reinsertLive splices c back into the live store at idx (or the end,
// if idx is out of range) and re-indexes it in the graph, undoing
// removeFromLive.
func (s *System) reinsertLive(c *Constraint, idx int) {
	if idx < 0 || idx > len(s.live) {
		idx = len(s.live)
	}
	c.active = true
	s.live = append(s.live, nil)
	copy(s.live[idx+1:], s.live[idx:])
	s.live[idx] = c
	s.indexConstraint(c)
}

// retireConstraint removes c from the live store and the worklist,
// removes it from the graph, and pushes it onto the scope-local retired
// stack so a failing branch can splice it back (§4.5).
func (s *System) retireConstraint(c *Constraint) {
	c.active = false
	for i, entry := range s.live {
		if entry == c {
			s.live = append(s.live[:i], s.live[i+1:]...)
			break
		}
	}
	s.removeConstraintFromGraph(c)
	s.retired = append(s.retired, c)
}

// spliceRetiredBack moves every retired constraint recorded since
// retiredMark back into the live store and re-indexes it in the graph,
// restoring the store to its pre-failure state.
func (s *System) spliceRetiredBack(retiredMark int) {
	for i := len(s.retired) - 1; i >= retiredMark; i-- {
		c := s.retired[i]
		c.active = true
		s.live = append(s.live, c)
		s.indexConstraint(c)
	}
	s.retired = s.retired[:retiredMark]
}

// removeGeneratedSince removes every constraint still live that was
// generated within the current scope (tracked in generated), used on
// scope exit to undo speculative additions. Removed constraints are
// marked inactive so a pointer to one still sitting on the worklist
// (queued before the scope failed) is skipped rather than reprocessed
// by a later sibling branch's runWorklist call.
func (s *System) removeGeneratedSince(generated map[*Constraint]struct{}) {
	if len(generated) == 0 {
		return
	}
	kept := s.live[:0:0]
	for _, c := range s.live {
		if _, isGenerated := generated[c]; isGenerated {
			c.active = false
			s.removeConstraintFromGraph(c)
			continue
		}
		kept = append(kept, c)
	}
	s.live = kept
}
