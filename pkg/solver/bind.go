package solver

import (
	"sort"

	"constraintlab/pkg/typeterm"
)

// PotentialBinding is one candidate type a variable might be bound to,
// gathered from the constraints that currently mention it (§4.6,
// getPotentialBindings in the original).
type PotentialBinding struct {
	Term typeterm.Term

	// ViaSupertype records that this candidate was reached by walking
	// DirectSupertypes from a narrower candidate, not found directly in
	// a constraint — tried only after every direct candidate fails.
	ViaSupertype bool

	// DefaultsTo records that this candidate came from a literal-default
	// protocol rather than a relational constraint against a concrete
	// type, scored via ScoreLiteralDefault rather than left unscored.
	DefaultsTo bool
}

// potentialBindings is the full candidate set for one variable, plus the
// bookkeeping tryTypeVariableBindings and the outer search driver need
// to decide whether this variable is even worth binding next.
type potentialBindings struct {
	Var                   VarID
	Bindings              []PotentialBinding
	InvolvesTypeVariables bool
	FullyBound            bool
	HasLiteralBindings    bool

	// LiteralProtocols records each protocol a ConformsTo/
	// SelfObjectOfProtocol constraint named a default type for. Their
	// AlternativeLiteralTypes are not part of the initial candidate set
	// (§4.6a) — they are only expanded into on the very first retry, by
	// expandAlternativeLiterals.
	LiteralProtocols []string
}

// betterThan implements the (FullyBound, InvolvesTypeVariables,
// HasLiteralBindings, -|Bindings|) lexicographic comparator from §4.6a:
// smaller is better, so FullyBound=true sorts first, then
// InvolvesTypeVariables=false, then HasLiteralBindings=false, and only
// once all three tie does the candidate with *more* bindings win (the
// negated count, preserved here exactly as coded in the original despite
// its own comment disagreeing — see the open question in §9).
func (pb potentialBindings) betterThan(other potentialBindings) bool {
	if pb.FullyBound != other.FullyBound {
		return pb.FullyBound
	}
	if pb.InvolvesTypeVariables != other.InvolvesTypeVariables {
		return !pb.InvolvesTypeVariables
	}
	if pb.HasLiteralBindings != other.HasLiteralBindings {
		return !pb.HasLiteralBindings
	}
	return len(pb.Bindings) > len(other.Bindings)
}

// getPotentialBindings scans every live constraint mentioning v's
// representative, collecting direct binding candidates: the other side
// of an Equal/Bind/Subtype/TrivialSubtype/Conversion constraint, with
// direction respected (v as the subtype side pulls a supertype
// candidate and vice versa), plus literal-default candidates from
// ConformsTo constraints naming a protocol with a default type (§4.6).
func (s *System) getPotentialBindings(v VarID) potentialBindings {
	rep := s.Representative(v)
	pb := potentialBindings{Var: rep}
	seen := map[string]bool{}

	add := func(t typeterm.Term, viaSuper, isDefault, unwrapTuple bool) {
		if t == nil {
			return
		}
		simplified := s.ops.Simplify(t, s)
		if elem, ok := s.ops.AsImplicitLValue(simplified); ok && !s.CanBindToLValue(rep) {
			// §4.6a: a variable that cannot bind to l-values reads an
			// l-value candidate down to its r-value element type first.
			simplified = s.ops.Simplify(elem, s)
		}
		if vid, ok := s.ops.AsBareVar(simplified); ok {
			pb.InvolvesTypeVariables = true
			if s.Representative(vid) == rep {
				return
			}
		}
		key := s.ops.Canonical(simplified)
		if !seen[key] {
			seen[key] = true
			pb.Bindings = append(pb.Bindings, PotentialBinding{Term: simplified, ViaSupertype: viaSuper, DefaultsTo: isDefault})
		}
		// §4.6a bullet (ii): for Conversion/Subtype/TrivialSubtype, a
		// single-element, non-variadic labelled tuple candidate also
		// offers its unwrapped element type as a candidate.
		if unwrapTuple {
			if elem, ok := s.ops.AsSingleElementTuple(simplified); ok {
				elemKey := s.ops.Canonical(elem)
				if !seen[elemKey] {
					seen[elemKey] = true
					pb.Bindings = append(pb.Bindings, PotentialBinding{Term: elem, ViaSupertype: viaSuper, DefaultsTo: isDefault})
				}
			}
		}
	}

	for _, c := range s.graph[rep] {
		if !c.active {
			continue
		}
		switch c.Kind {
		case KindEqual, KindBind:
			if s.mentionsRep(c.First, rep) {
				add(c.Second, false, false, false)
			}
			if s.mentionsRep(c.Second, rep) {
				add(c.First, false, false, false)
			}
		case KindSubtype, KindTrivialSubtype, KindConversion:
			// v Subtype Second: Second is a candidate (v could equal its
			// supertype exactly); v as the supertype side instead pulls a
			// candidate from First.
			if s.mentionsRep(c.First, rep) {
				add(c.Second, false, false, true)
			}
			if s.mentionsRep(c.Second, rep) {
				add(c.First, false, false, true)
			}
		case KindConformsTo, KindSelfObjectOfProtocol:
			if s.mentionsRep(c.First, rep) {
				if def, ok := s.ops.DefaultType(c.Protocol); ok {
					pb.HasLiteralBindings = true
					pb.LiteralProtocols = append(pb.LiteralProtocols, c.Protocol)
					add(def, false, true, false)
				}
			}
		}
	}

	pb.FullyBound = len(pb.Bindings) > 0 && !pb.InvolvesTypeVariables
	return pb
}

func (s *System) mentionsRep(t typeterm.Term, rep VarID) bool {
	if t == nil {
		return false
	}
	for _, fv := range s.ops.FreeVars(s.ops.Simplify(t, s)) {
		if s.Representative(fv) == rep {
			return true
		}
	}
	return false
}

// expandViaSupertypes appends one additional layer of supertype
// candidates to pb, walking DirectSupertypes from every existing
// non-supertype candidate. The original enumerates these lazily, one
// layer per failed attempt; this pre-expands because the whole system
// is small enough that the extra work is cheap and the code is simpler
// for it.
func (s *System) expandViaSupertypes(pb *potentialBindings) bool {
	added := false
	base := pb.Bindings
	for _, b := range base {
		if b.ViaSupertype || b.DefaultsTo {
			continue
		}
		for _, super := range s.ops.DirectSupertypes(b.Term) {
			key := s.ops.Canonical(super)
			dup := false
			for _, existing := range pb.Bindings {
				if s.ops.Canonical(existing.Term) == key {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			pb.Bindings = append(pb.Bindings, PotentialBinding{Term: super, ViaSupertype: true})
			added = true
		}
	}
	return added
}

// expandAlternativeLiterals appends each LiteralProtocols entry's
// AlternativeLiteralTypes to pb as further literal-default candidates
// (§4.6a: "on the very first retry, also expand alternative literal
// types for each protocol with a default"). Unlike the protocol's
// default type itself, these are never part of the initial candidate
// set gathered by getPotentialBindings.
func (s *System) expandAlternativeLiterals(pb *potentialBindings) bool {
	added := false
	for _, protocol := range pb.LiteralProtocols {
		for _, alt := range s.ops.AlternativeLiteralTypes(protocol) {
			simplified := s.ops.Simplify(alt, s)
			key := s.ops.Canonical(simplified)
			dup := false
			for _, existing := range pb.Bindings {
				if s.ops.Canonical(existing.Term) == key {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			pb.Bindings = append(pb.Bindings, PotentialBinding{Term: simplified, DefaultsTo: true})
			added = true
		}
	}
	return added
}

// tryTypeVariableBindings attempts each candidate in pb in turn, under
// its own Scope, recursively re-running the worklist and (if that
// solves everything) the outer search. It returns true the first time a
// candidate leads the caller-supplied continuation to report success;
// on a return of false every candidate — including one round of
// supertype and alternative-literal expansion — has been exhausted and
// fully rolled back.
func (s *System) tryTypeVariableBindings(pb potentialBindings, continueSearch func() bool) bool {
	order := make([]PotentialBinding, len(pb.Bindings))
	copy(order, pb.Bindings)
	sort.SliceStable(order, func(i, j int) bool {
		// Literal defaults sort last: only tried once every concrete
		// candidate has failed.
		if order[i].DefaultsTo != order[j].DefaultsTo {
			return !order[i].DefaultsTo
		}
		return false
	})

	for _, b := range order {
		s.stats.BindingsTried++
		if b.DefaultsTo {
			if s.tryOneBinding(pb.Var, s.ops.Open(b.Term), ScoreLiteralDefault, continueSearch) {
				return true
			}
			continue
		}
		if s.tryOneBinding(pb.Var, b.Term, -1, continueSearch) {
			return true
		}
	}

	// The very first retry: one round of direct-supertype expansion plus
	// (§4.6a) one round of alternative-literal-type expansion, both
	// applied only here, never to the initial candidate set above.
	expanded := pb
	base := len(expanded.Bindings)
	supersAdded := s.expandViaSupertypes(&expanded)
	literalsAdded := s.expandAlternativeLiterals(&expanded)
	if !supersAdded && !literalsAdded {
		return false
	}
	for _, b := range expanded.Bindings[base:] {
		s.stats.BindingsTried++
		if b.DefaultsTo {
			if s.tryOneBinding(expanded.Var, s.ops.Open(b.Term), ScoreLiteralDefault, continueSearch) {
				return true
			}
			continue
		}
		if s.tryOneBinding(expanded.Var, b.Term, ScoreImplicitConversion, continueSearch) {
			return true
		}
	}
	return false
}

// tryOneBinding opens a scope, checks and assigns the binding, bumps the
// given score category if scoreCategory >= 0, requeues dependents, reruns
// the worklist, and — if that drains cleanly — calls continueSearch. Any
// failure rolls the scope all the way back before returning false.
func (s *System) tryOneBinding(v VarID, t typeterm.Term, scoreCategory int, continueSearch func() bool) bool {
	checked, ok := s.checkBinding(v, t)
	if !ok {
		return false
	}

	scope := EnterScope(s)
	s.tracer.Bind(s.depth, v, checked)

	s.assignFixed(v, checked)
	if scoreCategory >= 0 {
		s.score[scoreCategory]++
	}
	s.requeue(v)

	ok = s.runWorklist() == nil && continueSearch()

	if ok {
		s.tracer.ExitScope(s.depth, Solved, s.score)
		return true
	}
	s.tracer.ExitScope(s.depth, Unsolved, s.score)
	scope.Exit()
	return false
}
