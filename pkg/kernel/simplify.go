package kernel

import (
	"constraintlab/pkg/solver"
	"constraintlab/pkg/typeterm"
)

// Conformances maps a nominal type name to the protocol names it
// conforms to, consulted by ConformsTo/SelfObjectOfProtocol.
//
// Members maps a nominal type name to its member names and types,
// consulted by Member constraints.
//
// Both are populated by the same caller that builds a Kernel's
// DirectSupers table (directly, or via pkg/config).
type Conformances map[string][]string
type Members map[string]map[string]typeterm.Term

// Simplify is paired with a Kernel to supply the additional lookup
// tables simplification needs beyond what typeterm.Ops exposes. It
// implements solver.SimplifyFunc.
type Simplify struct {
	K            *Kernel
	Conformances Conformances
	Members      Members
}

// Func returns the solver.SimplifyFunc bound to this Simplify's tables.
func (sf *Simplify) Func() solver.SimplifyFunc {
	return sf.simplifyConstraint
}

func (sf *Simplify) simplifyConstraint(s *solver.System, c *solver.Constraint) solver.Outcome {
	switch c.Kind {
	case solver.KindEqual, solver.KindBind:
		return sf.simplifyEqual(s, c)
	case solver.KindSubtype, solver.KindTrivialSubtype:
		return sf.simplifySubtype(s, c, false)
	case solver.KindConversion:
		return sf.simplifySubtype(s, c, true)
	case solver.KindApplicableFunction:
		return sf.simplifyApplicableFunction(s, c)
	case solver.KindConformsTo, solver.KindSelfObjectOfProtocol:
		return sf.simplifyConformsTo(s, c)
	case solver.KindTypeProperty:
		return sf.simplifyTypeProperty(s, c)
	case solver.KindMember:
		return sf.simplifyMember(s, c)
	default:
		panic("kernel: simplifyConstraint received a composite constraint kind")
	}
}

func (sf *Simplify) simplifyEqual(s *solver.System, c *solver.Constraint) solver.Outcome {
	first := sf.K.Simplify(c.First, s)
	second := sf.K.Simplify(c.Second, s)

	fv, fIsVar := sf.K.AsBareVar(first)
	sv, sIsVar := sf.K.AsBareVar(second)

	switch {
	case fIsVar && sIsVar:
		if !s.UnifyVars(fv, sv) {
			return solver.Error
		}
		return solver.Solved
	case fIsVar:
		if !s.Bind(fv, second) {
			return solver.Error
		}
		return solver.Solved
	case sIsVar:
		if !s.Bind(sv, first) {
			return solver.Error
		}
		return solver.Solved
	}

	if sf.K.Canonical(first) == sf.K.Canonical(second) {
		return solver.Solved
	}
	return sf.decomposeStructural(s, c, first, second, solver.KindEqual)
}

// simplifySubtype handles Subtype, TrivialSubtype, and — when
// allowOptionalWrap is set — Conversion, which additionally accepts an
// implicit wrap of a non-optional value into an Optional.
func (sf *Simplify) simplifySubtype(s *solver.System, c *solver.Constraint, allowOptionalWrap bool) solver.Outcome {
	first := sf.K.Simplify(c.First, s)
	second := sf.K.Simplify(c.Second, s)

	if _, ok := sf.K.AsBareVar(first); ok {
		return solver.Unsolved
	}
	if _, ok := sf.K.AsBareVar(second); ok {
		return solver.Unsolved
	}

	if sf.K.Canonical(first) == sf.K.Canonical(second) {
		return solver.Solved
	}

	if sf.isSubtype(first, second) {
		return solver.Solved
	}

	if firstOpt, ok := first.(Optional); ok {
		if secondOpt, ok := second.(Optional); ok {
			s.AddConstraint(solver.Constraint{
				Kind: solver.KindSubtype, First: firstOpt.Element, Second: secondOpt.Element,
				Restriction: solver.RestrictionOptionalToOptional, Locator: c.Locator,
			})
			return solver.Solved
		}
	}
	if allowOptionalWrap {
		if secondOpt, ok := second.(Optional); ok {
			s.AddConstraint(solver.Constraint{
				Kind: solver.KindSubtype, First: first, Second: secondOpt.Element, Locator: c.Locator,
			})
			return solver.Solved
		}
	}

	if firstTup, ok := first.(Tuple); ok {
		if secondTup, ok := second.(Tuple); ok {
			return sf.decomposeTuples(s, c, firstTup, secondTup, solver.KindSubtype)
		}
	}

	return solver.Error
}

// isSubtype walks the direct-supertype lattice breadth-first looking for
// second among first's transitive supertypes.
func (sf *Simplify) isSubtype(first, second typeterm.Term) bool {
	target := sf.K.Canonical(second)
	seen := map[string]bool{}
	frontier := []typeterm.Term{first}
	for len(frontier) > 0 {
		var next []typeterm.Term
		for _, t := range frontier {
			key := sf.K.Canonical(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			if key == target {
				return true
			}
			next = append(next, sf.K.DirectSupertypes(t)...)
		}
		frontier = next
	}
	return false
}

func (sf *Simplify) decomposeStructural(s *solver.System, c *solver.Constraint, first, second typeterm.Term, kind solver.Kind) solver.Outcome {
	switch fv := first.(type) {
	case Tuple:
		if sv, ok := second.(Tuple); ok {
			return sf.decomposeTuples(s, c, fv, sv, kind)
		}
	case Function:
		if sv, ok := second.(Function); ok {
			if len(fv.Params) != len(sv.Params) {
				return solver.Error
			}
			for i := range fv.Params {
				s.AddConstraint(solver.Constraint{Kind: kind, First: fv.Params[i], Second: sv.Params[i], Locator: c.Locator})
			}
			s.AddConstraint(solver.Constraint{Kind: kind, First: fv.Result, Second: sv.Result, Locator: c.Locator})
			return solver.Solved
		}
	case Class:
		if sv, ok := second.(Class); ok && fv.Name == sv.Name && len(fv.Args) == len(sv.Args) {
			for i := range fv.Args {
				s.AddConstraint(solver.Constraint{Kind: kind, First: fv.Args[i], Second: sv.Args[i], Locator: c.Locator})
			}
			return solver.Solved
		}
	}
	return solver.Error
}

func (sf *Simplify) decomposeTuples(s *solver.System, c *solver.Constraint, first, second Tuple, kind solver.Kind) solver.Outcome {
	if len(first.Elements) != len(second.Elements) {
		return solver.Error
	}
	for i := range first.Elements {
		restriction := solver.RestrictionNone
		if first.Elements[i].Label != second.Elements[i].Label {
			restriction = solver.RestrictionTupleToTuple
		}
		s.AddConstraint(solver.Constraint{
			Kind: kind, First: first.Elements[i].Type, Second: second.Elements[i].Type,
			Restriction: restriction, Locator: c.Locator,
		})
	}
	return solver.Solved
}

func (sf *Simplify) simplifyApplicableFunction(s *solver.System, c *solver.Constraint) solver.Outcome {
	args := sf.K.Simplify(c.First, s)
	callee := sf.K.Simplify(c.Second, s)

	if _, ok := sf.K.AsBareVar(callee); ok {
		return solver.Unsolved
	}
	fn, ok := callee.(Function)
	if !ok {
		return solver.Error
	}
	argTuple, ok := args.(Tuple)
	if !ok {
		return solver.Error
	}
	if len(argTuple.Elements) != len(fn.Params) {
		return solver.Error
	}
	for i, el := range argTuple.Elements {
		s.AddConstraint(solver.Constraint{Kind: solver.KindConversion, First: el.Type, Second: fn.Params[i], Locator: c.Locator})
	}
	return solver.Solved
}

func (sf *Simplify) simplifyConformsTo(s *solver.System, c *solver.Constraint) solver.Outcome {
	first := sf.K.Simplify(c.First, s)
	if _, ok := sf.K.AsBareVar(first); ok {
		return solver.Unsolved
	}
	name, ok := nameOf(first)
	if !ok {
		return solver.Error
	}
	for _, p := range sf.Conformances[name] {
		if p == c.Protocol {
			return solver.Solved
		}
	}
	return solver.Error
}

// simplifyTypeProperty checks one of the named structural predicates a
// TypeProperty constraint's Protocol field may carry (§4.1/§4.5): unlike
// ConformsTo, these inspect the term's own shape rather than a
// conformance table.
func (sf *Simplify) simplifyTypeProperty(s *solver.System, c *solver.Constraint) solver.Outcome {
	first := sf.K.Simplify(c.First, s)
	if _, ok := sf.K.AsBareVar(first); ok {
		return solver.Unsolved
	}
	var ok bool
	switch c.Protocol {
	case "IsClass":
		_, ok = first.(Class)
	case "IsOptional":
		_, ok = first.(Optional)
	case "IsFunction":
		_, ok = first.(Function)
	case "IsTuple":
		_, ok = first.(Tuple)
	case "IsLValue":
		_, ok = first.(ImplicitLValue)
	case "IsConcrete":
		ok = len(sf.K.FreeVars(first)) == 0
	default:
		ok = false
	}
	if ok {
		return solver.Solved
	}
	return solver.Error
}

func (sf *Simplify) simplifyMember(s *solver.System, c *solver.Constraint) solver.Outcome {
	first := sf.K.Simplify(c.First, s)
	if _, ok := sf.K.AsBareVar(first); ok {
		return solver.Unsolved
	}
	name, ok := nameOf(first)
	if !ok {
		return solver.Error
	}
	memberType, ok := sf.Members[name][c.Protocol]
	if !ok {
		return solver.Error
	}
	s.AddConstraint(solver.Constraint{Kind: solver.KindEqual, First: memberType, Second: c.Second, Locator: c.Locator})
	return solver.Solved
}
