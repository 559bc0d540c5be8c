package kernel

import (
	"fmt"
	"sort"

	"constraintlab/pkg/typeterm"
)

// Kernel is a typeterm.Ops implementation over the concrete types in
// this package. Its subtyping lattice and literal-default tables are
// configured by the caller (or loaded from pkg/config) rather than
// hardcoded, so fixtures and tests can each describe their own small
// universe of types.
type Kernel struct {
	// DirectSupers maps a nominal type's name (Class or Primitive) to
	// the names of its immediate supertypes.
	DirectSupers map[string][]string

	// LiteralDefaults maps a protocol name to the concrete type a
	// variable constrained only by ConformsTo that protocol defaults to.
	LiteralDefaults map[string]typeterm.Term

	// LiteralAlternatives maps a protocol name to additional candidate
	// types to try, in order, after the default fails.
	LiteralAlternatives map[string][]typeterm.Term
}

// NewKernel returns an empty Kernel ready to be configured by a caller
// (directly, or via pkg/config).
func NewKernel() *Kernel {
	return &Kernel{
		DirectSupers:        make(map[string][]string),
		LiteralDefaults:     make(map[string]typeterm.Term),
		LiteralAlternatives: make(map[string][]typeterm.Term),
	}
}

func nameOf(t typeterm.Term) (string, bool) {
	switch v := t.(type) {
	case Primitive:
		return v.Name, true
	case Class:
		return v.Name, true
	default:
		return "", false
	}
}

// Simplify resolves every VarRef in t to its fixed type under s,
// recursively, leaving unbound variables as VarRef.
func (k *Kernel) Simplify(t typeterm.Term, s typeterm.Subst) typeterm.Term {
	switch v := t.(type) {
	case VarRef:
		rep := s.Representative(v.ID)
		if fixed, ok := s.FixedType(rep); ok {
			return k.Simplify(fixed, s)
		}
		return VarRef{ID: rep}
	case Class:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]typeterm.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = k.Simplify(a, s)
		}
		return Class{Name: v.Name, Args: args}
	case Tuple:
		elems := make([]TupleElement, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = TupleElement{Label: e.Label, Type: k.Simplify(e.Type, s), Variadic: e.Variadic}
		}
		return Tuple{Elements: elems}
	case Function:
		params := make([]typeterm.Term, len(v.Params))
		for i, p := range v.Params {
			params[i] = k.Simplify(p, s)
		}
		return Function{Params: params, Result: k.Simplify(v.Result, s), AutoClosure: v.AutoClosure}
	case Optional:
		return Optional{Element: k.Simplify(v.Element, s)}
	case ImplicitLValue:
		return ImplicitLValue{Element: k.Simplify(v.Element, s)}
	default:
		return t
	}
}

// FreeVars returns every VarRef id reachable from t without resolving
// any of them.
func (k *Kernel) FreeVars(t typeterm.Term) []typeterm.VarID {
	var out []typeterm.VarID
	var walk func(typeterm.Term)
	walk = func(t typeterm.Term) {
		switch v := t.(type) {
		case VarRef:
			out = append(out, v.ID)
		case Class:
			for _, a := range v.Args {
				walk(a)
			}
		case Tuple:
			for _, e := range v.Elements {
				walk(e.Type)
			}
		case Function:
			for _, p := range v.Params {
				walk(p)
			}
			walk(v.Result)
		case Optional:
			walk(v.Element)
		case ImplicitLValue:
			walk(v.Element)
		}
	}
	walk(t)
	return out
}

// Canonical renders t as a deterministic string suitable for exact-match
// dedup, tagging with the term's dynamic type so distinct shapes that
// happen to format identically never collide.
func (k *Kernel) Canonical(t typeterm.Term) string {
	return fmt.Sprintf("%T:%s", t, t.String())
}

// DirectSupertypes looks up t's immediate supertypes in DirectSupers,
// returning them as Class terms sorted by name for determinism. Three
// shapes bypass the nominal lattice entirely (§4.1): an ImplicitLValue
// converts implicitly to an r-value of its Element type, a
// zero-argument AutoClosure function is usable directly as a value of
// its Result type, the call being inserted implicitly, and a
// one-element, non-variadic Tuple has its element type as supertype.
func (k *Kernel) DirectSupertypes(t typeterm.Term) []typeterm.Term {
	switch v := t.(type) {
	case ImplicitLValue:
		return []typeterm.Term{v.Element}
	case Tuple:
		if elem, ok := k.AsSingleElementTuple(v); ok {
			return []typeterm.Term{elem}
		}
	case Function:
		if v.AutoClosure && len(v.Params) == 0 {
			return []typeterm.Term{v.Result}
		}
	}
	name, ok := nameOf(t)
	if !ok {
		return nil
	}
	supers := append([]string(nil), k.DirectSupers[name]...)
	sort.Strings(supers)
	out := make([]typeterm.Term, len(supers))
	for i, s := range supers {
		out[i] = Class{Name: s}
	}
	return out
}

// DefaultType looks up protocol in LiteralDefaults.
func (k *Kernel) DefaultType(protocol string) (typeterm.Term, bool) {
	t, ok := k.LiteralDefaults[protocol]
	return t, ok
}

// AlternativeLiteralTypes looks up protocol in LiteralAlternatives.
func (k *Kernel) AlternativeLiteralTypes(protocol string) []typeterm.Term {
	return k.LiteralAlternatives[protocol]
}

// AsBareVar reports whether t is exactly a VarRef.
func (k *Kernel) AsBareVar(t typeterm.Term) (typeterm.VarID, bool) {
	if v, ok := t.(VarRef); ok {
		return v.ID, true
	}
	return 0, false
}

// AsSingleElementTuple reports whether t is a one-element, non-variadic
// Tuple, returning its element type.
func (k *Kernel) AsSingleElementTuple(t typeterm.Term) (typeterm.Term, bool) {
	tup, ok := t.(Tuple)
	if !ok || len(tup.Elements) != 1 || tup.Elements[0].Variadic {
		return nil, false
	}
	return tup.Elements[0].Type, true
}

// AsImplicitLValue reports whether t is an ImplicitLValue wrapper,
// returning the r-value element type it implicitly reads to.
func (k *Kernel) AsImplicitLValue(t typeterm.Term) (typeterm.Term, bool) {
	if v, ok := t.(ImplicitLValue); ok {
		return v.Element, true
	}
	return nil, false
}

// GenericParameter returns a fresh GenericParam named by index, e.g.
// "T0", "T1", matching the naming a source-level generic declaration
// would have gotten had the variable been bound by one instead of left
// free under the GenericParameters policy.
func (k *Kernel) GenericParameter(index int) typeterm.Term {
	return GenericParam{Name: fmt.Sprintf("T%d", index)}
}

// Open substitutes every GenericParam reachable from t with an
// unconstrained Class named "Any". The kernel has no type parameters of
// its own beyond literal-default container shapes, so this is enough to
// let a generic default like Array<Element> become a concrete type
// ready to bind.
func (k *Kernel) Open(t typeterm.Term) typeterm.Term {
	var walk func(typeterm.Term) typeterm.Term
	walk = func(t typeterm.Term) typeterm.Term {
		switch v := t.(type) {
		case GenericParam:
			return Class{Name: "Any"}
		case Class:
			if len(v.Args) == 0 {
				return v
			}
			args := make([]typeterm.Term, len(v.Args))
			for i, a := range v.Args {
				args[i] = walk(a)
			}
			return Class{Name: v.Name, Args: args}
		case Tuple:
			elems := make([]TupleElement, len(v.Elements))
			for i, e := range v.Elements {
				elems[i] = TupleElement{Label: e.Label, Type: walk(e.Type), Variadic: e.Variadic}
			}
			return Tuple{Elements: elems}
		case Function:
			params := make([]typeterm.Term, len(v.Params))
			for i, p := range v.Params {
				params[i] = walk(p)
			}
			return Function{Params: params, Result: walk(v.Result), AutoClosure: v.AutoClosure}
		case Optional:
			return Optional{Element: walk(v.Element)}
		case ImplicitLValue:
			return ImplicitLValue{Element: walk(v.Element)}
		default:
			return t
		}
	}
	return walk(t)
}
