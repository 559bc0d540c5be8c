// Package typeterm defines the narrow interface the constraint solver
// needs from a host's type representation. It holds no concrete types:
// parsing, AST construction, and the type language itself belong to the
// host (see pkg/kernel for a minimal instantiation used by this repo's
// own tests and CLI).
package typeterm

// VarID identifies a type variable within a constraint system. The
// solver assigns these; hosts never construct them directly except when
// embedding one in a Term via a bare-variable reference.
type VarID int

// Term is an immutable value in the host's type language. The solver
// never inspects a Term's structure directly; it only ever calls back
// into Ops.
type Term interface {
	String() string
}

// Subst resolves the solver's current binding state. Hosts implementing
// Ops.Simplify must call back into the Subst passed to them rather than
// caching representative/fixed-type lookups, since the solver mutates
// this state between calls.
type Subst interface {
	Representative(VarID) VarID
	FixedType(VarID) (Term, bool)
}

// Ops supplies the type-term operations the solver needs (§4.1).
type Ops interface {
	// Simplify returns t with every variable replaced by its deepest
	// fixed type under s, recursively. Must terminate.
	Simplify(t Term, s Subst) Term

	// FreeVars returns the set of variables t mentions, for the occurs
	// check.
	FreeVars(t Term) []VarID

	// Canonical returns a canonicalized form for hashing and exact-match
	// dedup.
	Canonical(t Term) string

	// DirectSupertypes returns the direct supertypes of t in the
	// subtyping lattice: zero or more terms, order not significant but
	// deterministic.
	DirectSupertypes(t Term) []Term

	// DefaultType returns the default concrete type for a protocol
	// identity, if it has one.
	DefaultType(protocol string) (Term, bool)

	// AlternativeLiteralTypes returns additional types to try for a
	// known literal protocol, in order.
	AlternativeLiteralTypes(protocol string) []Term

	// AsBareVar reports whether t is nothing but a reference to a type
	// variable.
	AsBareVar(t Term) (VarID, bool)

	// AsSingleElementTuple reports whether t is a single-element,
	// non-variadic labelled tuple, returning its element type.
	AsSingleElementTuple(t Term) (Term, bool)

	// AsImplicitLValue reports whether t names a storage location rather
	// than a value, returning the r-value element type it implicitly
	// reads to wherever an l-value cannot be bound directly.
	AsImplicitLValue(t Term) (Term, bool)

	// Open returns a fresh generic specialization of t, used when
	// binding a literal default type.
	Open(t Term) Term

	// GenericParameter returns a fresh generic parameter placeholder
	// term carrying the given monotonically increasing index, used by
	// finalize.go under the GenericParameters free-variable policy.
	GenericParameter(index int) Term
}

// PathElement is one step of a Locator's path into the source AST.
type PathElement struct {
	Kind string
}

// Well-known path element kinds the solver's heuristics look for.
const (
	PathInterpolationArgument = "InterpolationArgument"
)

// Locator is a stable, opaque identifier for a constraint's source
// position. The solver uses it only as a map key and for the
// InterpolationArgument heuristic in §4.6b; it never inspects source
// positions itself.
type Locator struct {
	Label string
	Path  []PathElement
}

// LastPathKind returns the Kind of the final path element, or "" if the
// path is empty.
func (l Locator) LastPathKind() string {
	if len(l.Path) == 0 {
		return ""
	}
	return l.Path[len(l.Path)-1].Kind
}

func (l Locator) String() string {
	if l.Label != "" {
		return l.Label
	}
	return "<locator>"
}
