package kernel

import (
	"fmt"
	"strings"

	"constraintlab/pkg/typeterm"
)

// Primitive is a nullary concrete type, e.g. Int or String.
type Primitive struct {
	Name string
}

func (p Primitive) String() string { return p.Name }

// Class is a nominal type with a name; its position in the subtyping
// lattice comes from the Kernel it was built against, not from the
// value itself.
type Class struct {
	Name string
	Args []typeterm.Term
}

func (c Class) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", c.Name, strings.Join(parts, ", "))
}

// TupleElement is one labelled slot of a Tuple.
type TupleElement struct {
	Label    string
	Type     typeterm.Term
	Variadic bool
}

// Tuple is a fixed-arity (or, with a trailing Variadic element,
// variable-arity) product type.
type Tuple struct {
	Elements []TupleElement
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		suffix := ""
		if e.Variadic {
			suffix = "..."
		}
		if e.Label != "" {
			parts[i] = fmt.Sprintf("%s: %s%s", e.Label, e.Type.String(), suffix)
		} else {
			parts[i] = e.Type.String() + suffix
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Function is an ordinary function type. AutoClosure marks a
// zero-argument function implicitly wrapping its Result, usable
// directly wherever a value of Result is expected (the call being
// inserted implicitly rather than requiring the caller to invoke it).
type Function struct {
	Params      []typeterm.Term
	Result      typeterm.Term
	AutoClosure bool
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if f.AutoClosure {
		prefix = "@autoclosure "
	}
	return fmt.Sprintf("%s(%s) -> %s", prefix, strings.Join(parts, ", "), f.Result.String())
}

// Optional wraps an element type, the kernel's one built-in generic
// shape, used to exercise the OptionalToOptional restriction.
type Optional struct {
	Element typeterm.Term
}

func (o Optional) String() string { return o.Element.String() + "?" }

// GenericParam is an unsubstituted generic parameter. Kernel.Open
// replaces every GenericParam with Any; Kernel.GenericParameter creates
// fresh ones for variables left free under the GenericParameters policy.
type GenericParam struct {
	Name string
}

func (g GenericParam) String() string { return g.Name }

// VarRef is a bare reference to a solver-owned type variable embedded
// directly in a term tree.
type VarRef struct {
	ID typeterm.VarID
}

func (v VarRef) String() string { return fmt.Sprintf("$T%d", int(v.ID)) }

// ImplicitLValue wraps an element type to mark a term that names a
// storage location — a mutable variable or property reference — rather
// than a value. It is usable directly where an l-value is expected and
// implicitly read down to Element everywhere else.
type ImplicitLValue struct {
	Element typeterm.Term
}

func (v ImplicitLValue) String() string { return "lvalue " + v.Element.String() }
