// Package fixtures builds small, named constraint systems over
// pkg/kernel's concrete types, one per seed scenario this repo's search
// behavior is checked against. Each fixture returns a ready-to-solve
// *solver.System plus enough of its own setup (the kernel and the
// variables it allocated) for a test to inspect the result.
package fixtures

import (
	"constraintlab/pkg/kernel"
	"constraintlab/pkg/solver"
	"constraintlab/pkg/typeterm"
)

// baseKernel returns a Kernel configured with a small, fixed type
// universe shared by every fixture: a numeric tower, a couple of
// classes, and one protocol with a literal default.
func baseKernel() (*kernel.Kernel, kernel.Conformances, kernel.Members) {
	k := kernel.NewKernel()
	k.DirectSupers["Int"] = []string{"Numeric"}
	k.DirectSupers["Double"] = []string{"Numeric"}
	k.DirectSupers["Numeric"] = []string{"Any"}
	k.DirectSupers["String"] = []string{"Any"}
	k.DirectSupers["Widget"] = []string{"Any"}
	k.DirectSupers["Button"] = []string{"Widget"}

	k.LiteralDefaults["IntegerLiteral"] = kernel.Class{Name: "Int"}
	k.LiteralAlternatives["IntegerLiteral"] = []typeterm.Term{kernel.Class{Name: "Double"}}

	conformances := kernel.Conformances{
		"Int":    {"Equatable", "IntegerLiteral"},
		"Double": {"Equatable"},
	}
	members := kernel.Members{}
	return k, conformances, members
}

// Fixture bundles a ready System with the kernel it was built against,
// so a test can both call Solve and inspect intermediate state.
type Fixture struct {
	Name   string
	System *solver.System
	Kernel *kernel.Kernel
	Vars   map[string]solver.VarID
}

func newFixture(name string) (*Fixture, *kernel.Simplify) {
	k, conformances, members := baseKernel()
	sf := &kernel.Simplify{K: k, Conformances: conformances, Members: members}
	sys := solver.New(k, sf.Func(), nil)
	return &Fixture{Name: name, System: sys, Kernel: k, Vars: map[string]solver.VarID{}}, sf
}

// SingleBind: one variable directly equated to a concrete type. Solve
// should bind it in one step with a zero score.
func SingleBind() *Fixture {
	f, _ := newFixture("single-bind")
	v := f.System.NewVar(false)
	f.Vars["v"] = v
	f.System.AddConstraint(solver.Constraint{
		Kind: solver.KindEqual, First: kernel.VarRef{ID: v}, Second: kernel.Class{Name: "Int"},
	})
	return f
}

// LiteralDefault: a variable constrained only by ConformsTo a
// literal-default protocol, with no relational constraint to pin it.
// Solve must fall back to DefaultType and bump ScoreLiteralDefault.
func LiteralDefault() *Fixture {
	f, _ := newFixture("literal-default")
	v := f.System.NewVar(false)
	f.Vars["v"] = v
	f.System.AddConstraint(solver.Constraint{
		Kind: solver.KindConformsTo, First: kernel.VarRef{ID: v}, Protocol: "IntegerLiteral",
	})
	return f
}

// SubtypeChain: a variable bounded below by Button and above by Widget
// in the lattice Button <: Widget <: Any. Both bounds are direct binding
// candidates and each satisfies both constraints at a zero score, so
// Solve returns v = Button and v = Widget; the supertype-enumerated Any
// scores an implicit conversion and is pruned.
func SubtypeChain() *Fixture {
	f, _ := newFixture("subtype-chain")
	v := f.System.NewVar(false)
	f.Vars["v"] = v
	f.System.AddConstraint(solver.Constraint{
		Kind: solver.KindSubtype, First: kernel.Class{Name: "Button"}, Second: kernel.VarRef{ID: v},
	})
	f.System.AddConstraint(solver.Constraint{
		Kind: solver.KindSubtype, First: kernel.VarRef{ID: v}, Second: kernel.Class{Name: "Widget"},
	})
	return f
}

// DisjunctionOverload: two overload candidates for the same call, one
// equating v with Int directly and one converting Int to v. Binding v to
// Int satisfies the conversion as an identity, which adds no score, so
// both alternatives yield v = Int at a zero score and Solve returns both
// tied solutions, each recording its own candidate.
func DisjunctionOverload() *Fixture {
	f, _ := newFixture("disjunction-overload")
	v := f.System.NewVar(false)
	f.Vars["v"] = v

	exact := &solver.Constraint{Kind: solver.KindEqual, First: kernel.VarRef{ID: v}, Second: kernel.Class{Name: "Int"}, Candidate: "exact"}
	viaConversion := &solver.Constraint{Kind: solver.KindConversion, First: kernel.Class{Name: "Int"}, Second: kernel.VarRef{ID: v}, Candidate: "viaConversion"}

	f.System.AddConstraint(solver.Constraint{
		Kind:   solver.KindDisjunction,
		Nested: []*solver.Constraint{exact, viaConversion},
	})
	return f
}

// ComponentSplit: two variables related only to each other's side of the
// constraint graph, with no constraint connecting the two pairs — a
// single connected-component check should report two components.
func ComponentSplit() *Fixture {
	f, _ := newFixture("component-split")
	a := f.System.NewVar(false)
	b := f.System.NewVar(false)
	f.Vars["a"] = a
	f.Vars["b"] = b
	f.System.AddConstraint(solver.Constraint{Kind: solver.KindEqual, First: kernel.VarRef{ID: a}, Second: kernel.Class{Name: "Int"}})
	f.System.AddConstraint(solver.Constraint{Kind: solver.KindEqual, First: kernel.VarRef{ID: b}, Second: kernel.Class{Name: "String"}})
	return f
}

// FreeVariable: one variable bound to Int, a second left entirely
// unconstrained, exercising the three FreeVariablePolicy branches in
// §4.7: Disallow should fail the whole search over the unconstrained
// variable alone, Allow should succeed leaving it out of Bindings, and
// GenericParameters should succeed with it assigned a fresh GenericParam.
func FreeVariable() *Fixture {
	f, _ := newFixture("free-variable")
	bound := f.System.NewVar(false)
	free := f.System.NewVar(false)
	f.Vars["bound"] = bound
	f.Vars["free"] = free
	f.System.AddConstraint(solver.Constraint{
		Kind: solver.KindEqual, First: kernel.VarRef{ID: bound}, Second: kernel.Class{Name: "Int"},
	})
	return f
}

// LValueConversion: v cannot bind to l-value types (NewVar(false)) and is
// constrained to be a supertype of an ImplicitLValue(Int) term,
// exercising §4.6a's "read an l-value candidate down to its r-value
// element type first" rule together with the ImplicitLValue
// DirectSupertypes case: the candidate collapses to Int before v is ever
// considered for binding.
func LValueConversion() *Fixture {
	f, _ := newFixture("lvalue-conversion")
	v := f.System.NewVar(false)
	f.Vars["v"] = v
	f.System.AddConstraint(solver.Constraint{
		Kind: solver.KindSubtype, First: kernel.ImplicitLValue{Element: kernel.Class{Name: "Int"}}, Second: kernel.VarRef{ID: v},
	})
	return f
}

// FailureRollback: v is constrained to be both a supertype of Button and
// of Widget, and simultaneously a subtype of Button. Since Widget is
// already Button's strict supertype, no binding satisfies all three —
// every candidate the search tries (Button, Widget, and the
// supertype-enumerated Any) fails partway through re-simplification, so
// Solve must exhaust every candidate, rolling each failed attempt back
// in turn, before finally reporting no solution.
func FailureRollback() *Fixture {
	f, _ := newFixture("failure-rollback")
	v := f.System.NewVar(false)
	f.Vars["v"] = v
	f.System.AddConstraint(solver.Constraint{Kind: solver.KindSubtype, First: kernel.Class{Name: "Button"}, Second: kernel.VarRef{ID: v}})
	f.System.AddConstraint(solver.Constraint{Kind: solver.KindSubtype, First: kernel.Class{Name: "Widget"}, Second: kernel.VarRef{ID: v}})
	f.System.AddConstraint(solver.Constraint{Kind: solver.KindSubtype, First: kernel.VarRef{ID: v}, Second: kernel.Class{Name: "Button"}})
	return f
}
