package kernel_test

import (
	"testing"

	"constraintlab/pkg/kernel"
	"constraintlab/pkg/typeterm"
)

func newTestKernel() *kernel.Kernel {
	k := kernel.NewKernel()
	k.DirectSupers["Button"] = []string{"Widget"}
	k.DirectSupers["Widget"] = []string{"Any"}
	return k
}

func TestDirectSupertypesSortedAndDeterministic(t *testing.T) {
	k := kernel.NewKernel()
	k.DirectSupers["Shape"] = []string{"Zebra", "Alpha"}
	got := k.DirectSupertypes(kernel.Class{Name: "Shape"})
	if len(got) != 2 || got[0].String() != "Alpha" || got[1].String() != "Zebra" {
		t.Fatalf("want [Alpha Zebra], got %v", got)
	}
}

func TestAsBareVar(t *testing.T) {
	k := newTestKernel()
	v, ok := k.AsBareVar(kernel.VarRef{ID: 3})
	if !ok || v != 3 {
		t.Fatalf("want bare var 3, got %v ok=%v", v, ok)
	}
	if _, ok := k.AsBareVar(kernel.Class{Name: "Int"}); ok {
		t.Fatal("want Class not to be a bare var")
	}
}

func TestAsSingleElementTuple(t *testing.T) {
	k := newTestKernel()
	single := kernel.Tuple{Elements: []kernel.TupleElement{{Type: kernel.Class{Name: "Int"}}}}
	elem, ok := k.AsSingleElementTuple(single)
	if !ok || elem.String() != "Int" {
		t.Fatalf("want Int, got %v ok=%v", elem, ok)
	}

	pair := kernel.Tuple{Elements: []kernel.TupleElement{{Type: kernel.Class{Name: "Int"}}, {Type: kernel.Class{Name: "String"}}}}
	if _, ok := k.AsSingleElementTuple(pair); ok {
		t.Fatal("want a 2-tuple to not be a single-element tuple")
	}

	variadic := kernel.Tuple{Elements: []kernel.TupleElement{{Type: kernel.Class{Name: "Int"}, Variadic: true}}}
	if _, ok := k.AsSingleElementTuple(variadic); ok {
		t.Fatal("want a variadic single element to not count")
	}
}

func TestOpenSubstitutesGenericParams(t *testing.T) {
	k := newTestKernel()
	open := k.Open(kernel.Class{Name: "Array", Args: []typeterm.Term{kernel.GenericParam{Name: "Element"}}})
	if open.String() != "Array<Any>" {
		t.Fatalf("want Array<Any>, got %s", open.String())
	}
}

func TestFreeVarsCollectsNestedVarRefs(t *testing.T) {
	k := newTestKernel()
	term := kernel.Tuple{Elements: []kernel.TupleElement{
		{Type: kernel.VarRef{ID: 1}},
		{Type: kernel.Function{Params: []typeterm.Term{kernel.VarRef{ID: 2}}, Result: kernel.Class{Name: "Int"}}},
	}}
	fv := k.FreeVars(term)
	if len(fv) != 2 {
		t.Fatalf("want 2 free vars, got %v", fv)
	}
}

func TestCanonicalDistinguishesShapes(t *testing.T) {
	k := newTestKernel()
	a := k.Canonical(kernel.Class{Name: "Int"})
	b := k.Canonical(kernel.Primitive{Name: "Int"})
	if a == b {
		t.Fatal("want Class and Primitive with the same name to canonicalize differently")
	}
}
