package solver_test

import (
	"testing"

	"constraintlab/pkg/fixtures"
	"constraintlab/pkg/solver"
)

func TestSingleBind(t *testing.T) {
	f := fixtures.SingleBind()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 1 {
		t.Fatalf("want 1 solution, got %d", len(sols))
	}
	ty, ok := sols[0].TypeOf(f.Vars["v"])
	if !ok || ty.String() != "Int" {
		t.Fatalf("want v bound to Int, got %v ok=%v", ty, ok)
	}
	if sols[0].Score != (solver.Score{}) {
		t.Fatalf("want zero score, got %v", sols[0].Score)
	}
}

func TestLiteralDefault(t *testing.T) {
	f := fixtures.LiteralDefault()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("want at least one solution")
	}
	ty, ok := sols[0].TypeOf(f.Vars["v"])
	if !ok || ty.String() != "Int" {
		t.Fatalf("want v defaulted to Int, got %v ok=%v", ty, ok)
	}
	if sols[0].Score[solver.ScoreLiteralDefault] == 0 {
		t.Fatalf("want ScoreLiteralDefault bumped, got %v", sols[0].Score)
	}
}

func TestSubtypeChain(t *testing.T) {
	f := fixtures.SubtypeChain()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("want at least one solution")
	}
	ty, ok := sols[0].TypeOf(f.Vars["v"])
	if !ok {
		t.Fatal("want v bound")
	}
	if ty.String() != "Widget" && ty.String() != "Button" {
		t.Fatalf("want v bound to Widget or Button, got %v", ty)
	}
}

func TestDisjunctionOverload(t *testing.T) {
	f := fixtures.DisjunctionOverload()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 2 {
		t.Fatalf("want 2 tied solutions, one per alternative, got %d", len(sols))
	}
	wantCandidates := []string{"exact", "viaConversion"}
	for i, sol := range sols {
		ty, ok := sol.TypeOf(f.Vars["v"])
		if !ok || ty.String() != "Int" {
			t.Fatalf("want v bound to Int in every tied solution, got %v ok=%v", ty, ok)
		}
		if len(sol.Overloads) != 1 {
			t.Fatalf("want exactly one resolved overload choice, got %v", sol.Overloads)
		}
		if sol.Overloads[0].Candidate != wantCandidates[i] {
			t.Fatalf("want solution %d to record candidate %q, got %v", i, wantCandidates[i], sol.Overloads[0].Candidate)
		}
	}
}

func TestLValueConversion(t *testing.T) {
	f := fixtures.LValueConversion()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("want at least one solution")
	}
	ty, ok := sols[0].TypeOf(f.Vars["v"])
	if !ok || ty.String() != "Int" {
		t.Fatalf("want v converted down to Int, got %v ok=%v", ty, ok)
	}
}

func TestComponentSplit(t *testing.T) {
	f := fixtures.ComponentSplit()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("want at least one solution")
	}
	if sols[0].NumComponents != 2 {
		t.Fatalf("want 2 components, got %d", sols[0].NumComponents)
	}
	ca, ok := sols[0].Components[f.System.Representative(f.Vars["a"])]
	if !ok {
		t.Fatal("var a missing from component map")
	}
	cb, ok := sols[0].Components[f.System.Representative(f.Vars["b"])]
	if !ok {
		t.Fatal("var b missing from component map")
	}
	if ca == cb {
		t.Fatalf("want a and b in different components, both got %d", ca)
	}
}

func TestFreeVariablePolicyDisallow(t *testing.T) {
	f := fixtures.FreeVariable()
	_, err := f.System.Solve(solver.Disallow)
	if err == nil {
		t.Fatal("want an error when a free variable remains under Disallow")
	}
}

func TestFreeVariablePolicyAllow(t *testing.T) {
	f := fixtures.FreeVariable()
	sols, err := f.System.Solve(solver.Allow)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("want at least one solution")
	}
	sol := sols[0]
	if _, ok := sol.TypeOf(f.Vars["free"]); ok {
		t.Fatal("want the free variable to have no binding under Allow")
	}
	found := false
	for _, v := range sol.FreeVars {
		if f.System.Representative(v) == f.System.Representative(f.Vars["free"]) {
			found = true
		}
	}
	if !found {
		t.Fatal("want the free variable listed in Solution.FreeVars")
	}
}

func TestFreeVariablePolicyGenericParameters(t *testing.T) {
	f := fixtures.FreeVariable()
	sols, err := f.System.Solve(solver.GenericParameters)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("want at least one solution")
	}
	sol := sols[0]
	ty, ok := sol.TypeOf(f.Vars["free"])
	if !ok {
		t.Fatal("want the free variable assigned a generic parameter")
	}
	if ty.String() == "" {
		t.Fatal("want a non-empty generic parameter name")
	}
	if len(sol.FreeVars) != 0 {
		t.Fatalf("want no remaining FreeVars under GenericParameters, got %v", sol.FreeVars)
	}
}

func TestFailureRollback(t *testing.T) {
	f := fixtures.FailureRollback()
	v := f.Vars["v"]

	_, err := f.System.Solve(solver.Allow)
	if err == nil {
		t.Fatal("want an error, got a solution")
	}

	if _, ok := f.System.FixedType(v); ok {
		t.Fatal("want v left unbound after a fully failed search")
	}
}

func TestScoreOrdering(t *testing.T) {
	var cheap, expensive solver.Score
	expensive[solver.ScoreImplicitConversion] = 1
	if !cheap.Less(expensive) {
		t.Fatalf("want %v less than %v", cheap, expensive)
	}
	if expensive.Less(cheap) {
		t.Fatalf("want %v not less than %v", expensive, cheap)
	}
	if cheap.Compare(cheap) != 0 {
		t.Fatal("want equal scores to compare equal")
	}
}

func TestFindBestSolutionRequiresUniqueWinner(t *testing.T) {
	tied := []solver.Solution{{Score: solver.Score{}}, {Score: solver.Score{}}}
	if _, ok := solver.FindBestSolution(tied, false); ok {
		t.Fatal("want ok=false on a tie when minimize is false")
	}
	if _, ok := solver.FindBestSolution(tied, true); !ok {
		t.Fatal("want ok=true when minimize is true even on a tie")
	}
}
