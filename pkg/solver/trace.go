package solver

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
)

// Tracer receives search events as they happen (§6), in the
// parenthesized-block style a constraint-solver trace conventionally
// uses: an attempt opens with "(trying ..." or "(assuming ...)" and
// closes with a bare ")" on failure, or a "(composed solution ...)" line
// when a parent scope accepts a child branch's success, so a transcript
// reads as a tree a human can fold by hand. Hosts inject one at
// construction; the zero value anywhere in this package is never a
// valid Tracer, use NopTracer.
type Tracer interface {
	Bind(depth int, v VarID, t interface{ String() string })
	Disjunction(depth int, c *Constraint, chosen int, total int)
	Simplify(c *Constraint, outcome Outcome)
	ExitScope(depth int, outcome Outcome, score Score)
	FoundSolution(score Score)
}

type nopTracer struct{}

func (nopTracer) Bind(int, VarID, interface{ String() string }) {}
func (nopTracer) Disjunction(int, *Constraint, int, int)        {}
func (nopTracer) Simplify(*Constraint, Outcome)                 {}
func (nopTracer) ExitScope(int, Outcome, Score)                 {}
func (nopTracer) FoundSolution(Score)                           {}

// NopTracer returns a Tracer that discards every event.
func NopTracer() Tracer { return nopTracer{} }

// verboseTracer writes the bracketed trace to w, for debugging a
// specific failing search by hand.
type verboseTracer struct {
	w io.Writer
}

// NewVerboseTracer returns a Tracer that prints every search event to w.
// Branch open and close lines are indented by scope depth; simplify and
// found-solution lines are not indented.
func NewVerboseTracer(w io.Writer) Tracer {
	return &verboseTracer{w: w}
}

func (t *verboseTracer) indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func (t *verboseTracer) Bind(depth int, v VarID, term interface{ String() string }) {
	fmt.Fprintf(t.w, "%s(trying $T%d := %s\n", t.indent(depth), int(v), term.String())
}

func (t *verboseTracer) Disjunction(depth int, c *Constraint, chosen int, total int) {
	fmt.Fprintf(t.w, "%s(assuming %s (%d/%d)\n", t.indent(depth), pretty.Sprint(c.String()), chosen+1, total)
}

func (t *verboseTracer) Simplify(c *Constraint, outcome Outcome) {
	fmt.Fprintf(t.w, "simplify %s => %v\n", pretty.Sprint(c.String()), outcome)
}

func (t *verboseTracer) ExitScope(depth int, outcome Outcome, score Score) {
	if outcome == Solved {
		fmt.Fprintf(t.w, "%s(composed solution %s)\n", t.indent(depth), score)
		return
	}
	fmt.Fprintf(t.w, "%s)\n", t.indent(depth))
}

func (t *verboseTracer) FoundSolution(score Score) {
	fmt.Fprintf(t.w, "(found solution %s)\n", score)
}
