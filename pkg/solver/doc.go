// Package solver implements the constraint-solving core of a type
// checker: backtracking search over assignments to type variables that
// satisfy a set of typing constraints, scored so the best satisfying
// assignment can be chosen when more than one exists. It consumes type
// terms only through pkg/typeterm; the host supplies the type language,
// the per-kind simplification rules, and the overload tiebreaker.
package solver
