// Package kernel is a minimal, concrete instantiation of the
// typeterm.Term/Ops contract: a handful of type constructors (primitive
// types, nominal classes with a fixed supertype lattice, tuples,
// function types, and type variable references) sufficient to drive
// every rule the solver package implements and every fixture under
// pkg/fixtures. It is not a general type-system implementation — there
// is no parser, no generic constraint solving of its own beyond what
// Ops exposes, and no user-facing syntax. Hosts with a real type
// checker implement typeterm.Ops against their own types instead.
package kernel
