package solver

import "constraintlab/pkg/typeterm"

// OverloadChoice records one candidate chosen for an overloaded
// expression: its opened type after generic substitution.
type OverloadChoice struct {
	Locator    typeterm.Locator
	Candidate  any
	OpenedType typeterm.Term
}

// overloadNode is one cons-cell of the persistent stack of resolved
// overloads (§3, §9: "model as a persistent stack ... rollback stores
// only the previous head"). Nodes are never mutated after creation, so
// they may be shared freely across scopes; a scope only needs to
// remember and later restore the stack's head pointer.
type overloadNode struct {
	prev   *overloadNode
	choice OverloadChoice
}

// pushOverloadChoice records a resolved overload choice as the new stack
// head. Callers restore System.resolvedOverloads to an earlier
// head on scope exit; the old nodes remain allocated but unreferenced.
func (s *System) pushOverloadChoice(choice OverloadChoice) {
	s.resolvedOverloads = &overloadNode{prev: s.resolvedOverloads, choice: choice}
}

// overloadChoices walks the persistent stack from the current head,
// returning choices in the order they were pushed (oldest first).
func (s *System) overloadChoices() []OverloadChoice {
	var reversed []OverloadChoice
	for n := s.resolvedOverloads; n != nil; n = n.prev {
		reversed = append(reversed, n.choice)
	}
	out := make([]OverloadChoice, len(reversed))
	for i, c := range reversed {
		out[len(reversed)-1-i] = c
	}
	return out
}
