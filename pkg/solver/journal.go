package solver

// journalEntry is one reversible mutation: the variable touched and its
// full previous state, captured before the mutation was applied.
type journalEntry struct {
	id   VarID
	prev varState
}

// journal is an append-only stack of journalEntry, restorable from any
// point back to a previously recorded length. It is the sole channel
// through which variable state may be mutated during search (§4.2).
type journal struct {
	entries []journalEntry
}

func (j *journal) len() int {
	return len(j.entries)
}

// record snapshots id's current state before the caller mutates it.
func (j *journal) record(s *System, id VarID) {
	j.entries = append(j.entries, journalEntry{id: id, prev: s.vars[id]})
}

// restoreTo replays entries from the top down to length n, restoring
// each variable's previous state, then truncates the journal to n.
func (j *journal) restoreTo(s *System, n int) {
	for i := len(j.entries) - 1; i >= n; i-- {
		e := j.entries[i]
		s.vars[e.id] = e.prev
	}
	j.entries = j.entries[:n]
}
