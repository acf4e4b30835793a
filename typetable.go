package wasm

// TypeTable interns FuncSig values for a single Sandbox, granting
// pointer-equality on signatures: any two handles obtained from the same
// table compare equal by identity iff the signatures they name are
// structurally equal.
//
// Once issued, a handle (a *FuncSig) remains valid and uniquely identifies
// its signature for the lifetime of the table; re-keying the index never
// relocates an already-issued entry.
//
// See spec.md §4.B. A linear scan would satisfy the spec; this
// implementation hash-indexes on FuncSig.String() to avoid the O(n) cost
// as sandboxes accumulate signatures over a module's lifetime.
type TypeTable struct {
	byKey map[string][]*FuncSig
	n     int
}

// NewTypeTable returns an empty TypeTable.
func NewTypeTable() *TypeTable {
	return &TypeTable{byKey: map[string][]*FuncSig{}}
}

// Intern returns a stable handle for sig: repeated calls with structurally
// equal signatures return the identical *FuncSig pointer.
//
// The argument is never retained by reference — a defensive copy is made
// so that later mutation of the caller's slices cannot corrupt the table.
func (t *TypeTable) Intern(sig *FuncSig) *FuncSig {
	key := sig.String()
	// String() is lossy: every undefined tag renders as "unknown", so
	// distinct signatures can share a key. Each key therefore holds every
	// signature issued under it, compared structurally.
	for _, existing := range t.byKey[key] {
		if existing.Equal(sig) {
			return existing
		}
	}
	owned := &FuncSig{
		Params:  append([]ValueType(nil), sig.Params...),
		Results: append([]ValueType(nil), sig.Results...),
	}
	t.byKey[key] = append(t.byKey[key], owned)
	t.n++
	return owned
}

// Len returns the number of distinct signatures interned so far.
func (t *TypeTable) Len() int {
	return t.n
}
