package wasm

// Module is the per-Sandbox lowering of an AbstractModule (spec.md §4.E):
// signatures are interned in the Sandbox's TypeTable, and shared defined
// memories are eagerly allocated so every Instance of this Module shares
// the identical LinearMemory.
//
// A Module is exclusively owned by its caller; it shares ownership of its
// SharedMemories with every Instance built from it, and those memories
// survive until the last owner (the Module or any of its Instances) is
// dropped.
type Module struct {
	Imports  []Import
	Exports  []Export
	Memories []AbstractMemory

	// Funcs is index-correlated with Memories' sibling, the abstract
	// function slots: nil for imports, an UnlinkedFunction for definitions.
	Funcs []*UnlinkedFunction
	// ImportFuncSigs is index-correlated with Funcs: the interned
	// expected signature for an imported function slot, nil for a
	// defined slot.
	ImportFuncSigs []*FuncSig

	// SharedMemories is index-correlated with Memories: the eagerly
	// allocated shared memory for a non-import shared slot, nil
	// otherwise (including for every unshared or imported slot, which
	// are allocated per-Instance or resolved by the linker).
	SharedMemories []*LinearMemory

	sandbox *Sandbox
}

// NewModule lowers am into a Module scoped to sandbox.
//
// See spec.md §4.E for the three-step procedure this implements.
func NewModule(am *AbstractModule, sandbox *Sandbox) (*Module, error) {
	m := &Module{
		Imports:        append([]Import(nil), am.Imports...),
		Exports:        append([]Export(nil), am.Exports...),
		Memories:       append([]AbstractMemory(nil), am.Memories...),
		Funcs:          make([]*UnlinkedFunction, len(am.Funcs)),
		ImportFuncSigs: make([]*FuncSig, len(am.Funcs)),
		SharedMemories: make([]*LinearMemory, len(am.Memories)),
		sandbox:        sandbox,
	}

	for i, af := range am.Funcs {
		if af.IsImport {
			m.ImportFuncSigs[i] = sandbox.types.Intern(&af.Sig)
			continue
		}
		m.Funcs[i] = NewUnlinkedFunction(sandbox.types, af.Name, af.Body, &af.Sig)
	}

	for i, mem := range am.Memories {
		if mem.IsImport || !mem.IsShared {
			continue
		}
		shared, err := newLinearMemory(mem, sandbox.logger)
		if err != nil {
			return nil, err
		}
		m.SharedMemories[i] = shared
	}

	return m, nil
}

// Sandbox returns the (non-owning) Sandbox this Module was lowered
// against.
func (m *Module) Sandbox() *Sandbox {
	return m.sandbox
}
