package wasm

// ModuleInstanceInternal is the JIT-visible internal record of an
// Instance: raw pointer arrays to every function and memory slot, sized
// to the owning Module's declared counts.
//
// Field order is part of the ABI (spec.md §6) — do not reorder.
type ModuleInstanceInternal struct {
	MemoryTable []*MemoryInternal
	FuncTable   []*LinkedFuncInternal
	Container   *Instance
}

// Instance is a fully linked Module: every import resolved, every defined
// function wired to a LinkedFunction, every defined memory allocated.
//
// An Instance exclusively owns its LinkedFunctions and unshared
// LinearMemories; it shares ownership of shared memories with its Module.
// It holds non-owning references to whatever it imported from other
// instances — the caller must destroy instances before the modules they
// import from (spec.md §3/§5; this is a contract, not a runtime guard).
type Instance struct {
	Module   *Module
	Funcs    []*LinkedFunction
	Memories []*LinearMemory
	Exports  []Export
	Internal ModuleInstanceInternal
}

var _ ImportModule = (*Instance)(nil)

// Instantiate performs the full link described in spec.md §4.G: resolve
// imports against env, allocate per-instance state for every defined
// slot, and wire both the managed slices and the raw Internal tables.
//
// All LinkErrors abort the link immediately; on error the returned
// Instance is nil and must not be observed by the caller.
func Instantiate(module *Module, env *ImportEnvironment) (*Instance, error) {
	inst := &Instance{
		Module:   module,
		Exports:  append([]Export(nil), module.Exports...),
		Funcs:    make([]*LinkedFunction, len(module.Funcs)),
		Memories: make([]*LinearMemory, len(module.Memories)),
	}
	inst.Internal = ModuleInstanceInternal{
		FuncTable:   make([]*LinkedFuncInternal, len(module.Funcs)),
		MemoryTable: make([]*MemoryInternal, len(module.Memories)),
		Container:   inst,
	}

	seenFuncSlot := make([]bool, len(module.Funcs))
	seenMemSlot := make([]bool, len(module.Memories))

	for _, imp := range module.Imports {
		switch imp.Kind {
		case KindFunc:
			if imp.Idx >= uint32(len(module.Funcs)) {
				PanicFatal("Instantiate: function import index out of range")
			}
			if seenFuncSlot[imp.Idx] {
				PanicFatal("Instantiate: two imports target the same function slot")
			}
			seenFuncSlot[imp.Idx] = true

			if err := inst.resolveFuncImport(module, imp, env); err != nil {
				return nil, err
			}

		case KindMemory:
			if imp.Idx >= uint32(len(module.Memories)) {
				PanicFatal("Instantiate: memory import index out of range")
			}
			if seenMemSlot[imp.Idx] {
				PanicFatal("Instantiate: two imports target the same memory slot")
			}
			seenMemSlot[imp.Idx] = true

			if err := inst.resolveMemoryImport(module, imp, env); err != nil {
				return nil, err
			}

		default:
			return nil, linkErrorf(imp, WrongKind, "kind %s is not supported by the linker", KindName(imp.Kind))
		}
	}

	for idx, uf := range module.Funcs {
		if uf == nil {
			continue // import slot, resolved above
		}
		lf := newLinkedFunction(uf, inst)
		inst.Funcs[idx] = lf
		inst.Internal.FuncTable[idx] = &lf.Internal
	}

	for idx, am := range module.Memories {
		if am.IsImport {
			continue // resolved above
		}
		var mem *LinearMemory
		if am.IsShared {
			mem = module.SharedMemories[idx]
		} else {
			var err error
			mem, err = newLinearMemory(am, module.sandbox.logger)
			if err != nil {
				return nil, err
			}
		}
		inst.Memories[idx] = mem
		inst.Internal.MemoryTable[idx] = &mem.Internal
	}

	return inst, nil
}

func (inst *Instance) resolveFuncImport(module *Module, imp Import, env *ImportEnvironment) error {
	found, err := env.FindFunc(imp)
	if err != nil {
		return err
	}
	if found == nil {
		return linkErrorf(imp, NotFound, "no export named %q in module %q", imp.Name, imp.ModuleName)
	}
	expected := module.ImportFuncSigs[imp.Idx]
	if found.Sig() != expected {
		return linkErrorf(imp, WrongFunctionSignature, "expected %s, got %s", expected, found.Sig())
	}
	inst.Funcs[imp.Idx] = found
	inst.Internal.FuncTable[imp.Idx] = &found.Internal
	return nil
}

func (inst *Instance) resolveMemoryImport(module *Module, imp Import, env *ImportEnvironment) error {
	expected := module.Memories[imp.Idx]

	found, err := env.FindMemory(imp)
	if err != nil {
		return err
	}
	if found == nil {
		return linkErrorf(imp, NotFound, "no export named %q in module %q", imp.Name, imp.ModuleName)
	}

	if found.IsShared() != expected.IsShared {
		if expected.IsShared {
			return linkErrorf(imp, SharedMismatch, "expected a shared memory, got unshared")
		}
		return linkErrorf(imp, SharedMismatch, "expected an unshared memory, got shared")
	}
	if found.InitialSizePages() < expected.InitialPages {
		return linkErrorf(imp, MemoryTooSmall, "expected at least %d initial pages, got %d",
			expected.InitialPages, found.InitialSizePages())
	}
	if expected.MaxPages != MemoryMaxPagesUnbounded {
		if found.MaxCapacityPages() == MemoryMaxPagesUnbounded || found.MaxCapacityPages() > expected.MaxPages {
			return linkErrorf(imp, MemoryMaxTooLarge, "expected max <= %d pages, got unbounded or larger", expected.MaxPages)
		}
	}

	inst.Memories[imp.Idx] = found
	inst.Internal.MemoryTable[imp.Idx] = &found.Internal
	return nil
}

// FindExport does a linear scan of inst.Exports by name, returning the
// first match — export names need not be unique, and first-wins is the
// defined behavior here (spec.md §4.G).
func (inst *Instance) FindExport(name string) (*Export, bool) {
	for i := range inst.Exports {
		if inst.Exports[i].Name == name {
			return &inst.Exports[i], true
		}
	}
	return nil, false
}

// FindFunc implements ImportModule: it resolves a downstream Import
// against this Instance's exports.
func (inst *Instance) FindFunc(imp Import) (*LinkedFunction, error) {
	exp, ok := inst.FindExport(imp.Name)
	if !ok {
		return nil, nil
	}
	if exp.Kind != KindFunc {
		return nil, linkErrorf(imp, WrongKind, "expected func, but found %s", KindName(exp.Kind))
	}
	return inst.Funcs[exp.Idx], nil
}

// FindMemory is FindFunc's counterpart for memories.
func (inst *Instance) FindMemory(imp Import) (*LinearMemory, error) {
	exp, ok := inst.FindExport(imp.Name)
	if !ok {
		return nil, nil
	}
	if exp.Kind != KindMemory {
		return nil, linkErrorf(imp, WrongKind, "expected memory, but found %s", KindName(exp.Kind))
	}
	return inst.Memories[exp.Idx], nil
}

// Close is a placeholder documenting the destruction-ordering contract of
// spec.md §3/§5: an Instance must be dropped before any Module it
// imports from. This core does not enforce that at runtime (doing so
// would require reference counts on every JIT-visible internal, at a
// real cost on the hot path), so Close is a no-op — it exists so callers
// have a single, named place to hang that discipline on.
func (inst *Instance) Close() {}
