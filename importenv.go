package wasm

// ImportModule answers lookups for one named module's worth of exports.
// FindFunc/FindMemory return nil when name is absent; if name is present
// under a different Kind, the implementation should panic via PanicFatal
// only for host-side bugs — a Kind mismatch discovered while resolving a
// real import must instead surface as a *LinkError from the caller (see
// Instance.FindFunc/FindMemory, which is what ImportEnvironment and
// MultiModule delegate to for Instance-backed modules).
type ImportModule interface {
	FindFunc(imp Import) (*LinkedFunction, error)
	FindMemory(imp Import) (*LinearMemory, error)
}

// ImportEnvironment maps a module name to the ImportModule that resolves
// imports declared against it.
type ImportEnvironment struct {
	modules map[string]ImportModule
}

// NewImportEnvironment returns an empty ImportEnvironment.
func NewImportEnvironment() *ImportEnvironment {
	return &ImportEnvironment{modules: map[string]ImportModule{}}
}

// Register binds name to module, replacing any previous binding.
func (e *ImportEnvironment) Register(name string, module ImportModule) *ImportEnvironment {
	e.modules[name] = module
	return e
}

// FindFunc looks up imp.ModuleName and delegates; returns nil, nil if the
// module name is unregistered (the caller turns that into a NotFound
// LinkError — an unregistered module is not itself an error here).
func (e *ImportEnvironment) FindFunc(imp Import) (*LinkedFunction, error) {
	mod, ok := e.modules[imp.ModuleName]
	if !ok {
		return nil, nil
	}
	return mod.FindFunc(imp)
}

// FindMemory is FindFunc's counterpart for memories.
func (e *ImportEnvironment) FindMemory(imp Import) (*LinearMemory, error) {
	mod, ok := e.modules[imp.ModuleName]
	if !ok {
		return nil, nil
	}
	return mod.FindMemory(imp)
}

// MultiModule models shadowing/fallback: an ordered list of ImportModules
// consulted in order, returning the first non-nil result.
type MultiModule struct {
	modules []ImportModule
}

// NewMultiModule returns a MultiModule trying modules in order.
func NewMultiModule(modules ...ImportModule) *MultiModule {
	return &MultiModule{modules: modules}
}

func (mm *MultiModule) FindFunc(imp Import) (*LinkedFunction, error) {
	for _, m := range mm.modules {
		f, err := m.FindFunc(imp)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return f, nil
		}
	}
	return nil, nil
}

func (mm *MultiModule) FindMemory(imp Import) (*LinearMemory, error) {
	for _, m := range mm.modules {
		mem, err := m.FindMemory(imp)
		if err != nil {
			return nil, err
		}
		if mem != nil {
			return mem, nil
		}
	}
	return nil, nil
}
