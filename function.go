package wasm

// JitFn is the ABI a JIT backend (out of scope for this package) installs
// into an UnlinkedFuncInternal once it has compiled a function's body.
// It takes the owning LinkedFuncInternal and returns a trap code.
type JitFn func(*LinkedFuncInternal) uint32

// UnlinkedFuncInternal is the JIT-visible internal record of an
// UnlinkedFunction: a fixed, reordering-stable, standard-layout record
// readable from generated code without calling into managed routines.
//
// Field order is part of the ABI (spec.md §6) — do not reorder.
type UnlinkedFuncInternal struct {
	JitFn     JitFn
	Sig       *FuncSig
	Container *UnlinkedFunction
}

// UnlinkedFunction is a per-Module, per-Sandbox function body: a
// signature reference interned in the owning Sandbox's TypeTable, a debug
// name, and the instruction stream. A freshly constructed
// UnlinkedFunction has no JIT code — Internal.JitFn is nil until an
// interpreter/JIT layer installs it.
type UnlinkedFunction struct {
	Name     string
	Body     []byte
	Internal UnlinkedFuncInternal
}

// NewUnlinkedFunction interns sig in table and returns an UnlinkedFunction
// referencing the interned handle.
func NewUnlinkedFunction(table *TypeTable, name string, body []byte, sig *FuncSig) *UnlinkedFunction {
	f := &UnlinkedFunction{Name: name, Body: body}
	f.Internal = UnlinkedFuncInternal{Sig: table.Intern(sig), Container: f}
	return f
}

// MockUnlinkedFunction fabricates an UnlinkedFunction with only a
// signature and no body, for use in tests that don't need a real Module.
func MockUnlinkedFunction(table *TypeTable, sig *FuncSig) *UnlinkedFunction {
	return NewUnlinkedFunction(table, "", nil, sig)
}

// LinkedFuncInternal is the JIT-visible internal record of a
// LinkedFunction. Field order is part of the ABI — do not reorder.
type LinkedFuncInternal struct {
	Unlinked  *UnlinkedFuncInternal
	Module    *ModuleInstanceInternal
	Container *LinkedFunction
}

// LinkedFunction is an UnlinkedFunction bound to a specific Instance. It
// is created either by linking (the instance's own unlinked functions are
// wired into it during Instantiate) or by importing (another instance's
// LinkedFunction is reused by reference). Both paths result in a
// LinkedFunction whose Internal.Module refers to the owning Instance.
type LinkedFunction struct {
	Unlinked *UnlinkedFunction
	Instance *Instance
	Internal LinkedFuncInternal
}

// newLinkedFunction links unlinked into instance.
func newLinkedFunction(unlinked *UnlinkedFunction, instance *Instance) *LinkedFunction {
	f := &LinkedFunction{Unlinked: unlinked, Instance: instance}
	f.Internal = LinkedFuncInternal{
		Unlinked:  &unlinked.Internal,
		Module:    &instance.Internal,
		Container: f,
	}
	return f
}

// Sig returns the interned signature of the linked function.
func (f *LinkedFunction) Sig() *FuncSig {
	return f.Internal.Unlinked.Sig
}

// MockLinkedFunction fabricates a LinkedFunction with only a signature, a
// nullable Instance, and no body — for tests that exercise linking
// without a real Module.
func MockLinkedFunction(table *TypeTable, sig *FuncSig) *LinkedFunction {
	unlinked := MockUnlinkedFunction(table, sig)
	f := &LinkedFunction{Unlinked: unlinked}
	f.Internal = LinkedFuncInternal{Unlinked: &unlinked.Internal}
	f.Internal.Container = f
	return f
}
