package wasm

// Kind classifies an Import or Export.
//
// Only Func and Memory are wired through the linker (see Instance); Table
// and Global are reserved to keep the encoding compatible with the Wasm
// binary format, but are rejected by the linker if encountered.
type Kind = byte

const (
	KindFunc   Kind = 0x00
	KindTable  Kind = 0x01
	KindMemory Kind = 0x02
	KindGlobal Kind = 0x03
)

// KindName returns the canonical lower-case name of k, or "unknown".
func KindName(k Kind) string {
	switch k {
	case KindFunc:
		return "func"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	}
	return "unknown"
}

// Import describes one entry of AbstractModule.Imports.
type Import struct {
	ModuleName string
	Name       string
	Kind       Kind
	// Idx indexes into the AbstractModule list matching Kind: the
	// functions list for KindFunc, the memories list for KindMemory.
	Idx uint32
}

// Export describes one entry of AbstractModule.Exports.
type Export struct {
	Name string
	Kind Kind
	// Idx indexes into the AbstractModule list matching Kind, same
	// convention as Import.Idx.
	Idx uint32
}

// AbstractMemory is the declared shape of a linear memory before any
// runtime resource has been allocated for it.
//
// Pages are 64 KiB (MemoryPageSize). MaxPages may be MemoryMaxPagesUnbounded
// ("unlimited"), which is only valid when IsShared is false.
type AbstractMemory struct {
	IsImport     bool
	IsShared     bool
	InitialPages uint32
	// MaxPages is the maximum page count, or MemoryMaxPagesUnbounded.
	MaxPages uint32
}

// MemoryMaxPagesUnbounded is the sentinel meaning "no declared maximum".
// It is the same bit pattern as AllocFailure, distinguished only by which
// function returns it — see LinearMemory.Grow.
const MemoryMaxPagesUnbounded = ^uint32(0)

// AbstractFunction is the post-parse description of a function, before any
// per-sandbox or per-instance state (signature interning, JIT compilation)
// has been created for it.
type AbstractFunction struct {
	IsImport bool
	// Name is the debug name; empty for imports.
	Name string
	// Body is the instruction byte stream; nil for imports.
	Body []byte
	Sig  FuncSig
}

// AbstractModule is the post-parse description of a Wasm module: the
// plain container a binary decoder (out of scope for this package)
// produces, and the input to Sandbox-scoped lowering (see Module).
//
// Constraints (spec.md §4.D): each Import's Idx addresses a slot whose
// Abstract entity has IsImport == true; every other slot describes a
// defined entity.
type AbstractModule struct {
	Imports  []Import
	Exports  []Export
	Memories []AbstractMemory
	Funcs    []AbstractFunction
}
