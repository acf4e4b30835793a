package wasm

import "math"

// ValueType is the one-byte binary encoding of a Wasm value type.
//
// Note: This is a type alias, not a defined type, as it is easier to encode
// and decode in the binary format this way.
//
// See https://www.w3.org/TR/wasm-core-1/#binary-valtype
type ValueType = byte

const (
	ValueTypeI32     ValueType = 0x7f
	ValueTypeI64     ValueType = 0x7e
	ValueTypeF32     ValueType = 0x7d
	ValueTypeF64     ValueType = 0x7c
	ValueTypeFuncref ValueType = 0x70
)

// ValueTypeName returns the type name of the given ValueType as used in the
// WebAssembly text format, or "unknown" for an undefined tag.
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeFuncref:
		return "funcref"
	}
	return "unknown"
}

// Type is a value type plus an optional reference payload. The payload is
// meaningful only when Tag is ValueTypeFuncref: it is either nil (an
// untyped funcref) or a handle returned by TypeTable.Intern on the same
// Sandbox as the value.
//
// Two Types are Equal iff Tag and Sig match; Sig comparison is a pointer
// comparison, which is correct only when both Types originate from the
// same Sandbox's TypeTable (see TypeTable's identity-stability guarantee).
type Type struct {
	Tag ValueType
	Sig *FuncSig
}

// I32, I64, F32, F64 are the non-reference Types.
var (
	I32 = Type{Tag: ValueTypeI32}
	I64 = Type{Tag: ValueTypeI64}
	F32 = Type{Tag: ValueTypeF32}
	F64 = Type{Tag: ValueTypeF64}
	// Funcref is the untyped funcref: assignable from any funcref.
	Funcref = Type{Tag: ValueTypeFuncref}
)

// Typed returns a funcref Type bound to the given interned signature.
func Typed(sig *FuncSig) Type {
	return Type{Tag: ValueTypeFuncref, Sig: sig}
}

// Equal returns true iff t and u name the same value type: equal Tag, and
// for funcref, pointer-equal Sig (both nil counts as equal).
func (t Type) Equal(u Type) bool {
	return t.Tag == u.Tag && t.Sig == u.Sig
}

func (t Type) String() string {
	if t.Tag == ValueTypeFuncref && t.Sig != nil {
		return "funcref(" + t.Sig.String() + ")"
	}
	return ValueTypeName(t.Tag)
}

// AssignableTo reports whether a value of type src may be used where dst is
// expected: tags must match, and for funcref, dst must be untyped or name
// the same interned signature as src.
//
// See spec.md §3 "Value type" for the defining rule.
func AssignableTo(src, dst Type) bool {
	if src.Tag != dst.Tag {
		return false
	}
	if dst.Tag != ValueTypeFuncref {
		return true
	}
	return dst.Sig == nil || dst.Sig == src.Sig
}

// Value is an untagged 64-bit-wide payload viewable as i32, i64, f32, f64,
// or a reference handle. Interpreting a Value requires a Type known out of
// band; Value itself carries no tag.
//
// Note: unlike the source this was ported from, F64 is stored as a full
// 64-bit float, not truncated to 32 bits — see DESIGN.md's "f64 bug" open
// question.
type Value uint64

func I32Value(v uint32) Value { return Value(v) }
func I64Value(v uint64) Value { return Value(v) }
func F32Value(v float32) Value { return Value(math.Float32bits(v)) }
func F64Value(v float64) Value { return Value(math.Float64bits(v)) }

func (v Value) I32() uint32   { return uint32(v) }
func (v Value) I64() uint64   { return uint64(v) }
func (v Value) F32() float32  { return math.Float32frombits(uint32(v)) }
func (v Value) F64() float64  { return math.Float64frombits(uint64(v)) }
func (v Value) Ref() uint64   { return uint64(v) }
