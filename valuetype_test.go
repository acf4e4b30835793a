package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueTypeName(t *testing.T) {
	tests := []struct {
		tag  ValueType
		name string
	}{
		{ValueTypeI32, "i32"},
		{ValueTypeI64, "i64"},
		{ValueTypeF32, "f32"},
		{ValueTypeF64, "f64"},
		{ValueTypeFuncref, "funcref"},
		{0xff, "unknown"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.name, ValueTypeName(tt.tag))
	}
}

func TestAssignableTo(t *testing.T) {
	table := NewTypeTable()
	sig1 := table.Intern(&FuncSig{Params: []ValueType{ValueTypeI32}})
	sig2 := table.Intern(&FuncSig{Results: []ValueType{ValueTypeI32}})

	tests := []struct {
		name     string
		src, dst Type
		want     bool
	}{
		{"equal primitives", I32, I32, true},
		{"different tags", I32, I64, false},
		{"untyped dst funcref accepts any sig", Typed(sig1), Funcref, true},
		{"untyped dst funcref accepts untyped src", Funcref, Funcref, true},
		{"typed dst requires matching sig", Typed(sig1), Typed(sig1), true},
		{"typed dst rejects different sig", Typed(sig1), Typed(sig2), false},
		{"typed dst rejects untyped src", Funcref, Typed(sig1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AssignableTo(tt.src, tt.dst))
		})
	}
}

func TestValueRoundTrip(t *testing.T) {
	require.Equal(t, uint32(0xDEADBEEF), I32Value(0xDEADBEEF).I32())
	require.Equal(t, uint64(0xDEADBEEFCAFEBABE), I64Value(0xDEADBEEFCAFEBABE).I64())
	require.Equal(t, float32(3.5), F32Value(3.5).F32())
	require.Equal(t, float64(3.14159), F64Value(3.14159).F64())
}
