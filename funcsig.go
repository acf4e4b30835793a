package wasm

// FuncSig is a possibly-empty function signature: an ordered sequence of
// parameter value types and an ordered sequence of return value types.
// Multi-value returns are permitted.
//
// Equality is structural over both sequences; see TypeTable for the
// pointer-identity guarantee built on top of that structural equality.
//
// See https://www.w3.org/TR/wasm-core-1/#function-types%E2%91%A0
type FuncSig struct {
	Params  []ValueType
	Results []ValueType
}

// Equal reports whether s and o describe the same signature, element by
// element. Two nil/empty slices compare equal.
func (s *FuncSig) Equal(o *FuncSig) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return valueTypesEqual(s.Params, o.Params) && valueTypesEqual(s.Results, o.Results)
}

func valueTypesEqual(a, b []ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the signature as "params_results", e.g. "i32i32_i32" or
// "null_null" for a signature with no params and no results.
//
// This mirrors the teacher's FunctionType.String() convention, used both
// for diagnostics and as the TypeTable's dedup key.
func (s *FuncSig) String() string {
	ret := ""
	for _, p := range s.Params {
		ret += ValueTypeName(p)
	}
	if len(s.Params) == 0 {
		ret += "null"
	}
	ret += "_"
	for _, r := range s.Results {
		ret += ValueTypeName(r)
	}
	if len(s.Results) == 0 {
		ret += "null"
	}
	return ret
}
