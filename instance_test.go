package wasm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInstantiate_EmptyModule is spec.md §8 scenario 1: a module with no
// imports, exports, functions, or memories links to an empty Instance.
func TestInstantiate_EmptyModule(t *testing.T) {
	sandbox := NewSandbox()
	module, err := NewModule(&AbstractModule{}, sandbox)
	require.NoError(t, err)

	inst, err := Instantiate(module, NewImportEnvironment())
	require.NoError(t, err)
	require.Empty(t, inst.Funcs)
	require.Empty(t, inst.Memories)
	require.Empty(t, inst.Exports)
}

// TestInstantiate_ImportFunctionSuccess is spec.md §8 scenario 2: importing
// a function whose exported signature matches links successfully and the
// LinkedFunction is reused by reference.
func TestInstantiate_ImportFunctionSuccess(t *testing.T) {
	sandbox := NewSandbox()
	sig := FuncSig{Params: []ValueType{ValueTypeI32}, Results: []ValueType{ValueTypeI32}}

	providerAbstract := &AbstractModule{
		Funcs:   []AbstractFunction{{Name: "inc", Sig: sig}},
		Exports: []Export{{Name: "inc", Kind: KindFunc, Idx: 0}},
	}
	providerModule, err := NewModule(providerAbstract, sandbox)
	require.NoError(t, err)
	provider, err := Instantiate(providerModule, NewImportEnvironment())
	require.NoError(t, err)

	consumerAbstract := &AbstractModule{
		Imports: []Import{{ModuleName: "env", Name: "inc", Kind: KindFunc, Idx: 0}},
		Funcs:   []AbstractFunction{{IsImport: true, Sig: sig}},
	}
	consumerModule, err := NewModule(consumerAbstract, sandbox)
	require.NoError(t, err)

	env := NewImportEnvironment().Register("env", provider)
	consumer, err := Instantiate(consumerModule, env)
	require.NoError(t, err)

	require.Same(t, provider.Funcs[0], consumer.Funcs[0], "an imported function must be the same LinkedFunction by reference")
}

// TestInstantiate_ImportFunctionSignatureMismatch is spec.md §8 scenario 3:
// every listed mismatch case (missing export, wrong kind, different param
// count, different param type, different result type) surfaces as a
// *LinkError and yields no Instance.
func TestInstantiate_ImportFunctionSignatureMismatch(t *testing.T) {
	sandbox := NewSandbox()
	wantSig := FuncSig{Params: []ValueType{ValueTypeI32}, Results: []ValueType{ValueTypeI32}}

	newConsumer := func() *Module {
		m, err := NewModule(&AbstractModule{
			Imports: []Import{{ModuleName: "env", Name: "inc", Kind: KindFunc, Idx: 0}},
			Funcs:   []AbstractFunction{{IsImport: true, Sig: wantSig}},
		}, sandbox)
		require.NoError(t, err)
		return m
	}

	t.Run("missing export", func(t *testing.T) {
		inst, err := Instantiate(newConsumer(), NewImportEnvironment())
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("wrong kind", func(t *testing.T) {
		providerModule, err := NewModule(&AbstractModule{
			Memories: []AbstractMemory{{InitialPages: 1, MaxPages: 1}},
			Exports:  []Export{{Name: "inc", Kind: KindMemory, Idx: 0}},
		}, sandbox)
		require.NoError(t, err)
		provider, err := Instantiate(providerModule, NewImportEnvironment())
		require.NoError(t, err)

		env := NewImportEnvironment().Register("env", provider)
		inst, err := Instantiate(newConsumer(), env)
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrWrongKind))
	})

	mismatchedSigs := []struct {
		name string
		sig  FuncSig
	}{
		{"different param count", FuncSig{Params: []ValueType{ValueTypeI32, ValueTypeI32}, Results: []ValueType{ValueTypeI32}}},
		{"different param type", FuncSig{Params: []ValueType{ValueTypeF32}, Results: []ValueType{ValueTypeI32}}},
		{"different result type", FuncSig{Params: []ValueType{ValueTypeI32}, Results: []ValueType{ValueTypeF64}}},
	}
	for _, tt := range mismatchedSigs {
		t.Run(tt.name, func(t *testing.T) {
			providerModule, err := NewModule(&AbstractModule{
				Funcs:   []AbstractFunction{{Name: "inc", Sig: tt.sig}},
				Exports: []Export{{Name: "inc", Kind: KindFunc, Idx: 0}},
			}, sandbox)
			require.NoError(t, err)
			provider, err := Instantiate(providerModule, NewImportEnvironment())
			require.NoError(t, err)

			env := NewImportEnvironment().Register("env", provider)
			inst, err := Instantiate(newConsumer(), env)
			require.Nil(t, inst)
			require.True(t, errors.Is(err, ErrWrongFunctionSignature))
		})
	}
}

// TestInstantiate_ExportDefinedFunction is spec.md §8 scenario 4: a defined
// (non-imported) function is reachable through FindExport/FindFunc under
// its export name.
func TestInstantiate_ExportDefinedFunction(t *testing.T) {
	sandbox := NewSandbox()
	sig := FuncSig{Results: []ValueType{ValueTypeI32}}
	am := &AbstractModule{
		Funcs:   []AbstractFunction{{Name: "answer", Sig: sig, Body: []byte{0x2a}}},
		Exports: []Export{{Name: "answer", Kind: KindFunc, Idx: 0}},
	}
	module, err := NewModule(am, sandbox)
	require.NoError(t, err)

	inst, err := Instantiate(module, NewImportEnvironment())
	require.NoError(t, err)

	exp, ok := inst.FindExport("answer")
	require.True(t, ok)
	require.Equal(t, KindFunc, exp.Kind)

	found, err := inst.FindFunc(Import{ModuleName: "self", Name: "answer", Kind: KindFunc})
	require.NoError(t, err)
	require.Same(t, inst.Funcs[0], found)
}

// TestInstantiate_ImportMemoryValidation is spec.md §8 scenario 5: every
// listed failure case (missing export, wrong kind, shared mismatch, too
// small, max too large) is rejected, and the matching success case links.
func TestInstantiate_ImportMemoryValidation(t *testing.T) {
	sandbox := NewSandbox()

	newConsumer := func(initial, max uint32, shared bool) *Module {
		m, err := NewModule(&AbstractModule{
			Imports:  []Import{{ModuleName: "env", Name: "mem", Kind: KindMemory, Idx: 0}},
			Memories: []AbstractMemory{{IsImport: true, IsShared: shared, InitialPages: initial, MaxPages: max}},
		}, sandbox)
		require.NoError(t, err)
		return m
	}

	providerModule := func(am AbstractMemory) *Instance {
		m, err := NewModule(&AbstractModule{
			Memories: []AbstractMemory{am},
			Exports:  []Export{{Name: "mem", Kind: KindMemory, Idx: 0}},
		}, sandbox)
		require.NoError(t, err)
		inst, err := Instantiate(m, NewImportEnvironment())
		require.NoError(t, err)
		return inst
	}

	t.Run("missing export", func(t *testing.T) {
		inst, err := Instantiate(newConsumer(1, 4, false), NewImportEnvironment())
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("wrong kind", func(t *testing.T) {
		fm, err := NewModule(&AbstractModule{
			Funcs:   []AbstractFunction{{Name: "mem", Sig: FuncSig{}}},
			Exports: []Export{{Name: "mem", Kind: KindFunc, Idx: 0}},
		}, sandbox)
		require.NoError(t, err)
		provider, err := Instantiate(fm, NewImportEnvironment())
		require.NoError(t, err)

		env := NewImportEnvironment().Register("env", provider)
		inst, err := Instantiate(newConsumer(1, 4, false), env)
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrWrongKind))
	})

	t.Run("shared mismatch", func(t *testing.T) {
		provider := providerModule(AbstractMemory{InitialPages: 1, MaxPages: 4})
		env := NewImportEnvironment().Register("env", provider)
		inst, err := Instantiate(newConsumer(1, 4, true), env)
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrSharedMismatch))
	})

	t.Run("too small", func(t *testing.T) {
		provider := providerModule(AbstractMemory{InitialPages: 1, MaxPages: 4})
		env := NewImportEnvironment().Register("env", provider)
		inst, err := Instantiate(newConsumer(2, 4, false), env)
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrMemoryTooSmall))
	})

	t.Run("max too large", func(t *testing.T) {
		provider := providerModule(AbstractMemory{InitialPages: 1, MaxPages: 8})
		env := NewImportEnvironment().Register("env", provider)
		inst, err := Instantiate(newConsumer(1, 4, false), env)
		require.Nil(t, inst)
		require.True(t, errors.Is(err, ErrMemoryMaxTooLarge))
	})

	t.Run("success", func(t *testing.T) {
		provider := providerModule(AbstractMemory{InitialPages: 2, MaxPages: 4})
		env := NewImportEnvironment().Register("env", provider)
		inst, err := Instantiate(newConsumer(1, 4, false), env)
		require.NoError(t, err)
		require.Same(t, provider.Memories[0], inst.Memories[0])
	})
}

func TestMultiModuleFallback(t *testing.T) {
	sandbox := NewSandbox()
	sig := FuncSig{Results: []ValueType{ValueTypeI32}}

	am, err := NewModule(&AbstractModule{
		Funcs:   []AbstractFunction{{Name: "f", Sig: sig}},
		Exports: []Export{{Name: "f", Kind: KindFunc, Idx: 0}},
	}, sandbox)
	require.NoError(t, err)
	provider, err := Instantiate(am, NewImportEnvironment())
	require.NoError(t, err)

	empty, err := Instantiate(mustEmptyModule(t, sandbox), NewImportEnvironment())
	require.NoError(t, err)

	mm := NewMultiModule(empty, provider)
	found, err := mm.FindFunc(Import{ModuleName: "env", Name: "f", Kind: KindFunc})
	require.NoError(t, err)
	require.Same(t, provider.Funcs[0], found)
}

func mustEmptyModule(t *testing.T, sandbox *Sandbox) *Module {
	m, err := NewModule(&AbstractModule{}, sandbox)
	require.NoError(t, err)
	return m
}
