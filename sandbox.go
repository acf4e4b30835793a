package wasm

import "go.uber.org/zap"

// Sandbox is the root of an isolated Wasm world: it owns a TypeTable,
// plus its configuration (feature flags and logger). Every other core entity (Module, Instance,
// LinearMemory, …) is created against a Sandbox and may only interoperate
// with entities created against the same Sandbox.
//
// Cross-sandbox operations are disallowed by contract, not by runtime
// check: a core operation that receives two entities (a Module and the
// ImportEnvironment it links against, for instance) is free to assume
// they share a Sandbox.
type Sandbox struct {
	types  *TypeTable
	logger *zap.Logger
	feats  Features
}

// NewSandbox returns an isolated Sandbox with the default configuration.
func NewSandbox() *Sandbox {
	return NewSandboxWithConfig(NewSandboxConfig())
}

// NewSandboxWithConfig returns an isolated Sandbox configured by cfg.
func NewSandboxWithConfig(cfg *SandboxConfig) *Sandbox {
	logger := cfg.logger
	if logger == nil {
		logger = noopLogger()
	}
	return &Sandbox{
		types:  NewTypeTable(),
		logger: logger,
		feats:  cfg.features,
	}
}

// Types returns the Sandbox's TypeTable.
func (s *Sandbox) Types() *TypeTable {
	return s.types
}

// Features returns the Sandbox's enabled feature flags.
func (s *Sandbox) Features() Features {
	return s.feats
}
