package wasm

import "go.uber.org/zap"

// Features is a per-sandbox bitset of enabled capability flags, following
// the root RuntimeConfig clone-and-mutate builder convention.
type Features uint64

const (
	// FeatureMemory64 is reserved and never read: the memory subsystem in
	// this core is intentionally 32-bit (wptr, see spec.md §6) for the
	// lifetime of this package. The flag exists only so the decision is
	// visible in code, not as a half-finished toggle.
	FeatureMemory64 Features = 1 << iota
)

// Set returns a copy of f with the given flag enabled or disabled.
func (f Features) Set(flag Features, enabled bool) Features {
	if enabled {
		return f | flag
	}
	return f &^ flag
}

// IsEnabled reports whether flag is set.
func (f Features) IsEnabled(flag Features) bool {
	return f&flag != 0
}

// SandboxConfig configures a Sandbox via NewSandbox. The zero value is the
// default configuration: no logger, no features enabled.
type SandboxConfig struct {
	logger   *zap.Logger
	features Features
}

// NewSandboxConfig returns the default SandboxConfig.
func NewSandboxConfig() *SandboxConfig {
	return &SandboxConfig{}
}

// clone ensures all fields are copied even as new ones are added.
func (c *SandboxConfig) clone() *SandboxConfig {
	return &SandboxConfig{logger: c.logger, features: c.features}
}

// WithLogger attaches a structured logger used for a debug breadcrumb
// when a memory growth reallocates its backing buffer. Link failures are
// not logged. Passing nil restores the no-op default.
func (c *SandboxConfig) WithLogger(logger *zap.Logger) *SandboxConfig {
	ret := c.clone()
	ret.logger = logger
	return ret
}

// WithFeature enables or disables a Features flag.
func (c *SandboxConfig) WithFeature(flag Features, enabled bool) *SandboxConfig {
	ret := c.clone()
	ret.features = ret.features.Set(flag, enabled)
	return ret
}
