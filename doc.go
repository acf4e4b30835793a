// Package wasm is the host-side data model and linking machinery of a
// sandboxed WebAssembly runtime.
//
// It owns the runtime representation of Wasm value types and function
// signatures, deduplicates signatures per Sandbox, allocates and grows
// linear memories respecting per-sandbox rules, and resolves imports
// against exports from other module instances with strict signature and
// shape checking.
//
// Binary parsing and validation, instruction decoding, interpretation, and
// JIT code generation are explicitly out of scope: this package takes a
// parsed, validated Module as given (see AbstractModule) and turns it into
// an executable, sandboxed Instance.
package wasm
