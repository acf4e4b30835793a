package wasm

// DecodeModule parses a Wasm binary into an AbstractModule. Binary
// parsing and validation are out of scope for this package (spec.md
// §1): DecodeModule is a hook a parser package installs, not an
// implementation here.
type DecodeModule func(source []byte) (*AbstractModule, error)

// Decoder is the process-wide DecodeModule hook used by cmd/wasmcore. It
// is nil until a parser package sets it; callers embedding this package
// as a library should call NewModule/Instantiate directly instead of
// going through this var.
var Decoder DecodeModule
