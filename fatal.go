package wasm

import "runtime"

// PanicFatal raises a FatalError for a programming-error invariant
// violation (spec.md §7): an out-of-range import slot, growing a shared
// memory, two imports targeting the same slot, and similar host bugs that
// indicate the caller, not the Wasm module, is wrong.
//
// This is never used for LinkError or ErrAllocFailure, both of which are
// recoverable by the caller.
func PanicFatal(message string) {
	_, file, line, _ := runtime.Caller(1)
	panic(&FatalError{File: file, Line: line, Message: message})
}
