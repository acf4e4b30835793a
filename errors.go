package wasm

import (
	"errors"
	"fmt"
)

// LinkErrorKind discriminates the recoverable failure modes of Instance
// linking. See spec.md §7.
type LinkErrorKind int

const (
	NotFound LinkErrorKind = iota
	WrongKind
	WrongFunctionSignature
	SharedMismatch
	MemoryTooSmall
	MemoryMaxTooLarge
)

func (k LinkErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case WrongKind:
		return "wrong kind"
	case WrongFunctionSignature:
		return "wrong signature"
	case SharedMismatch:
		return "shared mismatch"
	case MemoryTooSmall:
		return "smaller than minimum"
	case MemoryMaxTooLarge:
		return "larger than maximum"
	}
	return "unknown link error"
}

// Sentinel errors usable with errors.Is, one per LinkErrorKind. LinkError
// implements Is so errors.Is(err, ErrNotFound) works without exposing the
// concrete *LinkError type to every caller.
var (
	ErrNotFound               = errors.New("link: not found")
	ErrWrongKind              = errors.New("link: wrong kind")
	ErrWrongFunctionSignature = errors.New("link: wrong signature")
	ErrSharedMismatch         = errors.New("link: shared mismatch")
	ErrMemoryTooSmall         = errors.New("link: smaller than minimum")
	ErrMemoryMaxTooLarge      = errors.New("link: larger than maximum")
)

func sentinelFor(k LinkErrorKind) error {
	switch k {
	case NotFound:
		return ErrNotFound
	case WrongKind:
		return ErrWrongKind
	case WrongFunctionSignature:
		return ErrWrongFunctionSignature
	case SharedMismatch:
		return ErrSharedMismatch
	case MemoryTooSmall:
		return ErrMemoryTooSmall
	case MemoryMaxTooLarge:
		return ErrMemoryMaxTooLarge
	}
	return nil
}

// LinkError is a recoverable failure linking a single Import. The caller
// must discard the partially built Instance on any LinkError: linking
// never leaves a partially observable instance (spec.md §7).
type LinkError struct {
	Import  Import
	Kind    LinkErrorKind
	Message string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to resolve import %s.%s (%s): %s",
		e.Import.ModuleName, e.Import.Name, KindName(e.Import.Kind), e.Message)
}

// Is reports whether target is the sentinel error for e.Kind, so callers
// can branch with errors.Is instead of string matching or type assertion.
func (e *LinkError) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}

func linkErrorf(imp Import, kind LinkErrorKind, format string, args ...any) *LinkError {
	return &LinkError{Import: imp, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrAllocFailure is returned by memory construction (NewLinearMemory,
// NewModule, Instantiate) when the requested size cannot be satisfied;
// LinearMemory.Grow reports the same condition with AllocFailure instead.
// It is not a LinkError: it signals a resource exhaustion, not a linking
// mismatch.
var ErrAllocFailure = errors.New("allocation failure")

// AllocFailure is the page-count sentinel Grow returns on failure: the
// same bit pattern as MemoryMaxPagesUnbounded, distinguished only by
// which function returned it (spec.md §4.C).
const AllocFailure = MemoryMaxPagesUnbounded

// FatalError indicates a programming-error invariant violation: it is
// never returned to a caller to recover from. Surface it via PanicFatal
// and catch it only at a process boundary (see cmd/wasmcore).
type FatalError struct {
	File    string
	Line    int
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s:%d: fatal: %s", e.File, e.Line, e.Message)
}
