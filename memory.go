package wasm

import (
	"encoding/binary"
	"math"
	"strconv"
	"unsafe"

	"go.uber.org/zap"
)

const (
	// MemoryPageSize is the unit of linear memory size and growth: 64 KiB.
	//
	// See https://www.w3.org/TR/wasm-core-1/#page-size
	MemoryPageSize = uint32(65536)
	// MemoryPageSizeBits satisfies 1 << MemoryPageSizeBits == MemoryPageSize.
	MemoryPageSizeBits = 16

	// memoryInternalFlagShared is bit 0 of MemoryInternal.Flags.
	memoryInternalFlagShared = uint32(1)
)

// MemoryInternal is the JIT-visible internal record of a LinearMemory: a
// fixed, reordering-stable, standard-layout record a code generator (out
// of scope for this package) can read and write without calling into
// managed routines.
//
// Field order is part of the ABI (spec.md §6) — do not reorder. Start and
// Size are refreshed by refreshInternal whenever the backing buffer
// moves (construction, or a reallocating Grow).
type MemoryInternal struct {
	Flags                uint32
	Start                unsafe.Pointer
	Size                 uintptr
	CurrentCapacityPages uintptr
	MaxCapacityPages     uintptr
	Container            *LinearMemory
}

// LinearMemory is a byte buffer of Size() bytes, backed by a capacity of
// CapacityPages() <= MaxCapacityPages() pages. See spec.md §4.C for the
// construction and growth rules this type implements.
type LinearMemory struct {
	buf []byte

	sizePages     uint32
	capacityPages uint32
	initialPages  uint32
	// maxCapacityPages may be MemoryMaxPagesUnbounded for an unshared
	// memory; always finite for a shared memory.
	maxCapacityPages uint32
	shared           bool

	Internal MemoryInternal

	logger *zap.Logger
}

// refreshInternal recomputes Internal from the current buffer and sizes.
// Must be called after construction and after every successful Grow.
func (m *LinearMemory) refreshInternal() {
	var start unsafe.Pointer
	if len(m.buf) > 0 {
		start = unsafe.Pointer(&m.buf[0])
	}
	flags := uint32(0)
	if m.shared {
		flags |= memoryInternalFlagShared
	}
	maxCap := uintptr(m.maxCapacityPages)
	if m.maxCapacityPages == MemoryMaxPagesUnbounded {
		maxCap = ^uintptr(0)
	}
	m.Internal = MemoryInternal{
		Flags:                flags,
		Start:                start,
		Size:                 uintptr(m.SizeBytes()),
		CurrentCapacityPages: uintptr(m.capacityPages),
		MaxCapacityPages:     maxCap,
		Container:            m,
	}
}

// NewLinearMemory constructs a LinearMemory from its abstract shape.
//
// am.IsImport must be false: imported memories are never constructed
// here, they are resolved by the linker (see Instance).
func NewLinearMemory(am AbstractMemory) (*LinearMemory, error) {
	return newLinearMemory(am, noopLogger())
}

func newLinearMemory(am AbstractMemory, logger *zap.Logger) (*LinearMemory, error) {
	if am.IsImport {
		PanicFatal("NewLinearMemory: called for an imported memory slot")
	}
	if am.IsShared && am.MaxPages == MemoryMaxPagesUnbounded {
		PanicFatal("NewLinearMemory: shared memory requires a finite max_pages")
	}

	capacityPages := am.InitialPages
	if am.MaxPages != MemoryMaxPagesUnbounded {
		// Allocate exactly max_pages up-front so growth never reallocates,
		// preserving raw pointers held by JIT-generated code.
		capacityPages = am.MaxPages
	}

	buf, err := allocMemoryBuffer(int(MemoryPagesToBytes(capacityPages)))
	if err != nil {
		return nil, ErrAllocFailure
	}

	m := &LinearMemory{
		buf:              buf,
		sizePages:        am.InitialPages,
		capacityPages:    capacityPages,
		initialPages:     am.InitialPages,
		maxCapacityPages: am.MaxPages,
		shared:           am.IsShared,
		logger:           logger,
	}
	m.refreshInternal()
	return m, nil
}

// MemoryPagesToBytes converts a page count to a byte count.
func MemoryPagesToBytes(pages uint32) uint64 {
	return uint64(pages) << MemoryPageSizeBits
}

// SizeBytes returns the current memory size in bytes.
func (m *LinearMemory) SizeBytes() uint32 { return m.sizePages * MemoryPageSize }

// SizePages returns the current memory size in pages.
func (m *LinearMemory) SizePages() uint32 { return m.sizePages }

// InitialSizePages returns the size, in pages, the memory was constructed
// with. Unlike SizePages, this never changes over the memory's lifetime.
func (m *LinearMemory) InitialSizePages() uint32 { return m.initialPages }

// CapacityPages returns the number of pages currently backing the buffer,
// which may exceed SizePages.
func (m *LinearMemory) CapacityPages() uint32 { return m.capacityPages }

// MaxCapacityPages returns the declared maximum, or
// MemoryMaxPagesUnbounded.
func (m *LinearMemory) MaxCapacityPages() uint32 { return m.maxCapacityPages }

// IsShared reports whether this memory is shared across every instance of
// its owning Module.
func (m *LinearMemory) IsShared() bool { return m.shared }

// IsValidAddress reports whether a Wasm pointer/length pair addresses
// bytes entirely within the current size, per spec.md §8: "addr + size
// does not overflow and is <= size_bytes()".
func (m *LinearMemory) IsValidAddress(addr, size uint32) bool {
	end := uint64(addr) + uint64(size)
	return end <= uint64(m.SizeBytes())
}

// Load copies size bytes starting at addr into buf[:size]. It returns
// false, leaving buf untouched, if the range is out of bounds.
func (m *LinearMemory) Load(buf []byte, addr, size uint32) bool {
	if !m.IsValidAddress(addr, size) {
		return false
	}
	copy(buf, m.buf[addr:uint64(addr)+uint64(size)])
	return true
}

// Store copies val into the memory at addr. It returns false, leaving the
// buffer untouched, if the range is out of bounds.
func (m *LinearMemory) Store(addr uint32, val []byte) bool {
	size := uint32(len(val))
	if !m.IsValidAddress(addr, size) {
		return false
	}
	copy(m.buf[addr:uint64(addr)+uint64(size)], val)
	return true
}

// LoadI32/LoadI64/LoadF32/LoadF64 and the Store* counterparts are the
// typed accessors for the value types Wasm can load/store in a single
// instruction. All are little-endian on every supported host.

func (m *LinearMemory) LoadI32(addr uint32) (uint32, bool) {
	if !m.IsValidAddress(addr, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.buf[addr:]), true
}

func (m *LinearMemory) StoreI32(addr uint32, v uint32) bool {
	if !m.IsValidAddress(addr, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.buf[addr:], v)
	return true
}

func (m *LinearMemory) LoadI64(addr uint32) (uint64, bool) {
	if !m.IsValidAddress(addr, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(m.buf[addr:]), true
}

func (m *LinearMemory) StoreI64(addr uint32, v uint64) bool {
	if !m.IsValidAddress(addr, 8) {
		return false
	}
	binary.LittleEndian.PutUint64(m.buf[addr:], v)
	return true
}

func (m *LinearMemory) LoadF32(addr uint32) (float32, bool) {
	v, ok := m.LoadI32(addr)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(v), true
}

func (m *LinearMemory) StoreF32(addr uint32, v float32) bool {
	return m.StoreI32(addr, math.Float32bits(v))
}

func (m *LinearMemory) LoadF64(addr uint32) (float64, bool) {
	v, ok := m.LoadI64(addr)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(v), true
}

func (m *LinearMemory) StoreF64(addr uint32, v float64) bool {
	return m.StoreI64(addr, math.Float64bits(v))
}

// Grow extends the memory by deltaPages, zero-initializing the new region.
// It returns the size in pages prior to the call, or AllocFailure if the
// growth cannot be satisfied. On failure, the memory is left unchanged.
//
// Growing a shared memory is a programming error: the core does not
// implement concurrent-safe shared growth (spec.md §5), so this aborts
// rather than silently no-op or corrupt state.
func (m *LinearMemory) Grow(deltaPages uint32) uint32 {
	if deltaPages == 0 {
		return m.SizePages()
	}
	if m.shared {
		PanicFatal("Grow: growing a shared memory is not implemented")
	}

	prev := m.sizePages
	newSize := uint64(m.sizePages) + uint64(deltaPages)
	if newSize > uint64(^uint32(0)) {
		return AllocFailure
	}
	if m.maxCapacityPages != MemoryMaxPagesUnbounded && newSize > uint64(m.maxCapacityPages) {
		return AllocFailure
	}

	if uint32(newSize) > m.capacityPages {
		// Shared memories are pre-allocated to max and never reach here.
		grown, err := growMemoryBuffer(m.buf, int(MemoryPagesToBytes(uint32(newSize))))
		if err != nil {
			return AllocFailure
		}
		m.buf = grown
		m.capacityPages = uint32(newSize)
		m.logger.Debug("grew linear memory",
			zap.Uint32("fromPages", prev),
			zap.Uint32("toPages", uint32(newSize)),
			zap.String("toSize", PagesToUnitOfBytes(uint32(newSize))))
	}

	m.sizePages = uint32(newSize)
	m.refreshInternal()
	return prev
}

// PagesToUnitOfBytes renders pages as a human-readable size (Ki/Mi/Gi/Ti),
// used in log fields.
func PagesToUnitOfBytes(pages uint32) string {
	k := uint64(pages) * 64
	if k < 1024 {
		return formatUnit(k, "Ki")
	}
	mi := k / 1024
	if mi < 1024 {
		return formatUnit(mi, "Mi")
	}
	gi := mi / 1024
	if gi < 1024 {
		return formatUnit(gi, "Gi")
	}
	return formatUnit(gi/1024, "Ti")
}

func formatUnit(n uint64, unit string) string {
	return strconv.FormatUint(n, 10) + " " + unit
}
