//go:build linux

package wasm

import "golang.org/x/sys/unix"

// growMemoryBuffer extends old to newSizeBytes using mremap, which can
// grow the mapping in place without copying when the kernel finds room;
// MREMAP_MAYMOVE lets it relocate the mapping (never the Go slice header
// the caller already read, since the caller always re-reads m.buf after
// Grow returns) if it cannot.
func growMemoryBuffer(old []byte, newSizeBytes int) ([]byte, error) {
	if len(old) == 0 {
		return allocMemoryBuffer(newSizeBytes)
	}
	grown, err := unix.Mremap(old, newSizeBytes, unix.MREMAP_MAYMOVE)
	if err != nil {
		return copyGrow(old, newSizeBytes)
	}
	return grown, nil
}
