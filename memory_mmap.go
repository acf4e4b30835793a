//go:build unix

package wasm

import "golang.org/x/sys/unix"

// allocMemoryBuffer reserves sizeBytes of zero-initialized backing storage
// for a LinearMemory via an anonymous private mmap, so later growth can
// attempt grow-in-place instead of a copying reallocation.
func allocMemoryBuffer(sizeBytes int) ([]byte, error) {
	if sizeBytes == 0 {
		return []byte{}, nil
	}
	return unix.Mmap(-1, 0, sizeBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// mustMunmap unmaps a buffer previously returned by allocMemoryBuffer,
// panicking rather than leaking a silent error: either scenario is hard
// to debug, and growth is already on a rare, non-hot path.
func mustMunmap(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if err := unix.Munmap(buf); err != nil {
		panic(err)
	}
}

// copyGrow allocates a fresh mapping of newSizeBytes, copies old into it,
// and unmaps old. Used by platforms (or situations) where growing in
// place is unavailable.
func copyGrow(old []byte, newSizeBytes int) ([]byte, error) {
	fresh, err := allocMemoryBuffer(newSizeBytes)
	if err != nil {
		return nil, err
	}
	copy(fresh, old)
	mustMunmap(old)
	return fresh, nil
}
