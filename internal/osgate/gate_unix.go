//go:build unix

package osgate

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapAnon obtains a private, anonymous, read-write mapping of n bytes.
// The kernel zero-fills anonymous mappings on creation; this is load-
// bearing for zeroed_alloc over a freshly-mapped large block, which can
// skip the explicit memset.
func mmapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// munmapAnon releases a mapping previously returned by mmapAnon, given its
// base address and size. unix.Munmap wants a []byte, so the address is
// turned back into a slice view over exactly the mapped bytes.
func munmapAnon(addr uintptr, size uintptr) error {
	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)) //nolint:govet
	return unix.Munmap(mem)
}

func pageSize() uintptr {
	return uintptr(unix.Getpagesize())
}
