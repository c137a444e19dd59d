package balloc

import "unsafe"

// def is the package-level default instance used by the convenience
// functions below. Lazily constructed on first use and guarded by a
// plain nil-check rather than sync.Once: concurrency is a declared
// non-goal, so this package makes no concurrent-construction guarantee.
var def *Allocator

func defaultAllocator() *Allocator {
	if def == nil {
		def = NewAllocator(DefaultConfig)
	}
	return def
}

// Alloc calls Alloc on the package-level default Allocator (DefaultConfig).
func Alloc(n uint64) unsafe.Pointer { return defaultAllocator().Alloc(n) }

// ZeroedAlloc calls ZeroedAlloc on the package-level default Allocator.
func ZeroedAlloc(num, size uint64) unsafe.Pointer { return defaultAllocator().ZeroedAlloc(num, size) }

// Reallocate calls Reallocate on the package-level default Allocator.
func Reallocate(p unsafe.Pointer, n uint64) unsafe.Pointer { return defaultAllocator().Reallocate(p, n) }

// Release calls Release on the package-level default Allocator.
func Release(p unsafe.Pointer) { defaultAllocator().Release(p) }

// NumFreeBlocks reports the default Allocator's free pooled block count.
func NumFreeBlocks() int64 { return defaultAllocator().NumFreeBlocks() }

// NumFreeBytes reports the default Allocator's free pooled payload bytes.
func NumFreeBytes() int64 { return defaultAllocator().NumFreeBytes() }

// NumAllocatedBlocks reports the default Allocator's carved block count
// (free or owned pooled blocks plus mapped large blocks).
func NumAllocatedBlocks() int64 { return defaultAllocator().NumAllocatedBlocks() }

// NumAllocatedBytes reports the default Allocator's payload bytes across
// every carved block, free or owned.
func NumAllocatedBytes() int64 { return defaultAllocator().NumAllocatedBytes() }

// NumMetaDataBytes reports SizeMetaData * NumAllocatedBlocks for the
// default Allocator.
func NumMetaDataBytes() int64 { return defaultAllocator().NumMetaDataBytes() }
