// Package balloc is a user-space dynamic memory allocator: a small
// C-style API (Alloc, ZeroedAlloc, Reallocate, Release, plus six
// statistics probes) over virtual address space obtained directly from
// the operating system rather than from the Go runtime's own allocator.
//
// The entry points in this package are a thin shell. All algorithmic
// content lives in internal/buddyengine (a buddy free-list engine serving
// requests up to Config.MaxOrder's block size) and internal/largeblock
// (page-mapped blocks for anything bigger); this package only dispatches
// between the two and implements zeroing and reallocation semantics on
// top.
package balloc
