package osgate

import (
	"errors"
	"unsafe"
)

// ErrExhausted is returned when the OS primitive backing this gate could
// not satisfy a request: the break arena's reservation is full, or the
// anonymous mapping syscall failed.
var ErrExhausted = errors.New("osgate: resource exhausted")

// defaultBreakReservation bounds how large the simulated program break can
// grow over the life of a Gate. Real sbrk/brk has no such fixed ceiling,
// but a single Go process virtual address space reservation needs one
// up front; 256MiB comfortably covers any InitialBlocks*MaxBlockSize pool
// this module's Config presets ask for, with room to spare for the
// alignment padding step in the engine's initializer.
const defaultBreakReservation = 256 << 20

// Gate is the OS Memory Gate: a grow-only arena (ExtendBreak) simulating
// data-segment extension, and anonymous page mappings (MapPages/UnmapPages)
// for large blocks. A Gate is cheap to construct and holds no OS resources
// until first used.
type Gate struct {
	reservation []byte // lazily mmap'd once; ExtendBreak bumps into it
	cursor      uintptr
	capacity    uintptr
}

// NewGate returns a Gate whose simulated break arena can grow up to
// capacity bytes. A capacity of 0 uses defaultBreakReservation.
func NewGate(capacity uintptr) *Gate {
	if capacity == 0 {
		capacity = defaultBreakReservation
	}
	return &Gate{capacity: capacity}
}

// PageSize returns the OS page size.
func (g *Gate) PageSize() uintptr {
	return pageSize()
}

// BreakAddr returns the current (absolute) break address: the address the
// next ExtendBreak call would return as its base, were n == 0. Used by the
// engine to compute alignment padding before carving the pool region.
func (g *Gate) BreakAddr() (uintptr, error) {
	if err := g.ensureReserved(); err != nil {
		return 0, err
	}
	return uintptr(unsafe.Pointer(&g.reservation[0])) + g.cursor, nil
}

// ExtendBreak grows the simulated data segment by n bytes and returns the
// base address of the new region. It fails with ErrExhausted if doing so
// would exceed the Gate's break-arena capacity — the simulated analogue of
// sbrk returning (void*)-1.
func (g *Gate) ExtendBreak(n uintptr) (uintptr, error) {
	if err := g.ensureReserved(); err != nil {
		return 0, err
	}
	if g.cursor+n > g.capacity {
		return 0, ErrExhausted
	}
	base := uintptr(unsafe.Pointer(&g.reservation[0])) + g.cursor
	g.cursor += n
	return base, nil
}

func (g *Gate) ensureReserved() error {
	if g.reservation != nil {
		return nil
	}
	mem, err := mmapAnon(int(g.capacity))
	if err != nil {
		return ErrExhausted
	}
	g.reservation = mem
	return nil
}

// MapPages obtains a private, anonymous, zero-filled mapping of at least n
// bytes, rounded up to the page size, and returns its base address and
// actual size. Every successful MapPages must be paired with exactly one
// UnmapPages call on the same (addr, size).
func (g *Gate) MapPages(n uintptr) (addr uintptr, size uintptr, err error) {
	ps := pageSize()
	size = ((n + ps - 1) / ps) * ps
	if size == 0 {
		size = ps
	}
	mem, err := mmapAnon(int(size))
	if err != nil {
		return 0, 0, ErrExhausted
	}
	return uintptr(unsafe.Pointer(&mem[0])), size, nil
}

// UnmapPages releases a mapping previously returned by MapPages. After this
// call, addr is no longer valid memory.
func (g *Gate) UnmapPages(addr uintptr, size uintptr) error {
	return munmapAnon(addr, size)
}
