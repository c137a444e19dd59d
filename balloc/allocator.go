package balloc

import (
	"unsafe"

	"github.com/latticemem/buddyalloc/internal/blockhdr"
	"github.com/latticemem/buddyalloc/internal/buddyengine"
	"github.com/latticemem/buddyalloc/internal/largeblock"
	"github.com/latticemem/buddyalloc/internal/obslog"
	"github.com/latticemem/buddyalloc/internal/osgate"
)

// SizeMetaData is the fixed, compile-time size of the in-band header
// stamped at the start of every block, pooled or large.
const SizeMetaData = blockhdr.Size

// Allocator is a single allocator instance: its own OS Memory Gate, its
// own buddy free-list engine, its own large-block list. Instances are
// independent; nothing here is process-wide. See NewAllocator.
type Allocator struct {
	cfg   Config
	gate  *osgate.Gate
	pool  *buddyengine.Engine
	large *largeblock.List
}

// NewAllocator constructs an Allocator from cfg. Construction is cheap
// and holds no OS resources until the first Alloc call triggers the
// pool's lazy initialization.
func NewAllocator(cfg Config) *Allocator {
	gate := osgate.NewGate(cfg.BreakReservation)
	return &Allocator{
		cfg:   cfg,
		gate:  gate,
		pool:  buddyengine.New(gate, cfg.MinBlockSize, cfg.MaxOrder, cfg.InitialBlocks),
		large: largeblock.New(gate),
	}
}

func (a *Allocator) maxPoolBlockSize() uint64 {
	return a.pool.MaxBlockSize()
}

// Alloc returns a pointer to a payload of at least n bytes, or nil on
// n == 0, n > Config.MaxSize, or OS resource exhaustion.
func (a *Allocator) Alloc(n uint64) unsafe.Pointer {
	if n == 0 || n > a.cfg.MaxSize {
		return nil
	}
	h, ok := a.allocHeader(n)
	if !ok {
		return nil
	}
	return unsafe.Pointer(blockhdr.PayloadOf(h))
}

// allocHeader dispatches a required-byte request between the pool and
// the large-block list and returns the owned header, or !ok on failure.
func (a *Allocator) allocHeader(n uint64) (blockhdr.Handle, bool) {
	required := n + blockhdr.Size
	if required > a.maxPoolBlockSize() {
		h, err := a.large.Alloc(required)
		if err != nil {
			return blockhdr.Nil, false
		}
		return h, true
	}
	h, err := a.pool.Alloc(required)
	if err != nil {
		return blockhdr.Nil, false
	}
	return h, true
}

// ZeroedAlloc is the calloc-equivalent: it rejects num == 0, size == 0,
// or num*size > Config.MaxSize (checked by division before multiplying,
// so the product cannot overflow), then zero-fills the entire returned payload. A
// freshly mapped large block is already zero, but a reused pooled block
// is not, so pooled payloads are always explicitly zeroed.
func (a *Allocator) ZeroedAlloc(num, size uint64) unsafe.Pointer {
	if num == 0 || size == 0 {
		return nil
	}
	if size > a.cfg.MaxSize/num {
		return nil // would overflow MaxSize before even multiplying
	}
	total := num * size
	if total > a.cfg.MaxSize {
		return nil
	}

	p := a.Alloc(total)
	if p == nil {
		return nil
	}
	payload := unsafe.Slice((*byte)(p), total)
	for i := range payload {
		payload[i] = 0
	}
	return p
}

// Reallocate resizes the block at p to hold n bytes, preserving its
// existing contents up to the smaller of the old and new sizes. A nil p
// behaves as Alloc(n). n == 0 or n > Config.MaxSize returns nil without
// touching p. On any other failure it returns nil and leaves the
// original block at p untouched and still owned by the caller.
func (a *Allocator) Reallocate(p unsafe.Pointer, n uint64) unsafe.Pointer {
	if p == nil {
		return a.Alloc(n)
	}
	if n == 0 || n > a.cfg.MaxSize {
		return nil
	}

	h := blockhdr.HeaderOf(uintptr(p))
	required := n + blockhdr.Size

	if required <= h.Size64() {
		return p // shrink / same-size: true no-op, same pointer
	}

	if h.Size64() > a.maxPoolBlockSize() {
		return a.reallocFallback(p, h, n)
	}

	origSize := h.Size64()
	grown, ok := a.pool.TryGrowInPlace(h, required)
	if !ok {
		return a.reallocFallback(p, h, n)
	}

	if grown == h {
		return p
	}

	oldLen := origSize - blockhdr.Size
	oldPayload := unsafe.Slice((*byte)(unsafe.Pointer(blockhdr.PayloadOf(h))), oldLen)
	newPayload := unsafe.Slice((*byte)(unsafe.Pointer(blockhdr.PayloadOf(grown))), oldLen)
	copy(newPayload, oldPayload) // safe for the leftward-overlapping case: copy acts like memmove

	obslog.Debug("balloc: reallocate merged in place", "oldAddr", uintptr(h), "newAddr", uintptr(grown))
	return unsafe.Pointer(blockhdr.PayloadOf(grown))
}

// reallocFallback is the allocate-new / copy / release-old path used when
// in-place growth is unavailable (speculative merge failed, or the block
// is a large block with no buddy to merge into).
func (a *Allocator) reallocFallback(p unsafe.Pointer, h blockhdr.Handle, n uint64) unsafe.Pointer {
	newP := a.Alloc(n)
	if newP == nil {
		return nil
	}

	oldLen := h.Size64() - blockhdr.Size
	copyLen := oldLen
	if n < copyLen {
		copyLen = n
	}
	oldPayload := unsafe.Slice((*byte)(p), copyLen)
	newPayload := unsafe.Slice((*byte)(newP), copyLen)
	copy(newPayload, oldPayload)

	a.Release(p)
	return newP
}

// Release returns the block at p. A nil pointer, or one whose address is
// too small to have ever been a valid payload pointer, is silently
// ignored. Double-release of a pooled block is absorbed as a no-op;
// double-release of a large block is undefined and out of contract.
func (a *Allocator) Release(p unsafe.Pointer) {
	if p == nil {
		return
	}
	addr := uintptr(p)
	if addr < blockhdr.Size {
		return
	}

	h := blockhdr.HeaderOf(addr)
	if h.Size64() > a.maxPoolBlockSize() {
		_ = a.large.Release(h)
		return
	}
	a.pool.Release(h)
}

// NumFreeBlocks returns the number of pooled blocks currently sitting in
// a free-list bucket.
func (a *Allocator) NumFreeBlocks() int64 { return a.pool.Stats().FreeBlocks }

// NumFreeBytes returns the total payload bytes across every free pooled
// block.
func (a *Allocator) NumFreeBytes() int64 { return a.pool.Stats().FreeBytes }

// NumAllocatedBlocks returns the number of blocks (pooled and large)
// currently carved with a live header: every pooled block split off the
// arena so far, free or owned, plus every large block still mapped. See
// NumFreeBlocks for the subset sitting in a free-list bucket; the two
// satisfy NumFreeBlocks + callerOwnedBlocks == NumAllocatedBlocks.
func (a *Allocator) NumAllocatedBlocks() int64 {
	return a.pool.Stats().AllocatedBlocks + a.large.Stats().AllocatedBlocks
}

// NumAllocatedBytes returns the total payload bytes across every block
// (pooled and large) currently carved with a live header, by the same
// free-or-owned accounting as NumAllocatedBlocks.
func (a *Allocator) NumAllocatedBytes() int64 {
	return a.pool.Stats().AllocatedBytes + a.large.Stats().AllocatedBytes
}

// NumMetaDataBytes returns SizeMetaData * NumAllocatedBlocks, by
// construction: every allocated block, pooled or large, carries exactly
// one header.
func (a *Allocator) NumMetaDataBytes() int64 {
	return int64(SizeMetaData) * a.NumAllocatedBlocks()
}

// SizeMetaData returns the compile-time header size.
func (a *Allocator) SizeMetaData() int64 { return int64(SizeMetaData) }
