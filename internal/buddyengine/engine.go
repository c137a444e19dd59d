package buddyengine

import (
	"github.com/latticemem/buddyalloc/internal/blockhdr"
	"github.com/latticemem/buddyalloc/internal/obslog"
)

// ensureInit performs the lazy, one-shot pool carve described in spec
// §4.3.1. It is idempotent: once initialized (successfully or not) it
// never runs again.
func (e *Engine) ensureInit() error {
	if e.initialized {
		return nil
	}
	if e.initFailed {
		return ErrInitFailed
	}

	maxBlockSize := e.MaxBlockSize()
	region := uintptr(e.initialBlocks) * uintptr(maxBlockSize)

	brk, err := e.gate.BreakAddr()
	if err != nil {
		e.initFailed = true
		return ErrInitFailed
	}

	if rem := brk % region; rem != 0 {
		padding := region - rem
		if _, err := e.gate.ExtendBreak(padding); err != nil {
			e.initFailed = true
			return ErrInitFailed
		}
	}

	base, err := e.gate.ExtendBreak(region)
	if err != nil {
		e.initFailed = true
		return ErrInitFailed
	}

	e.poolBase = base
	e.poolSize = region

	for i := 0; i < e.initialBlocks; i++ {
		h := blockhdr.Handle(base + uintptr(i)*uintptr(maxBlockSize))
		blockhdr.Stamp(h, maxBlockSize, true)
		e.insert(h)
		e.stats.AllocatedBlocks++
		e.stats.AllocatedBytes += int64(maxBlockSize) - blockhdr.Size
	}

	e.initialized = true
	obslog.Debug("buddyengine: pool initialized",
		"base", base, "region", region, "blocks", e.initialBlocks, "maxBlockSize", maxBlockSize)
	return nil
}

// Alloc serves a pooled request of required bytes (already including the
// header). It returns ErrTooLarge if required exceeds the pool's maximum
// block size — the caller should fall back to the large-block list — and
// ErrNoSpace if the pool has no sufficient free block.
func (e *Engine) Alloc(required uint64) (blockhdr.Handle, error) {
	if required > e.MaxBlockSize() {
		return blockhdr.Nil, ErrTooLarge
	}
	if err := e.ensureInit(); err != nil {
		return blockhdr.Nil, err
	}

	target := blockhdr.OrderFor(required, e.minBlock, e.maxOrder)
	h, o := e.firstFit(target)
	if h.IsNil() {
		return blockhdr.Nil, ErrNoSpace
	}

	e.remove(h)
	h.SetFree(false)

	for o > target {
		h, o = e.split(h, o)
	}

	return h, nil
}

// split halves header h (currently bucket order o, o > 0) in two: the
// lower half keeps h's address and becomes the returned (still owned,
// unlinked) block of the new, smaller order; the upper half is stamped
// free and inserted into bucket o-1.
func (e *Engine) split(h blockhdr.Handle, o int) (blockhdr.Handle, int) {
	half := h.Size64() / 2
	sibling := blockhdr.Handle(uintptr(h) + uintptr(half))
	blockhdr.Stamp(sibling, half, true)
	e.insert(sibling)

	h.SetSize64(half)
	// A split replaces one header's worth of what was payload with a new
	// header for the sibling: allocated bytes shrink by exactly one header
	// width, blocks owned by the allocator go up by one.
	e.stats.AllocatedBlocks++
	e.stats.AllocatedBytes -= int64(blockhdr.Size)

	obslog.Debug("buddyengine: split", "addr", uintptr(h), "newOrder", o-1)
	return h, o - 1
}

// Release returns a pooled block to the free lists and runs the iterative
// buddy-merge loop (spec §4.3.5). Double-release of an already-free block
// is absorbed as a no-op.
func (e *Engine) Release(h blockhdr.Handle) {
	if h.IsFree() {
		return
	}
	h.SetFree(true)

	o := blockhdr.OrderFor(h.Size64(), e.minBlock, e.maxOrder)
	for o < e.maxOrder {
		b := blockhdr.BuddyOf(h)
		if !e.inPool(b) || !b.IsFree() || b.Size64() != h.Size64() {
			break
		}
		e.remove(b)
		if uintptr(b) < uintptr(h) {
			h = b
		}
		h.SetSize64(h.Size64() * 2)
		o++
		// Undo of split: the absorbed header becomes payload again.
		e.stats.AllocatedBlocks--
		e.stats.AllocatedBytes += int64(blockhdr.Size)

		obslog.Debug("buddyengine: merged", "addr", uintptr(h), "newOrder", o)
	}
	e.insert(h)
}

// inPool reports whether addr h falls within the pool's reserved region.
// The merge loop uses it as a cheap guard before trusting IsFree()/Size64()
// of a speculative buddy address that XOR arithmetic might otherwise walk
// outside the pool for a block near the region's edge.
func (e *Engine) inPool(h blockhdr.Handle) bool {
	a := uintptr(h)
	return a >= e.poolBase && a < e.poolBase+e.poolSize
}

// TryGrowInPlace attempts the speculative-buddy-merge growth path of spec
// §4.3.6: simulate the merge loop using size/free checks only, without
// mutating any free list, stopping as soon as the simulated size reaches
// minNewSize or the next buddy fails a check. On success it commits the
// merges (removing the absorbed buddies from their buckets, growing h,
// and reporting whether the caller's payload must move left) and returns
// the new header handle; on failure it returns (Nil, false) and leaves
// every block untouched.
func (e *Engine) TryGrowInPlace(h blockhdr.Handle, minNewSize uint64) (blockhdr.Handle, bool) {
	candidate := h
	candidateSize := h.Size64()
	o := blockhdr.OrderFor(candidateSize, e.minBlock, e.maxOrder)

	type step struct {
		buddy blockhdr.Handle
		newLo blockhdr.Handle
	}
	var plan []step

	for candidateSize < minNewSize && o < e.maxOrder {
		probe := blockhdr.Handle(uintptr(candidate) ^ uintptr(candidateSize))
		if !e.inPool(probe) || !probe.IsFree() || probe.Size64() != candidateSize {
			break
		}
		lo := candidate
		if uintptr(probe) < uintptr(lo) {
			lo = probe
		}
		plan = append(plan, step{buddy: probe, newLo: lo})
		candidate = lo
		candidateSize *= 2
		o++
	}

	if candidateSize < minNewSize {
		return blockhdr.Nil, false
	}

	// Commit: remove every absorbed buddy from its bucket and grow h.
	merged := h
	size := h.Size64()
	for _, s := range plan {
		e.remove(s.buddy)
		merged = s.newLo
		size *= 2
		e.stats.AllocatedBlocks--
		e.stats.AllocatedBytes += int64(blockhdr.Size)
	}
	merged.SetSize64(size)
	if merged != h {
		// The merged block's base moved below h: relocate the header fields
		// first (size already written above), then the caller copies its
		// payload bytes with an overlap-safe move.
		merged.SetFree(false)
	}
	return merged, true
}
