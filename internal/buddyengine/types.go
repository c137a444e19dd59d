package buddyengine

import (
	"github.com/latticemem/buddyalloc/internal/blockhdr"
	"github.com/latticemem/buddyalloc/internal/osgate"
)

// Stats is a snapshot of the engine's four monotone-or-bidirectional
// counters.
type Stats struct {
	FreeBlocks      int64
	FreeBytes       int64
	AllocatedBlocks int64
	AllocatedBytes  int64
}

// Engine is the free-list engine. The zero value is not usable; construct
// with New.
type Engine struct {
	gate *osgate.Gate

	minBlock      uint64
	maxOrder      int
	initialBlocks int

	initialized bool
	initFailed  bool

	poolBase uintptr
	poolSize uintptr

	heads []blockhdr.Handle // len == maxOrder+1, indexed by order

	stats Stats
}

// New returns an Engine that will lazily carve its pool from gate on first
// Alloc call. minBlock must be a power of two.
func New(gate *osgate.Gate, minBlock uint64, maxOrder int, initialBlocks int) *Engine {
	return &Engine{
		gate:          gate,
		minBlock:      minBlock,
		maxOrder:      maxOrder,
		initialBlocks: initialBlocks,
		heads:         make([]blockhdr.Handle, maxOrder+1),
	}
}

// MaxBlockSize returns minBlock<<maxOrder, the largest block size the pool
// can serve directly.
func (e *Engine) MaxBlockSize() uint64 {
	return blockhdr.SizeForOrder(e.minBlock, e.maxOrder)
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return e.stats
}
