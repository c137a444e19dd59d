package largeblock

import (
	"errors"

	"github.com/latticemem/buddyalloc/internal/blockhdr"
	"github.com/latticemem/buddyalloc/internal/obslog"
	"github.com/latticemem/buddyalloc/internal/osgate"
)

// ErrExhausted is returned when the backing OS Memory Gate could not
// satisfy a mapping request.
var ErrExhausted = errors.New("largeblock: mapping request failed")

// Stats is a snapshot of the list's block/byte tallies.
type Stats struct {
	AllocatedBlocks int64
	AllocatedBytes  int64
}

// List is the Large-Block List: every block it owns was obtained from a
// single osgate.MapPages call and is released with a single UnmapPages
// call. There is no size-class structure; membership is just "currently
// mapped", tracked as a LIFO-ordered doubly-linked list per spec.
type List struct {
	gate  *osgate.Gate
	head  blockhdr.Handle
	stats Stats
}

// New returns a List backed by gate.
func New(gate *osgate.Gate) *List {
	return &List{gate: gate}
}

// Alloc obtains a fresh page mapping of at least required bytes (already
// including the header), stamps a header at its base, links it at the
// head of the list, and returns the header handle. Fresh mappings are
// zero-filled by the OS Memory Gate, so callers may rely on a large
// block's payload being zero without an explicit memset.
func (l *List) Alloc(required uint64) (blockhdr.Handle, error) {
	addr, size, err := l.gate.MapPages(uintptr(required))
	if err != nil {
		return blockhdr.Nil, ErrExhausted
	}

	h := blockhdr.Handle(addr)
	blockhdr.Stamp(h, uint64(size), false)

	h.SetNext(l.head)
	if !l.head.IsNil() {
		l.head.SetPrev(h)
	}
	l.head = h

	l.stats.AllocatedBlocks++
	l.stats.AllocatedBytes += int64(size) - blockhdr.Size

	obslog.Debug("largeblock: mapped", "addr", addr, "size", size)
	return h, nil
}

// Release unlinks h from the list and unmaps its backing pages. Callers
// must not pass a handle that was not returned by Alloc on this List;
// unlike the pooled engine, double-release of a large block is undefined
// and out of contract per spec.
func (l *List) Release(h blockhdr.Handle) error {
	prev, next := h.Prev(), h.Next()
	if prev.IsNil() {
		l.head = next
	} else {
		prev.SetNext(next)
	}
	if !next.IsNil() {
		next.SetPrev(prev)
	}

	size := h.Size64()
	l.stats.AllocatedBlocks--
	l.stats.AllocatedBytes -= int64(size) - blockhdr.Size

	if err := l.gate.UnmapPages(uintptr(h), uintptr(size)); err != nil {
		return ErrExhausted
	}
	obslog.Debug("largeblock: unmapped", "addr", uintptr(h), "size", size)
	return nil
}

// Stats returns a snapshot of the list's block/byte tallies.
func (l *List) Stats() Stats {
	return l.stats
}
