package buddyengine

import "github.com/latticemem/buddyalloc/internal/blockhdr"

// insert places h into its bucket (order determined by h's stamped size)
// keeping the bucket in strictly ascending address order, and updates the
// free counters. h must not already be linked anywhere.
func (e *Engine) insert(h blockhdr.Handle) {
	o := blockhdr.OrderFor(h.Size64(), e.minBlock, e.maxOrder)

	var prev blockhdr.Handle
	cur := e.heads[o]
	for !cur.IsNil() && cur < h {
		prev = cur
		cur = cur.Next()
	}

	h.SetPrev(prev)
	h.SetNext(cur)
	if !cur.IsNil() {
		cur.SetPrev(h)
	}
	if prev.IsNil() {
		e.heads[o] = h
	} else {
		prev.SetNext(h)
	}

	e.stats.FreeBlocks++
	e.stats.FreeBytes += int64(h.Size64()) - blockhdr.Size
}

// remove unlinks h from its bucket and updates the free counters. h must
// currently be linked in bucket order_for(h.Size64()).
func (e *Engine) remove(h blockhdr.Handle) {
	o := blockhdr.OrderFor(h.Size64(), e.minBlock, e.maxOrder)

	prev, next := h.Prev(), h.Next()
	if prev.IsNil() {
		e.heads[o] = next
	} else {
		prev.SetNext(next)
	}
	if !next.IsNil() {
		next.SetPrev(prev)
	}
	h.SetPrev(blockhdr.Nil)
	h.SetNext(blockhdr.Nil)

	e.stats.FreeBlocks--
	e.stats.FreeBytes -= int64(h.Size64()) - blockhdr.Size
}

// firstFit scans buckets [target, maxOrder] in ascending order and returns
// the head of the first non-empty bucket found, along with its order.
// Returns (Nil, -1) if every bucket in range is empty.
func (e *Engine) firstFit(target int) (blockhdr.Handle, int) {
	for o := target; o <= e.maxOrder; o++ {
		if h := e.heads[o]; !h.IsNil() {
			return h, o
		}
	}
	return blockhdr.Nil, -1
}
