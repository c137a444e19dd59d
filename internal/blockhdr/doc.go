// Package blockhdr provides pure functions over the in-band block header
// stamped at the start of every pooled or large block.
//
// A header occupies Size bytes immediately before a block's payload:
//
//	offset 0:  size (uint64) — total block size including this header
//	offset 8:  free flag (uint64, 0 or 1)
//	offset 16: prev (uint64) — raw address of the previous list node, 0 if none
//	offset 24: next (uint64) — raw address of the next list node, 0 if none
//
// All fields are 8-byte aligned so prev/next survive round-tripping through
// Handle without any unaligned-access concerns on platforms that care.
//
// Handle wraps a raw memory address rather than a Go pointer or slice
// because buddy addressing (BuddyOf) is XOR arithmetic on the address
// itself — this package holds the header field accessors and the
// header/payload and buddy address helpers, matching the header/payload
// translation helpers used by mempool.alloc in bnclabs/gostore
// (mem_bitpool.go) and the offset-diff trick in cloudwego/gopkg's
// buddy.go Free.
package blockhdr
