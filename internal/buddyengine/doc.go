// Package buddyengine is the free-list engine: MAX_ORDER+1 ordered
// doubly-linked lists of free pooled blocks, one-shot lazy initialization
// that carves a pre-reserved, aligned region into InitialBlocks maximum-
// order blocks, allocation by smallest-sufficient-order search with
// recursive splitting, and release with iterative XOR-buddy merging.
//
// This is the hard part of the allocator and the only package with
// nontrivial algorithmic content — everything else in this module (the OS
// Memory Gate, the block header, the large-block list, and the public
// entry-point shell) is a thin, mostly mechanical layer around it.
//
// The design follows the teacher's hive/alloc.FastAllocator in spirit
// (segregated free structures, split-on-demand, coalesce-on-free, a single
// Engine value replacing FastAllocator's per-hive state) but not in
// mechanism: FastAllocator's heaps pick best-fit by size within a size
// class and coalesce lazily via O(1) offset/endOffset index maps, whereas
// this engine's buckets are exact power-of-two size classes searched
// first-fit by order and coalesced eagerly on every Release, per spec.
package buddyengine
