// Package largeblock is the Large-Block List: a single LIFO-ordered
// doubly-linked list of blocks served directly by a private page mapping,
// for requests too big for the pool's maximum block size.
//
// Each block is obtained from exactly one osgate.MapPages call and
// returned to the OS with exactly one UnmapPages call; there is no
// splitting, merging, or size-class structure, mirroring how the
// teacher's internal/mmfile treats a whole mapped file as a single span
// rather than a pool of smaller units.
package largeblock
