// Package osgate wraps the two OS primitives the allocator engine needs
// and nothing else: a grow-only arena standing in for program-break
// extension, and anonymous page map/unmap for large blocks.
//
// The split into gate_unix.go / gate_windows.go / gate_fallback.go mirrors
// the teacher's internal/mmfile package (mmfile_unix.go / mmfile_windows.go
// / mmfile_fallback.go): real anonymous mappings via golang.org/x/sys on
// platforms that support them, a degraded plain-heap fallback elsewhere.
package osgate
