package blockhdr

import (
	"encoding/binary"
	"unsafe"
)

// Size is the number of bytes occupied by a stamped header.
const Size = 32

const (
	offSize = 0
	offFree = 8
	offPrev = 16
	offNext = 24
)

// Handle is the raw address of a header's first byte. The zero Handle is
// the null handle and represents "no block" wherever prev/next/buddy links
// are optional.
type Handle uintptr

// Nil is the null handle.
const Nil Handle = 0

// IsNil reports whether h is the null handle.
func (h Handle) IsNil() bool { return h == 0 }

// view returns a byte slice over the n bytes starting at h's address. It is
// the single point in this package where a raw address is turned back into
// a Go slice; every field accessor below goes through it.
func (h Handle) view(n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(h))), n) //nolint:govet
}

// Size64 returns the stamped block size, including this header.
func (h Handle) Size64() uint64 {
	return binary.LittleEndian.Uint64(h.view(Size)[offSize : offSize+8])
}

// SetSize64 stamps the block size, including this header.
func (h Handle) SetSize64(n uint64) {
	binary.LittleEndian.PutUint64(h.view(Size)[offSize:offSize+8], n)
}

// IsFree reports the header's free flag.
func (h Handle) IsFree() bool {
	return binary.LittleEndian.Uint64(h.view(Size)[offFree:offFree+8]) != 0
}

// SetFree sets the header's free flag.
func (h Handle) SetFree(free bool) {
	var v uint64
	if free {
		v = 1
	}
	binary.LittleEndian.PutUint64(h.view(Size)[offFree:offFree+8], v)
}

// Prev returns the header's prev link, or Nil.
func (h Handle) Prev() Handle {
	return Handle(binary.LittleEndian.Uint64(h.view(Size)[offPrev : offPrev+8]))
}

// SetPrev sets the header's prev link.
func (h Handle) SetPrev(p Handle) {
	binary.LittleEndian.PutUint64(h.view(Size)[offPrev:offPrev+8], uint64(p))
}

// Next returns the header's next link, or Nil.
func (h Handle) Next() Handle {
	return Handle(binary.LittleEndian.Uint64(h.view(Size)[offNext : offNext+8]))
}

// SetNext sets the header's next link.
func (h Handle) SetNext(n Handle) {
	binary.LittleEndian.PutUint64(h.view(Size)[offNext:offNext+8], uint64(n))
}

// Stamp writes a fresh header: size, free flag, and null links.
func Stamp(h Handle, size uint64, free bool) {
	h.SetSize64(size)
	h.SetFree(free)
	h.SetPrev(Nil)
	h.SetNext(Nil)
}

// PayloadOf returns the address of the first payload byte following h.
func PayloadOf(h Handle) uintptr {
	return uintptr(h) + Size
}

// HeaderOf recovers the header handle for a payload address previously
// returned by PayloadOf. Callers are responsible for ensuring payload
// actually points at a live block's payload; this package performs no
// validation beyond what Size subtraction implies (matching spec: a
// foreign or corrupted pointer is undefined behavior, not a checked error).
func HeaderOf(payload uintptr) Handle {
	return Handle(payload - Size)
}

// Payload returns a byte slice view of h's n payload bytes, where n is
// typically Size64()-Size.
func Payload(h Handle, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(PayloadOf(h))), n) //nolint:govet
}

// BuddyOf returns the address of h's buddy: addr(h) XOR h.Size64(). This is
// only meaningful for pooled blocks whose containing arena base is aligned
// to the arena's maximum block size — see internal/buddyengine, which is
// the only caller that may rely on the result being another block's real
// header address.
func BuddyOf(h Handle) Handle {
	return Handle(uintptr(h) ^ uintptr(h.Size64()))
}

// OrderFor returns the smallest order o such that minBlock<<o >= need,
// clamped to maxOrder. Ties (need already an exact power-of-two multiple of
// minBlock) resolve to the exact-fit order.
func OrderFor(need uint64, minBlock uint64, maxOrder int) int {
	o := 0
	size := minBlock
	for size < need && o < maxOrder {
		size <<= 1
		o++
	}
	return o
}

// SizeForOrder returns minBlock<<o.
func SizeForOrder(minBlock uint64, o int) uint64 {
	return minBlock << uint(o)
}
