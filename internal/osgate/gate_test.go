//go:build linux || darwin

package osgate

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func addrBytes(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n) //nolint:govet
}

func Test_ExtendBreak_GrowsContiguously(t *testing.T) {
	g := NewGate(1 << 20)

	base1, err := g.ExtendBreak(128)
	require.NoError(t, err)
	require.NotZero(t, base1)

	base2, err := g.ExtendBreak(256)
	require.NoError(t, err)
	require.Equal(t, base1+128, base2, "second extension must be contiguous with the first")
}

func Test_ExtendBreak_Exhaustion(t *testing.T) {
	g := NewGate(1024)

	_, err := g.ExtendBreak(1024)
	require.NoError(t, err)

	_, err = g.ExtendBreak(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func Test_MapPages_RoundsToPageSize(t *testing.T) {
	g := NewGate(0)
	ps := g.PageSize()
	require.Positive(t, ps)

	addr, size, err := g.MapPages(1)
	require.NoError(t, err)
	require.NotZero(t, addr)
	require.Equal(t, ps, size)
	require.NoError(t, g.UnmapPages(addr, size))
}

func Test_MapPages_FreshMappingIsZeroed(t *testing.T) {
	g := NewGate(0)
	addr, size, err := g.MapPages(4096)
	require.NoError(t, err)
	defer g.UnmapPages(addr, size)

	view := addrBytes(addr, int(size))
	for i, b := range view {
		require.Equal(t, byte(0), b, "byte %d of a fresh mapping must be zero", i)
	}
}

func Test_BreakAddr_MatchesNextExtend(t *testing.T) {
	g := NewGate(1 << 20)
	before, err := g.BreakAddr()
	require.NoError(t, err)

	base, err := g.ExtendBreak(64)
	require.NoError(t, err)
	require.Equal(t, before, base)
}
