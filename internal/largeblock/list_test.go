//go:build linux || darwin

package largeblock

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/latticemem/buddyalloc/internal/blockhdr"
	"github.com/latticemem/buddyalloc/internal/osgate"
)

func Test_Alloc_ReturnsPageAlignedZeroedBlock(t *testing.T) {
	l := New(osgate.NewGate(0))

	h, err := l.Alloc(200_000)
	require.NoError(t, err)
	require.False(t, h.IsNil())
	require.False(t, h.IsFree())

	ps := l.gate.PageSize()
	require.Zero(t, h.Size64()%uint64(ps))
	require.GreaterOrEqual(t, h.Size64(), uint64(200_000))

	payload := unsafe.Slice((*byte)(unsafe.Pointer(blockhdr.PayloadOf(h))), 4096)
	for i, b := range payload {
		require.Equal(t, byte(0), b, "byte %d of a fresh large block must be zero", i)
	}
}

func Test_Alloc_LinksAtHead_LIFO(t *testing.T) {
	l := New(osgate.NewGate(0))

	h1, err := l.Alloc(100_000)
	require.NoError(t, err)
	h2, err := l.Alloc(100_000)
	require.NoError(t, err)

	require.Equal(t, h2, l.head)
	require.Equal(t, h1, h2.Next())
	require.Equal(t, h2, h1.Prev())
	require.True(t, h1.Next().IsNil())
}

func Test_Release_UnlinksAndUnmaps(t *testing.T) {
	l := New(osgate.NewGate(0))

	h1, err := l.Alloc(100_000)
	require.NoError(t, err)
	h2, err := l.Alloc(100_000)
	require.NoError(t, err)

	require.NoError(t, l.Release(h2))
	require.Equal(t, h1, l.head)
	require.True(t, h1.Prev().IsNil())

	st := l.Stats()
	require.EqualValues(t, 1, st.AllocatedBlocks)
}

func Test_Stats_TrackBlocksAndBytes(t *testing.T) {
	l := New(osgate.NewGate(0))

	h, err := l.Alloc(200_000)
	require.NoError(t, err)

	st := l.Stats()
	require.EqualValues(t, 1, st.AllocatedBlocks)
	require.EqualValues(t, int64(h.Size64())-blockhdr.Size, st.AllocatedBytes)

	require.NoError(t, l.Release(h))
	st = l.Stats()
	require.EqualValues(t, 0, st.AllocatedBlocks)
	require.EqualValues(t, 0, st.AllocatedBytes)
}
