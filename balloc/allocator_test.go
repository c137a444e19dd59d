//go:build linux || darwin

package balloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func Test_Alloc_RejectsZeroAndOversize(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	require.Nil(t, a.Alloc(0))
	require.Nil(t, a.Alloc(a.cfg.MaxSize+1))
}

func Test_Alloc_Release_UpdatesCounters(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)

	// Warm the pool once so init's own counter bump is out of the way and
	// the "steady state" byte/block counts below are well defined.
	warm := a.Alloc(1)
	a.Release(warm)

	require.Positive(t, a.NumAllocatedBytes())
	freeBefore := a.NumFreeBlocks()

	p := a.Alloc(100)
	require.NotNil(t, p)

	// A lone alloc/release round trip re-merges every split sibling back
	// together, restoring the free-block count exactly.
	a.Release(p)
	require.Equal(t, freeBefore, a.NumFreeBlocks())
}

func Test_PoolExhaustion_SucceedsExactlyInitialBlocksTimes(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	maxBlock := a.maxPoolBlockSize()
	n := maxBlock - SizeMetaData

	successes := 0
	for {
		p := a.Alloc(n)
		if p == nil {
			break
		}
		successes++
	}
	require.Equal(t, ConfigSmallPool.InitialBlocks, successes)
}

func Test_SplitMergeRoundTrip_RestoresFreeBlockCount(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)

	// Touch the pool once so initialization has already happened and the
	// "steady state" free-block count is stable.
	warm := a.Alloc(1)
	a.Release(warm)
	freeBefore := a.NumFreeBlocks()

	p1 := a.Alloc(100)
	p2 := a.Alloc(100)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	a.Release(p1)
	a.Release(p2)

	require.Equal(t, freeBefore, a.NumFreeBlocks())
}

func Test_LargeBlockPath_MapsAndUnmaps(t *testing.T) {
	a := NewAllocator(DefaultConfig)

	before := a.NumAllocatedBlocks()
	p := a.Alloc(200_000)
	require.NotNil(t, p)
	require.Equal(t, before+1, a.NumAllocatedBlocks())

	a.Release(p)
	require.Equal(t, before, a.NumAllocatedBlocks())
}

func Test_FirstFit_IsDeterministic(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)

	pa := a.Alloc(100)
	pb := a.Alloc(100)
	pc := a.Alloc(100)
	require.NotNil(t, pa)
	require.NotNil(t, pb)
	require.NotNil(t, pc)

	a.Release(pa)
	a.Release(pb)
	a.Release(pc)

	n := a.Alloc(100)
	require.Equal(t, pa, n, "first-fit must hand back the lowest-address free block")
}

func Test_Reallocate_GrowsInPlaceWhenBuddyIsFree(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)

	p := a.Alloc(20)
	require.NotNil(t, p)
	src := unsafe.Slice((*byte)(p), 20)
	for i := range src {
		src[i] = byte(i + 1)
	}
	q := a.Alloc(20)
	a.Release(q)

	r := a.Reallocate(p, 60)
	require.NotNil(t, r)
	// On a fresh allocator first-fit hands q the order-0 block right after
	// p, which is p's buddy; with q released, p grows in place and keeps
	// its original payload.
	require.Equal(t, p, r)
	payload := unsafe.Slice((*byte)(r), 20)
	for i, b := range payload {
		require.Equal(t, byte(i+1), b, "byte %d must survive in-place growth", i)
	}
}

func Test_Reallocate_ShrinkIsNoop(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)

	p := a.Alloc(100)
	r := a.Reallocate(p, 10)
	require.Equal(t, p, r)
}

func Test_Reallocate_NullActsAsAlloc(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	r := a.Reallocate(nil, 50)
	require.NotNil(t, r)
}

func Test_Reallocate_ZeroSizeReturnsNullLeavesOldValid(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	p := a.Alloc(50)
	require.Nil(t, a.Reallocate(p, 0))

	// old pointer must still be usable.
	payload := (*byte)(p)
	*payload = 7
	require.Equal(t, byte(7), *payload)
}

func Test_ZeroedAlloc_RejectsZeroOperandsAndOverflow(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	require.Nil(t, a.ZeroedAlloc(0, 16))
	require.Nil(t, a.ZeroedAlloc(16, 0))
	require.Nil(t, a.ZeroedAlloc(20_000, 20_000))
}

func Test_ZeroedAlloc_ZeroesDirtiedBlock(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)

	p := a.Alloc(64)
	buf := unsafe.Slice((*byte)(p), 64)
	for i := range buf {
		buf[i] = 0xFF
	}
	a.Release(p)

	z := a.ZeroedAlloc(8, 8)
	require.NotNil(t, z)
	zbuf := unsafe.Slice((*byte)(z), 64)
	for i, b := range zbuf {
		require.Equal(t, byte(0), b, "byte %d must be zero after ZeroedAlloc reuse", i)
	}
}

func Test_Release_IgnoresNilSilently(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	require.NotPanics(t, func() { a.Release(nil) })
}

func Test_Release_DoubleReleaseIsNoop(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	p := a.Alloc(50)
	a.Release(p)
	before := a.NumFreeBlocks()
	a.Release(p)
	require.Equal(t, before, a.NumFreeBlocks())
}

func Test_NumMetaDataBytes_MatchesConstruction(t *testing.T) {
	a := NewAllocator(ConfigSmallPool)
	a.Alloc(10)
	a.Alloc(10)
	require.Equal(t, a.SizeMetaData()*a.NumAllocatedBlocks(), a.NumMetaDataBytes())
}
