package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRanges_CoversFileExactly(t *testing.T) {
	ranges := SplitRanges(1000, 300)
	require.Len(t, ranges, 4)

	assert.Equal(t, int64(0), ranges[0].Start)
	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, ranges[i-1].End, ranges[i].Start, "ranges must be contiguous")
	}
	assert.Equal(t, int64(1000), ranges[len(ranges)-1].End)

	for i, r := range ranges[:len(ranges)-1] {
		assert.Equal(t, int64(300), r.Len(), "range %d", i)
	}
	assert.Equal(t, int64(100), ranges[3].Len(), "only the last range may be short")
}

func TestSplitRanges_ChunkLargerThanFile(t *testing.T) {
	ranges := SplitRanges(10, 1<<20)
	require.Len(t, ranges, 1)
	assert.Equal(t, ByteRange{Start: 0, End: 10}, ranges[0])
}

func TestSplitRanges_ExactMultiple(t *testing.T) {
	ranges := SplitRanges(900, 300)
	require.Len(t, ranges, 3)
	for _, r := range ranges {
		assert.Equal(t, int64(300), r.Len())
	}
}

func TestSplitRanges_EmptyFile(t *testing.T) {
	assert.Empty(t, SplitRanges(0, 300))
}

func TestSplitRanges_NonPositiveChunkSize(t *testing.T) {
	ranges := SplitRanges(500, 0)
	require.Len(t, ranges, 1)
	assert.Equal(t, ByteRange{Start: 0, End: 500}, ranges[0])
}
