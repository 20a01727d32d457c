package chunkplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_ThreeChunks(t *testing.T) {
	chunks, err := Plan(10_000_000, 4_194_304)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, Chunk{Number: 1, Start: 0, End: 4_194_304}, chunks[0])
	assert.Equal(t, Chunk{Number: 2, Start: 4_194_304, End: 8_388_608}, chunks[1])
	assert.Equal(t, Chunk{Number: 3, Start: 8_388_608, End: 10_000_000}, chunks[2])
}

func TestPlan_Properties(t *testing.T) {
	sizes := []int64{1, 2, 100, 4095, 4096, 4097, 1 << 20, (1 << 20) + 1}
	chunkSizes := []int64{1, 7, 4096, 1 << 20}

	for _, size := range sizes {
		for _, chunkSize := range chunkSizes {
			chunks, err := Plan(size, chunkSize)
			require.NoError(t, err)

			want := (size + chunkSize - 1) / chunkSize
			require.Len(t, chunks, int(want), "size=%d chunk=%d", size, chunkSize)

			var covered int64
			for i, c := range chunks {
				assert.Equal(t, int32(i+1), c.Number, "ordinals are contiguous from 1")
				assert.Equal(t, covered, c.Start, "ranges must be gapless")
				if i < len(chunks)-1 {
					assert.Equal(t, chunkSize, c.Size(), "every chunk but the last is nominal size")
				}
				covered = c.End
			}
			assert.Equal(t, size, covered, "ranges must cover the file exactly")
		}
	}
}

func TestPlan_Deterministic(t *testing.T) {
	a, err := Plan(12345678, 4096)
	require.NoError(t, err)
	b, err := Plan(12345678, 4096)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlan_EmptyFile(t *testing.T) {
	chunks, err := Plan(0, DefaultChunkSize)
	require.NoError(t, err)
	require.Len(t, chunks, 1, "empty file yields one empty chunk")
	assert.Equal(t, Chunk{Number: 1, Start: 0, End: 0}, chunks[0])
	assert.Zero(t, chunks[0].Size())
}

func TestPlan_InvalidArgs(t *testing.T) {
	_, err := Plan(-1, 4096)
	assert.Error(t, err)

	_, err = Plan(100, 0)
	assert.Error(t, err)

	_, err = Plan(100, -5)
	assert.Error(t, err)
}
