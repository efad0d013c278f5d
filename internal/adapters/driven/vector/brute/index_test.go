package brute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

func entries(pairs ...any) []driven.VectorEntry {
	out := make([]driven.VectorEntry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, driven.VectorEntry{
			ChunkID:   pairs[i].(string),
			Embedding: pairs[i+1].([]float32),
		})
	}
	return out
}

func TestIndex_Search_Empty(t *testing.T) {
	idx := New(3)

	hits, err := idx.Search(context.Background(), []float32{1, 0, 0}, 5)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Replace_DimensionMismatch(t *testing.T) {
	idx := New(0)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries("a", []float32{1, 0, 0})))

	// Second document with a different dimensionality must be rejected
	// without touching the index.
	err := idx.Replace(ctx, "doc2", entries("b", []float32{1, 0}))
	require.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 1, idx.Len())

	// Mismatch within a single batch is also rejected atomically.
	err = idx.Replace(ctx, "doc3", entries("c", []float32{0, 1, 0}, "d", []float32{0, 1}))
	require.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_Search_RanksByCosine(t *testing.T) {
	idx := New(2)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries(
		"aligned", []float32{1, 0},
		"diagonal", []float32{1, 1},
		"orthogonal", []float32{0, 1},
	)))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "aligned", hits[0].ChunkID)
	assert.Equal(t, "diagonal", hits[1].ChunkID)
	assert.Equal(t, "orthogonal", hits[2].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.InDelta(t, 0.7071, hits[1].Similarity, 1e-3)
}

func TestIndex_Search_TiesBreakByInsertionOrder(t *testing.T) {
	idx := New(2)
	ctx := context.Background()

	// Identical vectors: earlier insertion must win.
	require.NoError(t, idx.Replace(ctx, "doc1", entries(
		"first", []float32{1, 1},
		"second", []float32{1, 1},
	)))

	hits, err := idx.Search(ctx, []float32{1, 1}, 2)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].ChunkID)
	assert.Equal(t, "second", hits[1].ChunkID)
	assert.Less(t, hits[0].Seq, hits[1].Seq)
}

func TestIndex_Search_TruncatesToK(t *testing.T) {
	idx := New(2)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries(
		"a", []float32{1, 0},
		"b", []float32{0.9, 0.1},
		"c", []float32{0.5, 0.5},
	)))

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// Fewer candidates than k: return all, never pad.
	hits, err = idx.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestIndex_Search_QueryDimensionMismatch(t *testing.T) {
	idx := New(3)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries("a", []float32{1, 0, 0})))

	_, err := idx.Search(ctx, []float32{1, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestIndex_Replace_FullReplace(t *testing.T) {
	idx := New(2)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries("old-a", []float32{1, 0}, "old-b", []float32{0, 1})))
	require.NoError(t, idx.Replace(ctx, "doc2", entries("kept", []float32{1, 1})))

	// Re-indexing doc1 must remove its prior chunk IDs entirely.
	require.NoError(t, idx.Replace(ctx, "doc1", entries("new-a", []float32{1, 0})))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ChunkID
	}
	assert.ElementsMatch(t, []string{"new-a", "kept"}, ids)
	assert.NotContains(t, ids, "old-a")
	assert.NotContains(t, ids, "old-b")
}

func TestIndex_RemoveDocument(t *testing.T) {
	idx := New(2)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries("a", []float32{1, 0})))
	require.NoError(t, idx.RemoveDocument(ctx, "doc1"))

	assert.Equal(t, 0, idx.Len())
	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Replace_CancelledBeforePublish(t *testing.T) {
	idx := New(2)
	ctx := context.Background()

	require.NoError(t, idx.Replace(ctx, "doc1", entries("a", []float32{1, 0})))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	err := idx.Replace(cancelled, "doc1", entries("b", []float32{0, 1}))
	require.Error(t, err)

	// Prior state intact.
	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ChunkID)
}

func TestIndex_ConcurrentReadsDuringReplace(t *testing.T) {
	idx := New(2)
	ctx := context.Background()
	require.NoError(t, idx.Replace(ctx, "doc1", entries("a", []float32{1, 0}, "b", []float32{0, 1})))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = idx.Replace(ctx, "doc1", entries("a", []float32{1, 0}, "b", []float32{0, 1}))
		}
	}()

	// Readers must always observe a complete two-entry snapshot.
	for i := 0; i < 200; i++ {
		hits, err := idx.Search(ctx, []float32{1, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	}
	<-done
}
