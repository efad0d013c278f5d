// Package brute provides an exact cosine-similarity vector index.
//
// Every mutation builds a fresh immutable snapshot and publishes it with
// a single atomic pointer swap, so concurrent searches observe either
// the prior or the fully-updated state. Searching is a brute-force scan,
// which is exact and fast enough at CLI scale; an ANN backend can be
// swapped in behind the same driven.VectorIndex port.
package brute

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one indexed vector. Entries are immutable once part of a
// published snapshot.
type entry struct {
	chunkID    string
	documentID string
	vector     []float32
	norm       float64
	seq        uint64
}

// snapshot is an immutable view of the index, kept in insertion order.
// dims is 0 until the first vector fixes it for the index's lifetime.
type snapshot struct {
	entries []entry
	dims    int
}

// Index is a brute-force cosine similarity index.
type Index struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
	seq  *atomic.Uint64
}

// Option configures the index.
type Option func(*Index)

// WithSequence shares an insertion counter with other indexes, so that
// sequence numbers compare as global insertion order across them.
func WithSequence(seq *atomic.Uint64) Option {
	return func(idx *Index) {
		if seq != nil {
			idx.seq = seq
		}
	}
}

// New creates an index. If dimensions is 0 the dimensionality is fixed
// by the first vector inserted; it never changes afterwards.
func New(dimensions int, opts ...Option) *Index {
	idx := &Index{seq: &atomic.Uint64{}}
	for _, opt := range opts {
		opt(idx)
	}
	idx.snap.Store(&snapshot{dims: dimensions})
	return idx
}

// Replace atomically replaces all entries for the given document.
func (idx *Index) Replace(ctx context.Context, documentID string, entries []driven.VectorEntry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	old := idx.snap.Load()
	dims := old.dims
	for _, e := range entries {
		if dims == 0 {
			dims = len(e.Embedding)
		}
		if len(e.Embedding) != dims {
			return fmt.Errorf("%w: got %d dimensions, index has %d",
				domain.ErrDimensionMismatch, len(e.Embedding), dims)
		}
	}

	next := &snapshot{
		entries: make([]entry, 0, len(old.entries)+len(entries)),
		dims:    dims,
	}
	for _, e := range old.entries {
		if e.documentID != documentID {
			next.entries = append(next.entries, e)
		}
	}
	for _, e := range entries {
		next.entries = append(next.entries, entry{
			chunkID:    e.ChunkID,
			documentID: documentID,
			vector:     e.Embedding,
			norm:       norm(e.Embedding),
			seq:        idx.seq.Add(1),
		})
	}

	// All-or-nothing: an abort before publish leaves the prior state.
	if err := ctx.Err(); err != nil {
		return err
	}

	idx.snap.Store(next)
	return nil
}

// RemoveDocument removes all entries for the given document.
func (idx *Index) RemoveDocument(ctx context.Context, documentID string) error {
	return idx.Replace(ctx, documentID, nil)
}

// Search returns the k most similar entries to the query vector,
// ties broken by insertion order (earlier wins).
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	snap := idx.snap.Load()
	if len(snap.entries) == 0 || k <= 0 {
		return nil, nil
	}

	if len(query) != snap.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), snap.dims)
	}

	queryNorm := norm(query)
	hits := make([]driven.VectorHit, 0, len(snap.entries))
	for _, e := range snap.entries {
		hits = append(hits, driven.VectorHit{
			ChunkID:    e.chunkID,
			Similarity: cosine(query, queryNorm, e.vector, e.norm),
			Seq:        e.seq,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Seq < hits[j].Seq
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len reports the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.snap.Load().entries)
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.snap.Store(&snapshot{})
	return nil
}

// norm computes the Euclidean norm of the vector.
func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine computes cosine similarity given precomputed norms.
// Zero vectors score 0 rather than dividing by zero.
func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (aNorm * bNorm)
}
