// Package bm25 provides an in-memory inverted index with BM25 ranking.
//
// Scoring uses the standard Okapi BM25 formula over term frequency,
// inverse document frequency across the current chunk set, and chunk
// length normalised against the average chunk length. The constants are
// configurable but stable across a build: k1 = 1.2, b = 0.75 by default.
//
// Like the vector index, every mutation builds a fresh immutable
// snapshot (postings, length statistics) and publishes it with a single
// atomic pointer swap.
package bm25

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

// Ensure Engine implements the interface.
var _ driven.LexicalIndex = (*Engine)(nil)

// Default BM25 constants.
const (
	// DefaultK1 controls term-frequency saturation.
	DefaultK1 = 1.2

	// DefaultB controls chunk-length normalisation.
	DefaultB = 0.75
)

// chunkState is the writer-side record of one indexed chunk.
type chunkState struct {
	id         string
	documentID string
	termFreq   map[string]int
	length     int
	seq        uint64
}

// posting locates a term occurrence within the snapshot's chunk list.
type posting struct {
	chunk int // index into snapshot.chunks
	tf    int
}

// snapshot is an immutable queryable view of the index.
type snapshot struct {
	chunks   []chunkState // ordered by insertion sequence
	postings map[string][]posting
	avgLen   float64
}

// Engine is an in-memory BM25 keyword index.
type Engine struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]

	tokenizer driven.Tokenizer
	k1        float64
	b         float64

	docs map[string][]chunkState // writer state, keyed by document ID
	seq  *atomic.Uint64
}

// Option configures the engine.
type Option func(*Engine)

// WithTokenizer replaces the default tokenization strategy.
func WithTokenizer(t driven.Tokenizer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tokenizer = t
		}
	}
}

// WithK1 sets the term-frequency saturation constant.
func WithK1(k1 float64) Option {
	return func(e *Engine) {
		e.k1 = k1
	}
}

// WithB sets the length normalisation constant.
func WithB(b float64) Option {
	return func(e *Engine) {
		e.b = b
	}
}

// WithSequence shares an insertion counter with other indexes, so that
// sequence numbers compare as global insertion order across them.
func WithSequence(seq *atomic.Uint64) Option {
	return func(e *Engine) {
		if seq != nil {
			e.seq = seq
		}
	}
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		tokenizer: NewTokenizer(),
		k1:        DefaultK1,
		b:         DefaultB,
		docs:      make(map[string][]chunkState),
		seq:       &atomic.Uint64{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.snap.Store(&snapshot{postings: map[string][]posting{}})
	return e
}

// Replace atomically replaces all postings for the given document.
// Tokenization happens before any state changes; a tokenizer failure
// leaves the prior snapshot in place.
func (e *Engine) Replace(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make([]chunkState, 0, len(chunks))
	for _, chunk := range chunks {
		tokens, err := e.tokenizer.Tokenize(chunk.Content)
		if err != nil {
			return fmt.Errorf("tokenize chunk %s: %w", chunk.ID, err)
		}
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		next = append(next, chunkState{
			id:         chunk.ID,
			documentID: documentID,
			termFreq:   tf,
			length:     len(tokens),
			seq:        e.seq.Add(1),
		})
	}

	// All-or-nothing: an abort before publish leaves the prior state.
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(next) == 0 {
		delete(e.docs, documentID)
	} else {
		e.docs[documentID] = next
	}
	e.snap.Store(e.build())
	return nil
}

// RemoveDocument removes all postings for the given document.
func (e *Engine) RemoveDocument(ctx context.Context, documentID string) error {
	return e.Replace(ctx, documentID, nil)
}

// build assembles a fresh snapshot from the writer state, recomputing
// postings and length statistics. Caller holds e.mu.
func (e *Engine) build() *snapshot {
	total := 0
	for _, chunks := range e.docs {
		total += len(chunks)
	}

	snap := &snapshot{
		chunks:   make([]chunkState, 0, total),
		postings: make(map[string][]posting),
	}
	for _, chunks := range e.docs {
		snap.chunks = append(snap.chunks, chunks...)
	}
	sort.Slice(snap.chunks, func(i, j int) bool {
		return snap.chunks[i].seq < snap.chunks[j].seq
	})

	var totalLen int
	for i, chunk := range snap.chunks {
		totalLen += chunk.length
		for term, tf := range chunk.termFreq {
			snap.postings[term] = append(snap.postings[term], posting{chunk: i, tf: tf})
		}
	}
	if len(snap.chunks) > 0 {
		snap.avgLen = float64(totalLen) / float64(len(snap.chunks))
	}
	return snap
}

// Search performs a BM25-ranked keyword search,
// ties broken by insertion order (earlier wins).
func (e *Engine) Search(_ context.Context, query string, k int) ([]driven.LexicalHit, error) {
	snap := e.snap.Load()
	if len(snap.chunks) == 0 || k <= 0 {
		return nil, nil
	}

	terms, err := e.tokenizer.Tokenize(query)
	if err != nil {
		return nil, fmt.Errorf("tokenize query: %w", err)
	}
	if len(terms) == 0 {
		return nil, nil
	}

	// Deduplicate query terms; repeating a term does not boost it.
	seen := make(map[string]bool, len(terms))
	scores := make(map[int]float64)
	n := float64(len(snap.chunks))

	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true

		postings := snap.postings[term]
		if len(postings) == 0 {
			continue
		}
		df := float64(len(postings))
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))

		for _, p := range postings {
			chunk := snap.chunks[p.chunk]
			tf := float64(p.tf)
			lenNorm := 1 - e.b + e.b*float64(chunk.length)/snap.avgLen
			scores[p.chunk] += idf * (tf * (e.k1 + 1)) / (tf + e.k1*lenNorm)
		}
	}

	if len(scores) == 0 {
		return nil, nil
	}

	hits := make([]driven.LexicalHit, 0, len(scores))
	for i, score := range scores {
		hits = append(hits, driven.LexicalHit{
			ChunkID: snap.chunks[i].id,
			Score:   score,
			Seq:     snap.chunks[i].seq,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Seq < hits[j].Seq
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len reports the number of indexed chunks.
func (e *Engine) Len() int {
	return len(e.snap.Load().chunks)
}

// Close releases resources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = make(map[string][]chunkState)
	e.snap.Store(&snapshot{postings: map[string][]posting{}})
	return nil
}
