package services

import (
	"sort"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// RankedChunk is an intermediate fused result before hydration.
type RankedChunk struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the fused relevance score.
	Score float64

	// Provenance records which ranking(s) produced the chunk.
	Provenance domain.Provenance

	// Seq is the chunk's index insertion sequence, kept for
	// deterministic tie-breaking.
	Seq uint64
}

// FuseRankings merges a semantic and a lexical ranking into one ordered
// list. It is a pure function with no internal state.
//
// Each side's raw scores are min-max normalised to [0,1] within that
// side's result set (a single-element or all-equal set normalises to
// 1.0 for every member, avoiding a divide by zero). The fused score is
// weightSemantic*normSemantic + weightLexical*normLexical, with a chunk
// absent from one side contributing 0 for that side. Results sort
// descending by fused score, ties broken by index insertion order, and
// are truncated to k.
//
// A weight of 0 on one side degenerates to pure single-mode ranking:
// chunks present only in the zero-weighted side are dropped, so the
// output equals the nonzero side's own ranking exactly.
func FuseRankings(
	semantic []driven.VectorHit,
	lexical []driven.LexicalHit,
	weightSemantic, weightLexical float64,
	k int,
) []RankedChunk {
	if k <= 0 {
		return nil
	}

	semNorm := normaliseVector(semantic)
	lexNorm := normaliseLexical(lexical)

	fused := make(map[string]*RankedChunk, len(semantic)+len(lexical))
	order := make([]string, 0, len(semantic)+len(lexical))

	for _, hit := range semantic {
		fused[hit.ChunkID] = &RankedChunk{
			ChunkID:    hit.ChunkID,
			Score:      weightSemantic * semNorm[hit.ChunkID],
			Provenance: domain.ProvenanceSemantic,
			Seq:        hit.Seq,
		}
		order = append(order, hit.ChunkID)
	}

	for _, hit := range lexical {
		if existing, ok := fused[hit.ChunkID]; ok {
			existing.Score += weightLexical * lexNorm[hit.ChunkID]
			existing.Provenance = domain.ProvenanceBoth
			continue
		}
		fused[hit.ChunkID] = &RankedChunk{
			ChunkID:    hit.ChunkID,
			Score:      weightLexical * lexNorm[hit.ChunkID],
			Provenance: domain.ProvenanceLexical,
			Seq:        hit.Seq,
		}
		order = append(order, hit.ChunkID)
	}

	results := make([]RankedChunk, 0, len(order))
	for _, id := range order {
		rc := fused[id]
		// Zero-weight degeneration: a chunk ranked only by a side whose
		// weight is 0 was never rankable in the surviving mode.
		if weightSemantic == 0 && rc.Provenance == domain.ProvenanceSemantic {
			continue
		}
		if weightLexical == 0 && rc.Provenance == domain.ProvenanceLexical {
			continue
		}
		results = append(results, *rc)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Seq < results[j].Seq
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// normaliseVector min-max scales vector similarities to [0,1].
func normaliseVector(hits []driven.VectorHit) map[string]float64 {
	norm := make(map[string]float64, len(hits))
	if len(hits) == 0 {
		return norm
	}

	minScore, maxScore := hits[0].Similarity, hits[0].Similarity
	for _, h := range hits[1:] {
		if h.Similarity < minScore {
			minScore = h.Similarity
		}
		if h.Similarity > maxScore {
			maxScore = h.Similarity
		}
	}

	for _, h := range hits {
		norm[h.ChunkID] = minMax(h.Similarity, minScore, maxScore)
	}
	return norm
}

// normaliseLexical min-max scales BM25 scores to [0,1].
func normaliseLexical(hits []driven.LexicalHit) map[string]float64 {
	norm := make(map[string]float64, len(hits))
	if len(hits) == 0 {
		return norm
	}

	minScore, maxScore := hits[0].Score, hits[0].Score
	for _, h := range hits[1:] {
		if h.Score < minScore {
			minScore = h.Score
		}
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}

	for _, h := range hits {
		norm[h.ChunkID] = minMax(h.Score, minScore, maxScore)
	}
	return norm
}

// minMax scales score into [0,1]. An all-equal (or single-element)
// range normalises to 1.0.
func minMax(score, minScore, maxScore float64) float64 {
	if maxScore == minScore {
		return 1.0
	}
	return (score - minScore) / (maxScore - minScore)
}
