package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/quaero-cli/internal/chunker"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService coordinates the hybrid retrieval engine: it owns
// indexing fan-in (chunk, embed, publish to both indexes) and
// query-time fan-out (parallel lookups, fusion, hydration).
type RetrievalService struct {
	docStore     driven.DocumentStore
	vectorIndex  driven.VectorIndex
	lexicalIndex driven.LexicalIndex
	embedder     driven.EmbeddingService
	chunker      *chunker.Chunker
	cfg          domain.Config

	// indexMu serializes writers across BOTH indexes: a document
	// re-index touches both and must not interleave with another.
	indexMu sync.Mutex
}

// NewRetrievalService creates the retrieval coordinator. The
// configuration is validated up front; invalid combinations are
// rejected before any indexing or query work begins.
func NewRetrievalService(
	docStore driven.DocumentStore,
	vectorIndex driven.VectorIndex,
	lexicalIndex driven.LexicalIndex,
	embedder driven.EmbeddingService,
	cfg domain.Config,
) (*RetrievalService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ch, err := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)
	if err != nil {
		return nil, err
	}

	return &RetrievalService{
		docStore:     docStore,
		vectorIndex:  vectorIndex,
		lexicalIndex: lexicalIndex,
		embedder:     embedder,
		chunker:      ch,
		cfg:          cfg,
	}, nil
}

// Config returns the service's validated configuration.
func (s *RetrievalService) Config() domain.Config {
	return s.cfg
}

// IndexDocument chunks and indexes the document's raw text, fully
// replacing any prior version. Returns the number of chunks indexed.
//
// The operation either fully completes or leaves the prior state
// intact: embeddings are generated before any index is touched, a
// failure publishing the second index rolls the first back, and a
// failed store write rolls both indexes back to the prior chunk set.
func (s *RetrievalService) IndexDocument(ctx context.Context, doc domain.Document, rawText string) (int, error) {
	if doc.ID == "" {
		return 0, fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}
	if !doc.Origin.IsValid() {
		return 0, fmt.Errorf("%w: unknown origin %q", domain.ErrInvalidInput, doc.Origin)
	}

	logger.Section("Document Indexing")
	logger.Debug("Document: %s (%s)", doc.ID, doc.Origin)

	chunks := s.chunker.Split(doc.ID, rawText)
	logger.Debug("Chunked into %d segments (size=%d, overlap=%d)",
		len(chunks), s.cfg.ChunkSize, s.cfg.ChunkOverlap)

	// Embed before touching any index so a collaborator failure cannot
	// leave a partial update behind.
	entries, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return 0, err
	}

	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	// Prior chunk set, kept for rollback if the second publish fails.
	prior, err := s.docStore.GetChunks(ctx, doc.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("loading prior chunks: %w", err)
	}

	if err := s.vectorIndex.Replace(ctx, doc.ID, entries); err != nil {
		return 0, fmt.Errorf("publishing vector index: %w", err)
	}

	if err := s.lexicalIndex.Replace(ctx, doc.ID, chunks); err != nil {
		s.rollbackVector(doc.ID, prior)
		return 0, fmt.Errorf("%w: publishing lexical index: %v", domain.ErrIndexing, err)
	}

	// A store failure past this point must also undo the index publishes,
	// or queries would rank the new tokens but hydrate the old text.
	doc.IngestedAt = time.Now()
	if err := s.docStore.SaveDocument(ctx, &doc); err != nil {
		s.rollbackIndexes(doc.ID, prior)
		return 0, fmt.Errorf("saving document: %w", err)
	}
	if err := s.docStore.SaveChunks(ctx, doc.ID, chunks); err != nil {
		s.rollbackIndexes(doc.ID, prior)
		return 0, fmt.Errorf("saving chunks: %w", err)
	}

	logger.Info("Indexed %s: %d chunks", doc.ID, len(chunks))
	return len(chunks), nil
}

// embedChunks generates embeddings for every chunk and attaches them.
// A collaborator failure surfaces as ErrIndexing.
func (s *RetrievalService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]driven.VectorEntry, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding %d chunks: %v", domain.ErrIndexing, len(chunks), err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d chunks",
			domain.ErrIndexing, len(embeddings), len(chunks))
	}

	entries := make([]driven.VectorEntry, len(chunks))
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
		entries[i] = driven.VectorEntry{ChunkID: chunks[i].ID, Embedding: embeddings[i]}
	}
	return entries, nil
}

// rollbackIndexes restores both in-memory indexes to the prior chunk
// set after a failed store write. Best effort; logged on failure.
func (s *RetrievalService) rollbackIndexes(documentID string, prior []domain.Chunk) {
	s.rollbackVector(documentID, prior)
	if err := s.lexicalIndex.Replace(context.Background(), documentID, prior); err != nil {
		logger.Warn("Keyword index rollback for %s failed: %v", documentID, err)
	}
}

// rollbackVector restores the vector index to the prior chunk set after
// a failed lexical publish. Best effort; logged on failure.
func (s *RetrievalService) rollbackVector(documentID string, prior []domain.Chunk) {
	entries := make([]driven.VectorEntry, 0, len(prior))
	for _, chunk := range prior {
		if len(chunk.Embedding) > 0 {
			entries = append(entries, driven.VectorEntry{ChunkID: chunk.ID, Embedding: chunk.Embedding})
		}
	}
	if err := s.vectorIndex.Replace(context.Background(), documentID, entries); err != nil {
		logger.Warn("Vector index rollback for %s failed: %v", documentID, err)
	}
}

// RemoveDocument removes a document and its chunks from both indexes
// and the store.
func (s *RetrievalService) RemoveDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}

	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if err := s.vectorIndex.RemoveDocument(ctx, documentID); err != nil {
		return fmt.Errorf("removing from vector index: %w", err)
	}
	if err := s.lexicalIndex.RemoveDocument(ctx, documentID); err != nil {
		return fmt.Errorf("removing from lexical index: %w", err)
	}
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	logger.Info("Removed document %s", documentID)
	return nil
}

// ListDocuments returns all indexed documents.
func (s *RetrievalService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Reload republishes both in-memory indexes from the persisted chunk
// sets. Called at startup so a durable document store survives process
// restarts. Chunks without a stored embedding are indexed lexically only.
func (s *RetrievalService) Reload(ctx context.Context) error {
	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	for i := range docs {
		chunks, err := s.docStore.GetChunks(ctx, docs[i].ID)
		if err != nil {
			return fmt.Errorf("loading chunks for %s: %w", docs[i].ID, err)
		}

		entries := make([]driven.VectorEntry, 0, len(chunks))
		for j := range chunks {
			if len(chunks[j].Embedding) > 0 {
				entries = append(entries, driven.VectorEntry{
					ChunkID:   chunks[j].ID,
					Embedding: chunks[j].Embedding,
				})
			}
		}
		if len(entries) > 0 {
			if err := s.vectorIndex.Replace(ctx, docs[i].ID, entries); err != nil {
				return fmt.Errorf("rebuilding vector index for %s: %w", docs[i].ID, err)
			}
		}

		if err := s.lexicalIndex.Replace(ctx, docs[i].ID, chunks); err != nil {
			return fmt.Errorf("rebuilding keyword index for %s: %w", docs[i].ID, err)
		}
	}

	logger.Debug("Reloaded %d documents into in-memory indexes", len(docs))
	return nil
}

// Retrieve returns the top-k fused results for the query.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievalResult{}, nil
	}

	mode := opts.Mode
	if mode == "" {
		mode = s.cfg.Mode
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown retrieval mode %q", domain.ErrInvalidInput, mode)
	}

	k := opts.TopK
	if k <= 0 {
		k = s.cfg.TopK
	}

	logger.Debug("Query: %q mode=%s k=%d session=%s", query, mode, k, opts.SessionID)

	var ranked []RankedChunk
	switch mode {
	case domain.ModeSemantic:
		semantic, err := s.semanticLookup(ctx, query, k)
		if err != nil {
			return nil, err
		}
		// Same fusion path with the lexical side absent.
		ranked = FuseRankings(semantic, nil, 1, 0, k)

	case domain.ModeHybrid:
		semantic, lexical, err := s.hybridLookup(ctx, query, k)
		if err != nil {
			return nil, err
		}
		ranked = FuseRankings(semantic, lexical, s.cfg.WeightSemantic, s.cfg.WeightLexical, k)
	}

	logger.Debug("Fused to %d candidates", len(ranked))
	return s.hydrate(ctx, ranked)
}

// semanticLookup embeds the query and searches the vector index.
func (s *RetrievalService) semanticLookup(ctx context.Context, query string, k int) ([]driven.VectorHit, error) {
	if s.vectorIndex == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	// An empty index cannot match anything; skip the embedding call.
	if s.vectorIndex.Len() == 0 {
		logger.Debug("Vector index empty, skipping lookup")
		return nil, nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := s.vectorIndex.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))
	return hits, nil
}

// lexicalLookup searches the keyword index.
func (s *RetrievalService) lexicalLookup(ctx context.Context, query string, k int) ([]driven.LexicalHit, error) {
	if s.lexicalIndex == nil {
		return nil, domain.ErrLexicalIndexUnavailable
	}

	hits, err := s.lexicalIndex.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}
	logger.Debug("Lexical search: %d hits", len(hits))
	return hits, nil
}

// hybridLookup fans out to both indexes in parallel. If one side fails
// the other side's ranking still serves; only a double failure is an
// error.
func (s *RetrievalService) hybridLookup(ctx context.Context, query string, k int) ([]driven.VectorHit, []driven.LexicalHit, error) {
	var (
		semantic    []driven.VectorHit
		lexical     []driven.LexicalHit
		semanticErr error
		lexicalErr  error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		semantic, semanticErr = s.semanticLookup(ctx, query, k)
	}()

	go func() {
		defer wg.Done()
		lexical, lexicalErr = s.lexicalLookup(ctx, query, k)
	}()

	wg.Wait()

	if semanticErr != nil && lexicalErr != nil {
		return nil, nil, fmt.Errorf("hybrid retrieval: semantic=%w, lexical=%w", semanticErr, lexicalErr)
	}
	if semanticErr != nil {
		logger.Warn("Semantic lookup failed, serving lexical only: %v", semanticErr)
		semantic = nil
	}
	if lexicalErr != nil {
		logger.Warn("Lexical lookup failed, serving semantic only: %v", lexicalErr)
		lexical = nil
	}

	return semantic, lexical, nil
}

// hydrate resolves ranked chunk IDs back to full chunk text and source
// document metadata for citation. Chunks or documents deleted since the
// lookup are skipped.
func (s *RetrievalService) hydrate(ctx context.Context, ranked []RankedChunk) ([]domain.RetrievalResult, error) {
	results := make([]domain.RetrievalResult, 0, len(ranked))

	for _, rc := range ranked {
		chunk, err := s.docStore.GetChunk(ctx, rc.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", rc.ChunkID, err)
		}

		doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get document %s: %w", chunk.DocumentID, err)
		}

		results = append(results, domain.RetrievalResult{
			Chunk:      *chunk,
			Document:   *doc,
			Score:      rc.Score,
			Provenance: rc.Provenance,
		})
	}

	return results, nil
}
