// Command quaero is a hybrid retrieval engine for document Q&A.
package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/search/bm25"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/vector/brute"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/services"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quaero: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	cli.SetSettingsService(settingsService)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// AI services degrade gracefully: without an embedder only keyword
	// retrieval works, without an LLM questions cannot be answered.
	// The commands report the missing piece when it is actually needed.
	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		logger.Warn("%v", err)
		embedder = nil
	}

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("%v", err)
		llm = nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer store.Close()

	// Both indexes share one insertion counter so fused-score ties
	// break by global insertion order across them.
	var indexSeq atomic.Uint64
	vectorIndex := brute.New(ai.EmbeddingDimensionsFor(&settings.Embedding), brute.WithSequence(&indexSeq))
	defer vectorIndex.Close()

	lexicalIndex := bm25.New(bm25.WithSequence(&indexSeq))
	defer lexicalIndex.Close()

	retrievalService, err := services.NewRetrievalService(
		store.DocumentStore(), vectorIndex, lexicalIndex, embedder, settings.Retrieval,
	)
	if err != nil {
		return fmt.Errorf("creating retrieval service: %w", err)
	}

	if err := retrievalService.Reload(context.Background()); err != nil {
		return fmt.Errorf("rebuilding indexes: %w", err)
	}

	cli.SetRetrievalService(retrievalService)

	if llm != nil {
		defer llm.Close()

		promptStore, err := file.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("opening prompt store: %w", err)
		}
		if setter, ok := llm.(interface{ SetPromptStore(driven.PromptStore) }); ok {
			setter.SetPromptStore(promptStore)
		}

		answerService, err := services.NewAnswerService(
			retrievalService, store.DocumentStore(), llm, store.ConversationStore(), settings.Retrieval,
		)
		if err != nil {
			return fmt.Errorf("creating answer service: %w", err)
		}
		cli.SetAnswerService(answerService)
	}

	if embedder != nil {
		defer embedder.Close()
	}

	return cli.Execute()
}
