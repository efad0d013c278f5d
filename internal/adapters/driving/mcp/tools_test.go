package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns retrieval results", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			results: []domain.RetrievalResult{
				{
					Document: domain.Document{
						ID:    "doc-1",
						Title: "Test Doc",
						URI:   "/path/to/doc.txt",
					},
					Chunk: domain.Chunk{
						Content:  "This is the content",
						Position: 2,
					},
					Score:      0.95,
					Provenance: domain.ProvenanceBoth,
				},
			},
		}

		ports := &Ports{Retrieval: mockRetrieval}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RetrieveInput{Query: "test", TopK: 10}
		_, output, err := server.handleRetrieve(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "Test Doc", output.Results[0].Title)
		assert.Equal(t, "/path/to/doc.txt", output.Results[0].URI)
		assert.Equal(t, 2, output.Results[0].Position)
		assert.Equal(t, 0.95, output.Results[0].Score)
		assert.Equal(t, "both", output.Results[0].Provenance)
		assert.Equal(t, "This is the content", output.Results[0].Content)
	})

	t.Run("passes mode and top_k through", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{}
		ports := &Ports{Retrieval: mockRetrieval}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RetrieveInput{Query: "test", Mode: "semantic", TopK: 3}
		_, _, err = server.handleRetrieve(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "test", mockRetrieval.lastQuery)
		assert.Equal(t, domain.ModeSemantic, mockRetrieval.lastOpts.Mode)
		assert.Equal(t, 3, mockRetrieval.lastOpts.TopK)
		assert.Equal(t, mcpSessionID, mockRetrieval.lastOpts.SessionID)
	})

	t.Run("returns error on retrieval failure", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			err: errors.New("retrieval failed"),
		}

		ports := &Ports{Retrieval: mockRetrieval}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RetrieveInput{Query: "test"}
		_, _, err = server.handleRetrieve(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "retrieval failed")
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		mockAnswer := &mockAnswerService{
			answer: &domain.Answer{
				Text: "The answer.",
				Sources: []domain.RetrievalResult{
					{Document: domain.Document{ID: "doc-1", Title: "Test Doc"}},
					{Document: domain.Document{ID: "doc-2"}},
				},
			},
		}

		ports := &Ports{
			Retrieval: &mockRetrievalService{},
			Answer:    mockAnswer,
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "what is this?"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "The answer.", output.Answer)
		// Untitled documents fall back to their ID
		assert.Equal(t, []string{"Test Doc", "doc-2"}, output.Sources)
		assert.Equal(t, "what is this?", mockAnswer.lastQuestion)
	})

	t.Run("errors without answer service", func(t *testing.T) {
		ports := &Ports{Retrieval: &mockRetrievalService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "what is this?"}
		_, _, err = server.handleAsk(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("returns error on ask failure", func(t *testing.T) {
		ports := &Ports{
			Retrieval: &mockRetrievalService{},
			Answer:    &mockAnswerService{err: errors.New("llm unreachable")},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm unreachable")
	})
}
