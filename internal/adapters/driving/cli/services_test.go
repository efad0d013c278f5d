package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/services"
)

// setupTestServices swaps the package-level services for test doubles
// and returns a cleanup func restoring the originals.
func setupTestServices() func() {
	oldRetrieval := retrievalService
	oldAnswer := answerService
	oldSettings := settingsService

	retrievalService = newMockRetrievalService()
	answerService = newMockAnswerService()
	settingsService = services.NewSettingsService(memory.NewConfigStore(), nil)

	return func() {
		retrievalService = oldRetrieval
		answerService = oldAnswer
		settingsService = oldSettings
	}
}

type mockRetrievalService struct {
	results  []domain.RetrievalResult
	docs     []domain.Document
	err      error
	indexed  []domain.Document
	removed  []string
	lastOpts domain.RetrievalOptions
}

func newMockRetrievalService() *mockRetrievalService {
	return &mockRetrievalService{
		results: []domain.RetrievalResult{
			{
				Chunk: domain.Chunk{
					ID:         "chunk-1",
					DocumentID: "doc-1",
					Position:   0,
					Content:    "Payment is due within thirty days of invoice.",
				},
				Document: domain.Document{
					ID:     "doc-1",
					Origin: domain.OriginText,
					URI:    "/docs/contract.md",
					Title:  "Service Contract",
				},
				Score:      0.91,
				Provenance: domain.ProvenanceBoth,
			},
		},
		docs: []domain.Document{
			{
				ID:         "doc-1",
				Origin:     domain.OriginText,
				URI:        "/docs/contract.md",
				Title:      "Service Contract",
				IngestedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			},
		},
	}
}

func (m *mockRetrievalService) IndexDocument(_ context.Context, doc domain.Document, _ string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.indexed = append(m.indexed, doc)
	return 3, nil
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockRetrievalService) RemoveDocument(_ context.Context, documentID string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, documentID)
	return nil
}

func (m *mockRetrievalService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

type mockAnswerService struct {
	answer   *domain.Answer
	messages []domain.Message
	err      error
	cleared  []string
	lastAsk  string
}

func newMockAnswerService() *mockAnswerService {
	return &mockAnswerService{
		answer: &domain.Answer{
			Text: "Payment is due within thirty days.",
			Sources: []domain.RetrievalResult{
				{
					Document: domain.Document{ID: "doc-1", Title: "Service Contract"},
					Score:    0.91,
				},
			},
		},
		messages: []domain.Message{
			{
				ID:        "msg-1",
				SessionID: "cli",
				Role:      domain.RoleUser,
				Content:   "what are the payment terms?",
				CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				ID:        "msg-2",
				SessionID: "cli",
				Role:      domain.RoleAssistant,
				Content:   "Payment is due within thirty days.",
				CreatedAt: time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC),
			},
		},
	}
}

func (m *mockAnswerService) Ask(_ context.Context, _, question string) (*domain.Answer, error) {
	m.lastAsk = question
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAnswerService) History(_ context.Context, _ string, _ int) ([]domain.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *mockAnswerService) ClearHistory(_ context.Context, sessionID string) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = append(m.cleared, sessionID)
	return nil
}

var errMockFailure = errors.New("mock failure")
