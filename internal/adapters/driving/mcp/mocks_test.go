package mcp

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.RetrievalResult
	docs    []domain.Document
	err     error

	lastQuery string
	lastOpts  domain.RetrievalOptions
}

func (m *mockRetrievalService) IndexDocument(_ context.Context, _ domain.Document, _ string) (int, error) {
	return 0, m.err
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	query string,
	opts domain.RetrievalOptions,
) ([]domain.RetrievalResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockRetrievalService) RemoveDocument(_ context.Context, _ string) error {
	return m.err
}

func (m *mockRetrievalService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer *domain.Answer
	err    error

	lastQuestion string
}

func (m *mockAnswerService) Ask(_ context.Context, _, question string) (*domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockAnswerService) History(_ context.Context, _ string, _ int) ([]domain.Message, error) {
	return nil, m.err
}

func (m *mockAnswerService) ClearHistory(_ context.Context, _ string) error {
	return m.err
}
