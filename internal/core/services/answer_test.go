package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
)

// mockRetrieval serves canned results without touching any index.
type mockRetrieval struct {
	results   []domain.RetrievalResult
	docs      []domain.Document
	lastQuery string
}

var _ driving.RetrievalService = (*mockRetrieval)(nil)

func (m *mockRetrieval) IndexDocument(context.Context, domain.Document, string) (int, error) {
	return 0, nil
}

func (m *mockRetrieval) Retrieve(_ context.Context, query string, _ domain.RetrievalOptions) ([]domain.RetrievalResult, error) {
	m.lastQuery = query
	return m.results, nil
}

func (m *mockRetrieval) RemoveDocument(context.Context, string) error { return nil }

func (m *mockRetrieval) ListDocuments(context.Context) ([]domain.Document, error) {
	return m.docs, nil
}

// mockLLM records what it was asked and returns canned text.
type mockLLM struct {
	answerErr     error
	answerCalls   int
	lastQuestion  string
	lastSegments  []string
	lastHistory   []domain.Message
	lastSummary   string
	lastTranslate string
	lastLanguage  string
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Answer(_ context.Context, question string, segments []string, history []domain.Message) (string, error) {
	m.answerCalls++
	m.lastQuestion = question
	m.lastSegments = segments
	m.lastHistory = history
	if m.answerErr != nil {
		return "", m.answerErr
	}
	return "generated answer", nil
}

func (m *mockLLM) Summarise(_ context.Context, content string) (string, error) {
	m.lastSummary = content
	return "generated summary", nil
}

func (m *mockLLM) Translate(_ context.Context, content, targetLanguage string) (string, error) {
	m.lastTranslate = content
	m.lastLanguage = targetLanguage
	return "generated translation", nil
}

func (m *mockLLM) ModelName() string          { return "mock-llm" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

type answerFixture struct {
	service   *AnswerService
	retrieval *mockRetrieval
	llm       *mockLLM
	docStore  *memory.DocumentStore
	history   *memory.ConversationStore
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()

	retrieval := &mockRetrieval{}
	llm := &mockLLM{}
	docStore := memory.NewDocumentStore()
	history := memory.NewConversationStore()

	svc, err := NewAnswerService(retrieval, docStore, llm, history, domain.DefaultConfig())
	require.NoError(t, err)

	return &answerFixture{
		service:   svc,
		retrieval: retrieval,
		llm:       llm,
		docStore:  docStore,
		history:   history,
	}
}

func TestNewAnswerService_RequiresCollaborators(t *testing.T) {
	_, err := NewAnswerService(nil, memory.NewDocumentStore(), &mockLLM{}, nil, domain.DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewAnswerService(&mockRetrieval{}, memory.NewDocumentStore(), nil, nil, domain.DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAnswerService_Ask(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.results = []domain.RetrievalResult{
		{
			Chunk:    domain.Chunk{ID: "c1", DocumentID: "doc-1", Content: "alpha segment"},
			Document: domain.Document{ID: "doc-1", Title: "Alpha"},
			Score:    0.9,
		},
	}

	answer, err := f.service.Ask(ctx, "session-1", "what is alpha?")
	require.NoError(t, err)

	assert.Equal(t, "generated answer", answer.Text)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "doc-1", answer.Sources[0].Document.ID)

	assert.Equal(t, "what is alpha?", f.retrieval.lastQuery)
	assert.Equal(t, []string{"alpha segment"}, f.llm.lastSegments)

	// Both sides of the turn were recorded.
	msgs, err := f.history.Recent(ctx, "session-1", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, "what is alpha?", msgs[0].Content)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "generated answer", msgs[1].Content)
}

func TestAnswerService_Ask_EmptyQuestion(t *testing.T) {
	f := newAnswerFixture(t)

	_, err := f.service.Ask(context.Background(), "session-1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswerService_Ask_NoRelevantSegments(t *testing.T) {
	f := newAnswerFixture(t)

	answer, err := f.service.Ask(context.Background(), "session-1", "unknown topic")
	require.NoError(t, err)

	assert.Equal(t, NoRelevantInformation, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Zero(t, f.llm.answerCalls, "no generation without retrieved segments")
}

func TestAnswerService_Ask_HistoryWindow(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.results = []domain.RetrievalResult{
		{Chunk: domain.Chunk{ID: "c1", Content: "segment"}},
	}

	for i := 0; i < 8; i++ {
		require.NoError(t, f.history.Append(ctx, domain.Message{
			ID:        "m" + string(rune('0'+i)),
			SessionID: "session-1",
			Role:      domain.RoleUser,
			Content:   "earlier",
		}))
	}

	_, err := f.service.Ask(ctx, "session-1", "latest question")
	require.NoError(t, err)

	// Only the trailing window of prior turns reaches the model; the
	// in-flight question travels separately, not through history.
	require.Len(t, f.llm.lastHistory, historyWindow)
	for _, msg := range f.llm.lastHistory {
		assert.Equal(t, "earlier", msg.Content)
	}
	assert.Equal(t, "latest question", f.llm.lastQuestion)
}

func TestAnswerService_Ask_FailedGenerationRecordsNothing(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.results = []domain.RetrievalResult{
		{Chunk: domain.Chunk{ID: "c1", Content: "segment"}},
	}
	f.llm.answerErr = errors.New("model offline")

	_, err := f.service.Ask(ctx, "session-1", "what is alpha?")
	require.Error(t, err)

	// No dangling user turn without its assistant turn.
	msgs, err := f.history.Recent(ctx, "session-1", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestAnswerService_Summarize(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.docs = []domain.Document{{ID: "doc-1", Origin: domain.OriginText}}
	require.NoError(t, f.docStore.SaveChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "c1", DocumentID: "doc-1", Position: 0, Content: "alpha handbook"},
	}))

	answer, err := f.service.Ask(ctx, "session-1", "Summarize")
	require.NoError(t, err)

	assert.Equal(t, "generated summary", answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, "alpha handbook", f.llm.lastSummary)
}

func TestAnswerService_Summarize_StripsChunkOverlap(t *testing.T) {
	ctx := context.Background()

	retrieval := &mockRetrieval{docs: []domain.Document{{ID: "doc-1", Origin: domain.OriginText}}}
	llm := &mockLLM{}
	docStore := memory.NewDocumentStore()

	cfg := domain.DefaultConfig()
	cfg.ChunkSize = 6
	cfg.ChunkOverlap = 2

	svc, err := NewAnswerService(retrieval, docStore, llm, nil, cfg)
	require.NoError(t, err)

	// Windows of 6 with stride 4 over "abcdefghij".
	require.NoError(t, docStore.SaveChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "c1", DocumentID: "doc-1", Position: 0, Content: "abcdef"},
		{ID: "c2", DocumentID: "doc-1", Position: 1, Content: "efghij"},
	}))

	_, err = svc.Ask(ctx, "", "summarize")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", llm.lastSummary)
}

func TestAnswerService_Summarize_NoDocuments(t *testing.T) {
	f := newAnswerFixture(t)

	answer, err := f.service.Ask(context.Background(), "session-1", "summarize")
	require.NoError(t, err)
	assert.Equal(t, "No documents available to summarize.", answer.Text)
}

func TestAnswerService_Translate(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.docs = []domain.Document{{ID: "doc-1", Origin: domain.OriginText}}
	require.NoError(t, f.docStore.SaveChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "c1", DocumentID: "doc-1", Position: 0, Content: "alpha handbook"},
	}))

	answer, err := f.service.Ask(ctx, "session-1", "translate: Spanish")
	require.NoError(t, err)

	assert.Equal(t, "generated translation", answer.Text)
	assert.Equal(t, "alpha handbook", f.llm.lastTranslate)
	assert.Equal(t, "Spanish", f.llm.lastLanguage)
}

func TestAnswerService_Translate_DefaultLanguage(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.docs = []domain.Document{{ID: "doc-1", Origin: domain.OriginText}}
	require.NoError(t, f.docStore.SaveChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "c1", DocumentID: "doc-1", Position: 0, Content: "alpha handbook"},
	}))

	_, err := f.service.Ask(ctx, "session-1", "translate:")
	require.NoError(t, err)
	assert.Equal(t, defaultTranslateLanguage, f.llm.lastLanguage)
}

func TestAnswerService_HistoryPassthrough(t *testing.T) {
	ctx := context.Background()
	f := newAnswerFixture(t)
	f.retrieval.results = []domain.RetrievalResult{
		{Chunk: domain.Chunk{ID: "c1", Content: "segment"}},
	}

	_, err := f.service.Ask(ctx, "session-1", "first question")
	require.NoError(t, err)

	msgs, err := f.service.History(ctx, "session-1", 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	require.NoError(t, f.service.ClearHistory(ctx, "session-1"))
	msgs, err = f.service.History(ctx, "session-1", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
