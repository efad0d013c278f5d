package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// NoRelevantInformation is the degraded response when retrieval comes
// back empty: the pipeline answers instead of aborting.
const NoRelevantInformation = "I couldn't find relevant information in the provided sources."

// historyWindow is how many recent messages are handed to the LLM for
// conversational context (three turns).
const historyWindow = 6

// defaultTranslateLanguage is used when "translate:" names no language.
const defaultTranslateLanguage = "French"

// AnswerService glues retrieval to the generation collaborator: it
// retrieves segments for a question, asks the LLM to answer from them,
// and records both sides of the turn in conversation history.
type AnswerService struct {
	retrieval driving.RetrievalService
	docStore  driven.DocumentStore
	llm       driven.LLMService
	history   driven.ConversationStore
	overlap   int
}

// NewAnswerService creates the answer layer. The llm is required; the
// history store is optional (turns simply go unrecorded without it).
func NewAnswerService(
	retrieval driving.RetrievalService,
	docStore driven.DocumentStore,
	llm driven.LLMService,
	history driven.ConversationStore,
	cfg domain.Config,
) (*AnswerService, error) {
	if retrieval == nil {
		return nil, fmt.Errorf("%w: retrieval service is required", domain.ErrInvalidInput)
	}
	if llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	return &AnswerService{
		retrieval: retrieval,
		docStore:  docStore,
		llm:       llm,
		history:   history,
		overlap:   cfg.ChunkOverlap,
	}, nil
}

// Ask answers the question for the given session. Two command forms
// are recognised: "summarize" summarises everything indexed, and
// "translate:<language>" translates it.
func (s *AnswerService) Ask(ctx context.Context, sessionID, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	logger.Section("Answer Generation")
	logger.Debug("Session: %s question: %q", sessionID, question)

	answer, err := s.answer(ctx, sessionID, question)
	if err != nil {
		return nil, err
	}

	// Both sides of the turn are recorded only after generation
	// succeeds, so a failed answer never leaves a dangling user turn.
	s.record(ctx, sessionID, domain.RoleUser, question)
	s.record(ctx, sessionID, domain.RoleAssistant, answer.Text)
	return answer, nil
}

// answer dispatches between the command forms and plain questions.
func (s *AnswerService) answer(ctx context.Context, sessionID, question string) (*domain.Answer, error) {
	lowered := strings.ToLower(question)

	switch {
	case lowered == "summarize":
		return s.summarise(ctx)

	case strings.HasPrefix(lowered, "translate:"):
		lang := strings.TrimSpace(question[len("translate:"):])
		if lang == "" {
			lang = defaultTranslateLanguage
		}
		return s.translate(ctx, lang)

	default:
		return s.answerQuestion(ctx, sessionID, question)
	}
}

// answerQuestion retrieves segments and generates a grounded answer.
func (s *AnswerService) answerQuestion(ctx context.Context, sessionID, question string) (*domain.Answer, error) {
	results, err := s.retrieval.Retrieve(ctx, question, domain.RetrievalOptions{SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("retrieving segments: %w", err)
	}

	if len(results) == 0 {
		logger.Info("No segments retrieved, degrading to fixed response")
		return &domain.Answer{Text: NoRelevantInformation}, nil
	}

	segments := make([]string, len(results))
	for i, r := range results {
		segments[i] = r.Chunk.Content
	}

	history, err := s.recent(ctx, sessionID)
	if err != nil {
		logger.Warn("Loading history failed, answering without it: %v", err)
	}

	text, err := s.llm.Answer(ctx, question, segments, history)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &domain.Answer{Text: text, Sources: results}, nil
}

// summarise summarises the text of everything indexed.
func (s *AnswerService) summarise(ctx context.Context) (*domain.Answer, error) {
	text, err := s.allDocumentText(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return &domain.Answer{Text: "No documents available to summarize."}, nil
	}

	summary, err := s.llm.Summarise(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarising: %w", err)
	}
	return &domain.Answer{Text: summary}, nil
}

// translate renders the text of everything indexed in the target language.
func (s *AnswerService) translate(ctx context.Context, language string) (*domain.Answer, error) {
	text, err := s.allDocumentText(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return &domain.Answer{Text: "No documents available to translate."}, nil
	}

	translated, err := s.llm.Translate(ctx, text, language)
	if err != nil {
		return nil, fmt.Errorf("translating: %w", err)
	}
	return &domain.Answer{Text: translated, Sources: nil}, nil
}

// allDocumentText reconstructs the raw text of every indexed document
// from its chunk set by dropping each non-first chunk's leading overlap.
func (s *AnswerService) allDocumentText(ctx context.Context) (string, error) {
	docs, err := s.retrieval.ListDocuments(ctx)
	if err != nil {
		return "", fmt.Errorf("listing documents: %w", err)
	}

	var b strings.Builder
	for _, doc := range docs {
		chunks, err := s.docStore.GetChunks(ctx, doc.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return "", fmt.Errorf("loading chunks for %s: %w", doc.ID, err)
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		for i, chunk := range chunks {
			runes := []rune(chunk.Content)
			if i == 0 {
				b.WriteString(chunk.Content)
				continue
			}
			skip := s.overlap
			if skip > len(runes) {
				skip = len(runes)
			}
			b.WriteString(string(runes[skip:]))
		}
	}

	return b.String(), nil
}

// record appends a message to the session history, if one is configured.
func (s *AnswerService) record(ctx context.Context, sessionID string, role domain.MessageRole, content string) {
	if s.history == nil || sessionID == "" {
		return
	}
	msg := domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.history.Append(ctx, msg); err != nil {
		logger.Warn("Recording %s message failed: %v", role, err)
	}
}

// recent loads the conversational context window for a session.
func (s *AnswerService) recent(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if s.history == nil || sessionID == "" {
		return nil, nil
	}
	return s.history.Recent(ctx, sessionID, historyWindow)
}

// History returns the latest n messages for a session.
func (s *AnswerService) History(ctx context.Context, sessionID string, n int) ([]domain.Message, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, sessionID, n)
}

// ClearHistory removes a session's conversation history.
func (s *AnswerService) ClearHistory(ctx context.Context, sessionID string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx, sessionID)
}
