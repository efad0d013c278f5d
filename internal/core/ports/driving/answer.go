package driving

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// AnswerService turns questions into generated answers grounded in
// retrieved segments. Two command forms are recognised alongside plain
// questions: "summarize" summarises everything indexed, and
// "translate:<language>" translates it.
type AnswerService interface {
	// Ask answers the question for the given session, recording both
	// sides of the turn in conversation history.
	Ask(ctx context.Context, sessionID, question string) (*domain.Answer, error)

	// History returns the latest n messages for a session.
	History(ctx context.Context, sessionID string, n int) ([]domain.Message, error)

	// ClearHistory removes a session's conversation history.
	ClearHistory(ctx context.Context, sessionID string) error
}
