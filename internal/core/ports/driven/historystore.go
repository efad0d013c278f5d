package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// ConversationStore is an append/read log of conversation messages
// keyed by session. The retrieval engine never touches it; only the
// answer layer reads and writes history.
type ConversationStore interface {
	// Append records a message at the end of its session's log.
	Append(ctx context.Context, msg domain.Message) error

	// Recent returns the latest n messages for a session in
	// chronological order.
	Recent(ctx context.Context, sessionID string, n int) ([]domain.Message, error)

	// Clear removes all messages for a session.
	Clear(ctx context.Context, sessionID string) error
}
