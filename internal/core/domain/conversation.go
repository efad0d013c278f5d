package domain

import "time"

// MessageRole identifies who produced a conversation message.
type MessageRole string

// Recognised message roles.
const (
	// RoleUser is a message typed by the user.
	RoleUser MessageRole = "user"

	// RoleAssistant is a generated response.
	RoleAssistant MessageRole = "assistant"
)

// IsValid returns true if the role is recognised.
func (r MessageRole) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single entry in a conversation history, scoped by session.
// The retrieval engine never reads these; they belong to the answer layer.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// SessionID scopes the conversation the message belongs to.
	SessionID string

	// Role is who produced the message.
	Role MessageRole

	// Content is the message text.
	Content string

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time
}

// Answer is a generated response together with its supporting citations.
type Answer struct {
	// Text is the generated answer, summary or translation.
	Text string

	// Sources are the retrieval results the answer was generated from.
	// Empty when the question was handled without retrieval.
	Sources []RetrievalResult
}
