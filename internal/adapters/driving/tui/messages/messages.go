// Package messages defines Bubbletea message types for the chat UI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// AskRequested is a command to answer a question.
type AskRequested struct {
	Question string
}

// AskCompleted carries a generated answer back to the model.
type AskCompleted struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// DocumentCountLoaded carries the indexed document count for the status bar.
type DocumentCountLoaded struct {
	Count int
	Err   error
}
