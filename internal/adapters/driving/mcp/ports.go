package mcp

import (
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Retrieval serves ranked document segments.
	Retrieval driving.RetrievalService

	// Answer generates answers over retrieved segments. Optional; the
	// ask tool is unavailable without it.
	Answer driving.AnswerService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
