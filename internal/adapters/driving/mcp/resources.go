package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Quaero resources.
const uriScheme = "quaero://"

// documentResource is the JSON shape of a listed document.
type documentResource struct {
	ID         string    `json:"id"`
	Origin     string    `json:"origin"`
	URI        string    `json:"uri"`
	Title      string    `json:"title"`
	IngestedAt time.Time `json:"ingested_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all indexed documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)
}

// handleDocumentsResource returns a list of all indexed documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Retrieval.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	resources := make([]documentResource, len(docs))
	for i := range docs {
		resources[i] = documentResource{
			ID:         docs[i].ID,
			Origin:     docs[i].Origin.String(),
			URI:        docs[i].URI,
			Title:      docs[i].Title,
			IngestedAt: docs[i].IngestedAt,
		}
	}

	data, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
