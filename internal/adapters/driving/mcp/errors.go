// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Quaero. It lets AI assistants retrieve indexed document segments
// and ask questions over them.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
