// Package connectors provides the document fetchers that feed the
// indexing pipeline. Each connector knows how to obtain raw bytes from
// one kind of location (local files, web pages); normalisers turn
// those bytes into plain text.
package connectors
