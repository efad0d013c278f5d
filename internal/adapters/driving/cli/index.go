package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/quaero-cli/internal/connectors/web"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/normalisers"
)

// documentNamespace makes document IDs a deterministic function of the
// source URI, so re-indexing the same file replaces it instead of
// accumulating duplicates.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("quaero://document"))

var indexCmd = &cobra.Command{
	Use:   "index [path-or-url]",
	Short: "Index a document for retrieval",
	Long: `Fetches a document, extracts its text, and indexes it in both the
keyword and vector indexes.

Accepts a local file path (plain text, Markdown, or PDF) or an
http(s) URL. Re-indexing the same path replaces the previous version.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(listCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := cmd.Context()

	doc, chunks, err := ingest(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", args[0], err)
	}

	cmd.Printf("Indexed %q (%d chunks)\n", doc.Title, chunks)
	cmd.Printf("  ID:  %s\n", doc.ID)
	cmd.Printf("  URI: %s\n", doc.URI)
	return nil
}

// ingest fetches, normalises, and indexes a single document.
// Also used by the watch command when a file changes.
func ingest(ctx context.Context, arg string) (*domain.Document, int, error) {
	var raw *domain.RawDocument
	var err error

	if web.IsURL(arg) {
		raw, err = web.NewFetcher().Fetch(ctx, arg)
	} else {
		raw, err = filesystem.Read(arg)
	}
	if err != nil {
		return nil, 0, err
	}

	normaliser, err := normalisers.ForOrigin(raw.Origin)
	if err != nil {
		return nil, 0, err
	}

	extracted, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, 0, err
	}

	doc := domain.Document{
		ID:         documentIDForURI(raw.URI),
		Origin:     raw.Origin,
		URI:        raw.URI,
		Title:      extracted.Title,
		IngestedAt: time.Now().UTC(),
	}

	chunks, err := retrievalService.IndexDocument(ctx, doc, extracted.Text)
	if err != nil {
		return nil, 0, err
	}

	return &doc, chunks, nil
}

func documentIDForURI(uri string) string {
	return uuid.NewSHA1(documentNamespace, []byte(uri)).String()
}

func runList(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	docs, err := retrievalService.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	cmd.Println("Indexed documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:  %s\n", docs[i].Title)
		cmd.Printf("    Origin: %s\n", docs[i].Origin)
		cmd.Printf("    URI:    %s\n", docs[i].URI)
		if !docs[i].IngestedAt.IsZero() {
			cmd.Printf("    Indexed: %s\n", docs[i].IngestedAt.Format("2006-01-02 15:04:05"))
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}
