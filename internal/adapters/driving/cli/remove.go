package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/connectors/web"
)

var removeCmd = &cobra.Command{
	Use:   "remove [doc-id-or-path]",
	Short: "Remove a document from the index",
	Long: `Removes a document and all its chunks from both indexes.

Accepts either a document ID (as shown by 'quaero list') or the
original path or URL the document was indexed from.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	id := resolveDocumentID(args[0])

	if err := retrievalService.RemoveDocument(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed document %s\n", id)
	return nil
}

// resolveDocumentID maps a path or URL back to the deterministic ID it
// was indexed under. Anything that does not look like a path or URL is
// treated as a literal document ID.
func resolveDocumentID(arg string) string {
	if web.IsURL(arg) {
		return documentIDForURI(arg)
	}
	if strings.ContainsAny(arg, "/\\") || strings.HasPrefix(arg, ".") {
		if abs, err := filepath.Abs(arg); err == nil {
			return documentIDForURI(abs)
		}
	}
	return arg
}
