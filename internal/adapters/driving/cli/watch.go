package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

var (
	watchExtensions []string
	watchDebounce   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and keep it indexed",
	Long: `Watches a directory recursively and keeps the index in sync:
new and modified files are re-indexed, deleted files are removed.

Only files matching the watched extensions are indexed. Hidden files
and directories are ignored. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", nil, "file extensions to watch (default .txt,.md)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "delay before indexing a changed file (0 = default)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	var opts []filesystem.WatcherOption
	if len(watchExtensions) > 0 {
		opts = append(opts, filesystem.WithExtensions(watchExtensions...))
	}
	if watchDebounce > 0 {
		opts = append(opts, filesystem.WithDebounce(watchDebounce))
	}

	watcher, err := filesystem.NewWatcher(args[0], opts...)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", watcher.Root())

	return watcher.Run(ctx, func(change filesystem.Change) {
		switch change.Type {
		case filesystem.ChangeDeleted:
			id := documentIDForURI(change.Path)
			if err := retrievalService.RemoveDocument(ctx, id); err != nil {
				logger.Warn("failed to remove %s: %v", change.Path, err)
				return
			}
			cmd.Printf("Removed %s\n", change.Path)
		case filesystem.ChangeCreated, filesystem.ChangeUpdated:
			doc, chunks, err := ingest(ctx, change.Path)
			if err != nil {
				logger.Warn("failed to index %s: %v", change.Path, err)
				return
			}
			cmd.Printf("Indexed %q (%d chunks)\n", doc.Title, chunks)
		}
	})
}
