// Package cli implements the quaero command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by main before Execute runs. Commands nil-check
// the service they need so partial wiring degrades to a clear error
// instead of a panic.
var (
	retrievalService driving.RetrievalService
	answerService    driving.AnswerService
	settingsService  driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quaero",
	Short: "Hybrid retrieval engine for document Q&A",
	Long: `Quaero indexes local files and web pages, then answers questions
about them using hybrid retrieval: BM25 keyword search fused with
semantic vector search.

Index a document, then ask away:
  quaero index ./notes/meeting.md
  quaero ask "what did we decide about the rollout?"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetRetrievalService injects the retrieval service.
func SetRetrievalService(svc driving.RetrievalService) {
	retrievalService = svc
}

// SetAnswerService injects the answer service.
func SetAnswerService(svc driving.AnswerService) {
	answerService = svc
}

// SetSettingsService injects the settings service.
func SetSettingsService(svc driving.SettingsService) {
	settingsService = svc
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
