// Package cli provides the cobra command tree for the askdoc binary.
// Services are injected once at startup via SetServices; commands read
// them from package state.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Service handles used by the commands. Nil services make the commands
// that need them fail with a clear error instead of panicking.
var (
	ingestService   driving.IngestService
	answerService   driving.AnswerService
	documentService driving.DocumentService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about your documents",
	Long: `Askdoc ingests documents, indexes them for semantic search and
answers natural-language questions grounded in their content.

Upload files, then ask:

  askdoc upload report.pdf --title "Q3 Report"
  askdoc ask "What were the Q3 revenue figures?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles the driving ports the CLI needs.
type Services struct {
	Ingest   driving.IngestService
	Answer   driving.AnswerService
	Document driving.DocumentService
	Settings driving.SettingsService
}

// SetServices injects the service implementations used by all commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	answerService = s.Answer
	documentService = s.Document
	settingsService = s.Settings
}

// SetVersion overrides the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
