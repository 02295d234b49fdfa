package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the similarity index from stored documents",
	Long: `Re-embeds every stored chunk and atomically replaces the similarity
index. Use this after changing the embedding provider or model.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	cmd.Println("Rebuilding index...")
	if err := ingestService.Rebuild(cmd.Context()); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	cmd.Println("Index rebuilt.")
	return nil
}
