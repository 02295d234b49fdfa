package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, LLM provider and
chunking parameters.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var (
	settingsModel  string
	settingsAPIKey string
)

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding [provider]",
	Short: "Configure the embedding provider",
	Long: `Set the embedding provider used to index and retrieve chunks.

Available providers:
  ollama - local Ollama server (default)
  openai - OpenAI API (requires --api-key)

Changing the provider or model requires an index rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm [provider]",
	Short: "Configure the answer generation provider",
	Long: `Set the LLM provider used to generate answers.

Available providers:
  ollama    - local Ollama server (default)
  openai    - OpenAI API (requires --api-key)
  anthropic - Anthropic API (requires --api-key)`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLLM,
}

var (
	chunkSize    int
	chunkOverlap int
)

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking",
	Short: "Configure chunk size and overlap",
	Long: `Set the character count per chunk and the overlap between
consecutive chunks. Takes effect for documents uploaded afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSettingsChunking,
}

func init() {
	settingsEmbeddingCmd.Flags().StringVar(&settingsModel, "model", "", "model name (provider default when empty)")
	settingsEmbeddingCmd.Flags().StringVar(&settingsAPIKey, "api-key", "", "API key for cloud providers")
	settingsLLMCmd.Flags().StringVar(&settingsModel, "model", "", "model name (provider default when empty)")
	settingsLLMCmd.Flags().StringVar(&settingsAPIKey, "api-key", "", "API key for cloud providers")
	settingsChunkingCmd.Flags().IntVar(&chunkSize, "size", 1000, "characters per chunk")
	settingsChunkingCmd.Flags().IntVar(&chunkOverlap, "overlap", 200, "characters shared between consecutive chunks")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  Model:    %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  BaseURL:  %s\n", settings.Embedding.BaseURL)
	}
	cmd.Printf("  API key:  %s\n", maskKey(settings.Embedding.APIKey))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider)
	cmd.Printf("  Model:    %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  BaseURL:  %s\n", settings.LLM.BaseURL)
	}
	cmd.Printf("  API key:  %s\n", maskKey(settings.LLM.APIKey))
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size:    %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(args[0])
	if err := settingsService.SetEmbeddingProvider(provider, settingsModel, settingsAPIKey); err != nil {
		return fmt.Errorf("failed to set embedding provider: %w", err)
	}

	cmd.Printf("Embedding provider set to %s.\n", provider)
	cmd.Println("Run 'askdoc rebuild' to re-index existing documents with the new embeddings.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(args[0])
	if err := settingsService.SetLLMProvider(provider, settingsModel, settingsAPIKey); err != nil {
		return fmt.Errorf("failed to set LLM provider: %w", err)
	}

	cmd.Printf("LLM provider set to %s.\n", provider)
	return nil
}

func runSettingsChunking(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetChunking(chunkSize, chunkOverlap); err != nil {
		return fmt.Errorf("failed to set chunking: %w", err)
	}

	cmd.Printf("Chunking set to size %d, overlap %d.\n", chunkSize, chunkOverlap)
	return nil
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
