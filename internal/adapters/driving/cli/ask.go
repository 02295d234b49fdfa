package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

var (
	askMaxResults  int
	askTemperature float64
	askNoSources   bool
	askFilter      string
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Asks a natural-language question. The most relevant chunks are
retrieved from the index and an answer is generated from them, with a
confidence score and the source excerpts it was grounded in.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askMaxResults, "results", "n", 0, "number of chunks to retrieve (1-20, default 5)")
	askCmd.Flags().Float64VarP(&askTemperature, "temperature", "t", 0, "generation temperature (0.0-1.0, default 0.3)")
	askCmd.Flags().BoolVar(&askNoSources, "no-sources", false, "omit source excerpts from the output")
	askCmd.Flags().StringVar(&askFilter, "filter", "", "context filter recorded with the query")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full query record as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	req := domain.AnswerRequest{
		Question:       args[0],
		MaxResults:     askMaxResults,
		IncludeSources: !askNoSources,
		Temperature:    askTemperature,
		ContextFilter:  askFilter,
	}

	query, err := answerService.Answer(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(query, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal query: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(query.Answer)
	cmd.Println()
	cmd.Printf("Confidence: %.0f%%  Sources: %d  Model: %s  (%.2fs)\n",
		query.Confidence*100, query.SourcesUsed, query.ModelUsed, query.ProcessingTime)

	for i := range query.Sources {
		src := &query.Sources[i]
		cmd.Println()
		cmd.Printf("  [%d] %s (relevance %.2f)\n", i+1, sourceLabel(src), src.RelevanceScore)
		cmd.Printf("      %s\n", src.Content)
	}

	return nil
}

// sourceLabel prefers the chunk's filename metadata over the raw
// document ID.
func sourceLabel(src *domain.SourceDocument) string {
	if name, ok := src.Metadata["filename"].(string); ok && name != "" {
		return name
	}
	return src.DocumentID
}
