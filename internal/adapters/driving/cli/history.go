package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyOffset int
	historyJSON   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent questions and answers",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "number of entries to skip")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	queries, err := answerService.History(cmd.Context(), historyLimit, historyOffset)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(queries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(queries) == 0 {
		cmd.Println("No questions asked yet.")
		return nil
	}

	for i := range queries {
		q := &queries[i]
		cmd.Printf("[%s] %s\n", q.Timestamp.Format("2006-01-02 15:04"), q.Question)
		cmd.Printf("  %s\n", q.Answer)
		cmd.Printf("  confidence %.0f%%, %d sources\n\n", q.Confidence*100, q.SourcesUsed)
	}

	return nil
}
