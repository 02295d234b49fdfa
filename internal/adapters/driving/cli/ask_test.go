package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "ask")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	answerService = &mockAnswerService{
		query: &domain.Query{
			Answer:      "Berlin.",
			Confidence:  0.8,
			SourcesUsed: 1,
			ModelUsed:   "llama3.1",
			Sources: []domain.SourceDocument{
				{
					DocumentID:     "doc-1",
					Content:        "Berlin is the capital of Germany.",
					RelevanceScore: 0.91,
					Metadata:       map[string]any{"filename": "germany.txt"},
				},
			},
		},
	}

	out, err := execute(t, "ask", "What is the capital of Germany?")

	require.NoError(t, err)
	assert.Contains(t, out, "Berlin.")
	assert.Contains(t, out, "Confidence: 80%")
	assert.Contains(t, out, "germany.txt")
	assert.Contains(t, out, "Berlin is the capital of Germany.")
}

func TestAskCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "ask", "--json", "What is this about?")

	require.NoError(t, err)
	assert.Contains(t, out, `"Answer": "An answer."`)
}

func TestAskCmd_InvalidQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	answerService = &mockAnswerService{err: domain.ErrQuestionTooShort}

	_, err := execute(t, "ask", "x")

	assert.ErrorIs(t, err, domain.ErrQuestionTooShort)
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	answerService = &mockAnswerService{}

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No questions asked yet.")
}

func TestHistoryCmd_PrintsEntries(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	answerService = &mockAnswerService{
		history: []domain.Query{
			{Question: "What is X?", Answer: "X is Y.", Confidence: 0.5, SourcesUsed: 2},
		},
	}

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "What is X?")
	assert.Contains(t, out, "X is Y.")
	assert.Contains(t, out, "confidence 50%, 2 sources")
}
