// Package prompt builds the retrieval-augmented generation prompt
// shared by all LLM adapters.
package prompt

import "strings"

// System is the instruction prefix for chat-style providers.
const System = "You are a helpful assistant that answers questions using only the provided document excerpts."

// Build assembles the answer-generation prompt from the question and
// the concatenated retrieved context. The model is told to admit when
// the context does not contain the answer rather than invent one.
func Build(question, contextText string) string {
	var b strings.Builder
	b.WriteString("Use the following pieces of context to answer the question at the end. ")
	b.WriteString("If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n")
	b.WriteString(contextText)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nHelpful Answer:")
	return b.String()
}
