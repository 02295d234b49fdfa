package domain

// AIProvider identifies an external capability provider.
type AIProvider string

const (
	// ProviderOllama is a local Ollama server.
	ProviderOllama AIProvider = "ollama"

	// ProviderOpenAI is the OpenAI API.
	ProviderOpenAI AIProvider = "openai"

	// ProviderAnthropic is the Anthropic API (generation only).
	ProviderAnthropic AIProvider = "anthropic"
)

// Valid reports whether p is a known provider.
func (p AIProvider) Valid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderAnthropic:
		return true
	}
	return false
}

// RequiresAPIKey reports whether the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI || p == ProviderAnthropic
}

// SupportsEmbedding reports whether the provider offers an embedding
// model. Anthropic is generation-only.
func (p AIProvider) SupportsEmbedding() bool {
	return p == ProviderOllama || p == ProviderOpenAI
}

// DefaultEmbeddingModels maps each embedding-capable provider to its
// default model.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		ProviderOllama: "nomic-embed-text",
		ProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels maps each provider to its default generation model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		ProviderOllama:    "llama3.1",
		ProviderOpenAI:    "gpt-4o-mini",
		ProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingSettings configures the embedding capability.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// LLMSettings configures the generation capability.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// ChunkingSettings configures the text chunker.
type ChunkingSettings struct {
	Size    int
	Overlap int
}

// AppSettings aggregates all user-configurable application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Chunking  ChunkingSettings

	// DataDir is the base directory for the SQLite store and the
	// persisted index snapshot. Empty means ~/.askdoc/data.
	DataDir string
}

// DefaultAppSettings returns the defaults used when no configuration
// has been saved.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: ProviderOllama,
			Model:    "nomic-embed-text",
		},
		LLM: LLMSettings{
			Provider: ProviderOllama,
			Model:    "llama3.1",
		},
		Chunking: ChunkingSettings{
			Size:    1000,
			Overlap: 200,
		},
	}
}
