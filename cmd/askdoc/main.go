package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/llm/openai"
	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driving/cli"
	"github.com/askdoc-labs/askdoc-cli/internal/chunker"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/services"
	"github.com/askdoc-labs/askdoc-cli/internal/extractors"
	"github.com/askdoc-labs/askdoc-cli/internal/index"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	embedder := buildEmbedder(settings)
	defer embedder.Close()

	llm := buildLLM(settings)
	defer llm.Close()

	idx := index.New(embedder)
	defer idx.Close()

	snapshotPath := filepath.Join(filepath.Dir(store.Path()), "index.db")
	if loaded, err := idx.Load(snapshotPath); err != nil {
		logger.Warn("Index snapshot unreadable, starting empty: %v", err)
	} else if loaded {
		logger.Debug("Loaded index snapshot: %d chunks", idx.Len())
	}

	splitter := chunker.New(
		chunker.WithChunkSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)

	docStore := store.DocumentStore()
	registry := extractors.NewDefaultRegistry()

	ingestService := services.NewIngestService(docStore, registry, splitter, idx)
	answerService := services.NewAnswerService(idx, llm, store.QueryStore())
	documentService := services.NewDocumentService(docStore, idx)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:   ingestService,
		Answer:   answerService,
		Document: documentService,
		Settings: settingsService,
	})

	runErr := cli.Execute(ctx)

	// Persist whatever the commands left in the index so the next run
	// starts without a rebuild.
	if idx.Len() > 0 {
		if err := idx.Save(snapshotPath); err != nil {
			logger.Warn("Failed to save index snapshot: %v", err)
		}
	}

	return runErr
}

// buildEmbedder constructs the embedding adapter for the configured
// provider. Misconfiguration falls back to local Ollama so read-only
// commands keep working.
func buildEmbedder(settings *domain.AppSettings) driven.EmbeddingService {
	switch settings.Embedding.Provider {
	case domain.ProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey: settings.Embedding.APIKey,
			Model:  settings.Embedding.Model,
		})
		if err != nil {
			logger.Warn("OpenAI embedding unavailable (%v), using Ollama", err)
			return ollamaembed.NewEmbeddingService(ollamaembed.Config{})
		}
		return svc
	default:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.Embedding.BaseURL,
			Model:   settings.Embedding.Model,
		})
	}
}

// buildLLM constructs the generation adapter for the configured provider.
func buildLLM(settings *domain.AppSettings) driven.LLMService {
	switch settings.LLM.Provider {
	case domain.ProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.Config{
			APIKey: settings.LLM.APIKey,
			Model:  settings.LLM.Model,
		})
		if err != nil {
			logger.Warn("OpenAI LLM unavailable (%v), using Ollama", err)
			return ollamallm.NewLLMService(ollamallm.Config{})
		}
		return svc
	case domain.ProviderAnthropic:
		svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey: settings.LLM.APIKey,
			Model:  settings.LLM.Model,
		})
		if err != nil {
			logger.Warn("Anthropic LLM unavailable (%v), using Ollama", err)
			return ollamallm.NewLLMService(ollamallm.Config{})
		}
		return svc
	default:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.LLM.BaseURL,
			Model:   settings.LLM.Model,
		})
	}
}
