package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangchainEmbedder embeds texts through langchaingo's OpenAI driver.
type LangchainEmbedder struct {
	embedder   *embeddings.EmbedderImpl
	model      string
	dimensions int
}

// NewLangchainEmbedder creates an embedder for an OpenAI-compatible endpoint.
func NewLangchainEmbedder(baseURL, apiKey, model string, dimensions, batchSize int) (*LangchainEmbedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(strings.TrimRight(baseURL, "/")+"/v1"),
		openai.WithToken(strings.TrimPrefix(apiKey, "Bearer ")),
		openai.WithModel(model),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchain client: %w", err)
	}

	opts := []embeddings.Option{embeddings.WithStripNewLines(false)}
	if batchSize > 0 {
		opts = append(opts, embeddings.WithBatchSize(batchSize))
	}
	embedder, err := embeddings.NewEmbedder(client, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &LangchainEmbedder{embedder: embedder, model: model, dimensions: dimensions}, nil
}

// Configured is always true: construction fails without a token.
func (e *LangchainEmbedder) Configured() bool {
	return e != nil
}

func (e *LangchainEmbedder) ModelName() string {
	return e.model
}

func (e *LangchainEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) == 0 {
		return nil, ErrNoEmbeddings
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors))
	}
	for i, v := range vectors {
		if e.dimensions > 0 && len(v) != e.dimensions {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(v), e.dimensions)
		}
	}
	return vectors, nil
}
