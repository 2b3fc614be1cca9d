package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_embedder.go -package=mocks notebook-ai/internal/rag QueryEmbedder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks notebook-ai/internal/rag Engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/service"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/textproc"
)

// ErrNoQueryVector is returned when the embedding provider produced no
// vector for a non-empty query.
var ErrNoQueryVector = errors.New("no embedding returned for query")

// QueryEmbedder embeds search queries.
type QueryEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Engine retrieves the chunks most relevant to a query.
type Engine interface {
	// Search ranks the chunks of the candidate sources against the query.
	Search(ctx context.Context, req SearchRequest) ([]RankedChunk, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder QueryEmbedder
	chunks   storage.ChunkStore
}

// NewEngine creates a new retrieval engine.
func NewEngine(embedder QueryEmbedder, chunks storage.ChunkStore) Engine {
	return &ragEngine{
		embedder: embedder,
		chunks:   chunks,
	}
}

// Search embeds the query once and returns the K nearest chunks among the
// candidate sources. No candidates means no results and no embedding call.
func (e *ragEngine) Search(ctx context.Context, req SearchRequest) ([]RankedChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.SourceIDs) == 0 {
		logger.DebugContext(ctx, "search skipped, no candidate sources")
		return []RankedChunk{}, nil
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, &service.ValidationError{Field: "query", Message: "cannot be empty"}
	}
	if c, ok := e.embedder.(interface{ Configured() bool }); ok && !c.Configured() {
		return nil, &service.NeedsSetupError{Missing: []string{"embedding provider"}}
	}

	k := req.K
	if k <= 0 {
		k = DefaultK
	}
	if k > MaxK {
		k = MaxK
	}

	logger.InfoContext(ctx, "search started",
		"query_length", len(req.Query),
		"candidate_sources", len(req.SourceIDs),
		"k", k,
	)

	embeddings, err := e.embedder.Embed(ctx, []string{req.Query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, ErrNoQueryVector
	}
	query := textproc.NormalizeVector(embeddings[0])

	hits, err := e.chunks.Search(ctx, query, req.SourceIDs, k)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search chunks", "error", err)
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	results := make([]RankedChunk, len(hits))
	for i, hit := range hits {
		results[i] = RankedChunk{
			ChunkID:         hit.Chunk.ID,
			SourceID:        hit.Chunk.SourceID,
			Position:        hit.Chunk.Position,
			Text:            textproc.Truncate(hit.Chunk.Text, PreviewLength),
			Similarity:      1 - hit.Distance,
			SourceTitle:     hit.SourceTitle,
			SourceURL:       hit.SourceOrigin,
			SourceCreatedAt: hit.SourceCreatedAt,
		}
	}

	if len(results) > 0 {
		logger.DebugContext(ctx, "top search result", "similarity", results[0].Similarity, "source_id", results[0].SourceID)
	}
	logger.InfoContext(ctx, "search completed", "results_count", len(results))

	return results, nil
}

// FormatContext renders search results as context for an LLM call.
func FormatContext(results []RankedChunk) string {
	if len(results) == 0 {
		return "No relevant content was found in the selected sources."
	}

	var b strings.Builder
	b.WriteString("--- Context from sources ---\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] Source: %s", i+1, r.SourceTitle)
		if r.SourceURL != "" {
			fmt.Fprintf(&b, " (%s)", r.SourceURL)
		}
		fmt.Fprintf(&b, "\nRelevance: %.2f\nContent: %s\n\n", r.Similarity, r.Text)
	}
	b.WriteString("--- End Context ---")
	return b.String()
}
