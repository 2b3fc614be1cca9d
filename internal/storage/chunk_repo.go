package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks notebook-ai/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ChunkStore defines the interface for chunk storage operations.
// Chunks are written only through SourceStore.SaveEmbedded.
type ChunkStore interface {
	// Search returns the k chunks nearest to query by cosine distance,
	// restricted to embedded sources in sourceIDs. Ascending distance.
	Search(ctx context.Context, query []float32, sourceIDs []string, k int) ([]ScoredChunk, error)
	// ListBySource returns all chunks for a source, ordered by position.
	ListBySource(ctx context.Context, sourceID string) ([]*ChunkRecord, error)
	// ListTextsByNotebook returns the chunk texts for a notebook.
	ListTextsByNotebook(ctx context.Context, notebookID string) ([]string, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Search ranks chunks with the cosine_distance SQL function. Ties are broken
// by source creation time and chunk position so results are stable.
func (r *ChunkRepo) Search(ctx context.Context, query []float32, sourceIDs []string, k int) ([]ScoredChunk, error) {
	if len(sourceIDs) == 0 || k <= 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(sourceIDs)), ", ")
	args := make([]any, 0, len(sourceIDs)+2)
	args = append(args, EncodeVector(query))
	for _, id := range sourceIDs {
		args = append(args, id)
	}
	args = append(args, k)

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.source_id, c.notebook_id, c.text, c.position, c.model, c.created_at,
		       cosine_distance(c.vector, ?) AS distance,
		       s.title, s.origin, s.created_at
		FROM chunks c
		JOIN sources s ON s.id = c.source_id
		WHERE s.status = 'embedded' AND c.source_id IN (`+placeholders+`)
		ORDER BY distance, s.created_at, c.position
		LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []ScoredChunk
	for rows.Next() {
		var sc ScoredChunk
		var chunkCreated, sourceCreated string
		if err := rows.Scan(
			&sc.Chunk.ID, &sc.Chunk.SourceID, &sc.Chunk.NotebookID, &sc.Chunk.Text, &sc.Chunk.Position,
			&sc.Chunk.Model, &chunkCreated, &sc.Distance,
			&sc.SourceTitle, &sc.SourceOrigin, &sourceCreated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if sc.Chunk.CreatedAt, err = parseTime(chunkCreated); err != nil {
			return nil, err
		}
		if sc.SourceCreatedAt, err = parseTime(sourceCreated); err != nil {
			return nil, err
		}
		results = append(results, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}

// ListBySource returns all chunks for a source, ordered by position.
// Returns an empty slice if no chunks exist (not an error).
func (r *ChunkRepo) ListBySource(ctx context.Context, sourceID string) ([]*ChunkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, source_id, notebook_id, text, position, vector, model, created_at FROM chunks WHERE source_id = ? ORDER BY position",
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []*ChunkRecord
	for rows.Next() {
		var c ChunkRecord
		var vector []byte
		var createdAt string
		if err := rows.Scan(&c.ID, &c.SourceID, &c.NotebookID, &c.Text, &c.Position, &vector, &c.Model, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if c.Vector, err = DecodeVector(vector); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		chunks = append(chunks, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// ListTextsByNotebook returns the chunk texts for a notebook.
func (r *ChunkRepo) ListTextsByNotebook(ctx context.Context, notebookID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT text FROM chunks WHERE notebook_id = ? ORDER BY source_id, position",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk texts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan chunk text: %w", err)
		}
		texts = append(texts, text)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return texts, nil
}
