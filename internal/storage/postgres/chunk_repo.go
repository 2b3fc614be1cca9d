package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"notebook-ai/internal/storage"
)

// ChunkRepo implements storage.ChunkStore on PostgreSQL.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

var _ storage.ChunkStore = (*ChunkRepo)(nil)

const searchSQL = `
SELECT c.id, c.source_id, c.notebook_id, c.text, c.position, c.model, c.created_at,
       c.vector <=> $1 AS distance,
       s.title, s.origin, s.created_at
FROM chunks c
JOIN sources s ON s.id = c.source_id
WHERE s.status = 'embedded' AND c.source_id = ANY($2)
ORDER BY distance, s.created_at, c.position
LIMIT $3`

// Search ranks chunks with the pgvector cosine distance operator.
func (r *ChunkRepo) Search(ctx context.Context, query []float32, sourceIDs []string, k int) ([]storage.ScoredChunk, error) {
	if len(sourceIDs) == 0 || k <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, searchSQL, pgvector.NewVector(query), pq.Array(sourceIDs), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []storage.ScoredChunk
	for rows.Next() {
		var sc storage.ScoredChunk
		if err := rows.Scan(
			&sc.Chunk.ID, &sc.Chunk.SourceID, &sc.Chunk.NotebookID, &sc.Chunk.Text, &sc.Chunk.Position,
			&sc.Chunk.Model, &sc.Chunk.CreatedAt, &sc.Distance,
			&sc.SourceTitle, &sc.SourceOrigin, &sc.SourceCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}

// ListBySource returns all chunks for a source, ordered by position.
func (r *ChunkRepo) ListBySource(ctx context.Context, sourceID string) ([]*storage.ChunkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, source_id, notebook_id, text, position, vector, model, created_at FROM chunks WHERE source_id = $1 ORDER BY position",
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []*storage.ChunkRecord
	for rows.Next() {
		var c storage.ChunkRecord
		var vector pgvector.Vector
		if err := rows.Scan(&c.ID, &c.SourceID, &c.NotebookID, &c.Text, &c.Position, &vector, &c.Model, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		c.Vector = vector.Slice()
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
		"SELECT text FROM chunks WHERE notebook_id = $1 ORDER BY source_id, position",
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
