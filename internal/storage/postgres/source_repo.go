package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"notebook-ai/internal/storage"
)

// SourceRepo implements storage.SourceStore on PostgreSQL.
type SourceRepo struct {
	db         *sql.DB
	dimensions int
}

// NewSourceRepo creates a new SourceRepo.
func NewSourceRepo(db *sql.DB, dimensions int) *SourceRepo {
	return &SourceRepo{db: db, dimensions: dimensions}
}

var _ storage.SourceStore = (*SourceRepo)(nil)

const sourceColumns = "id, notebook_id, user_id, title, content, kind, origin, metadata, status, summary, error, created_at"

const insertSourceSQL = "INSERT INTO sources (" + sourceColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)"

// SaveEmbedded inserts the source as fetched, inserts its chunks, then flips
// it to embedded, all in one transaction.
func (r *SourceRepo) SaveEmbedded(ctx context.Context, src *storage.SourceRecord, chunks []*storage.ChunkRecord) error {
	if len(chunks) == 0 {
		return fmt.Errorf("source %s has no chunks to embed", src.ID)
	}
	prepareSource(src)
	src.Status = storage.StatusFetched

	err := storage.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertSource(ctx, tx, src); err != nil {
			return err
		}

		for i, c := range chunks {
			if err := validateChunk(c, i, r.dimensions); err != nil {
				return err
			}
			fillChunk(src, c)
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO chunks (id, source_id, notebook_id, text, position, vector, model, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
				c.ID, c.SourceID, c.NotebookID, c.Text, c.Position, pgvector.NewVector(c.Vector), c.Model, c.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert chunk %d: %w", i, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE sources SET status = $1 WHERE id = $2", storage.StatusEmbedded, src.ID,
		); err != nil {
			return fmt.Errorf("failed to mark source embedded: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	src.Status = storage.StatusEmbedded
	return nil
}

// SaveFetched writes a source that has no chunks.
func (r *SourceRepo) SaveFetched(ctx context.Context, src *storage.SourceRecord) error {
	prepareSource(src)
	src.Status = storage.StatusFetched
	return storage.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		return insertSource(ctx, tx, src)
	})
}

// SaveFailed records a failed source, replacing the status of a row left by
// an earlier attempt with the same ID.
func (r *SourceRepo) SaveFailed(ctx context.Context, src *storage.SourceRecord, reason string) error {
	prepareSource(src)
	src.Status = storage.StatusFailed
	src.Error = reason

	metadata, err := marshalMetadata(src.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		insertSourceSQL+" ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, error = EXCLUDED.error",
		src.ID, src.NotebookID, src.UserID, src.Title, src.Content, src.Kind, src.Origin,
		metadata, src.Status, src.Summary, src.Error, src.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record failed source: %w", err)
	}
	return nil
}

// Get gets a source by ID. Returns storage.ErrNotFound if not found.
func (r *SourceRepo) Get(ctx context.Context, id string) (*storage.SourceRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE id = $1", id)
	src, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	return src, nil
}

// ListByNotebook returns a notebook's sources, oldest first.
func (r *SourceRepo) ListByNotebook(ctx context.Context, notebookID string) ([]*storage.SourceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE notebook_id = $1 ORDER BY created_at, id",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []*storage.SourceRecord
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sources, nil
}

// UpdateSummary replaces a source's summary.
func (r *SourceRepo) UpdateSummary(ctx context.Context, id, summary string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE sources SET summary = $1 WHERE id = $2", summary, id)
	if err != nil {
		return fmt.Errorf("failed to update source summary: %w", err)
	}
	return expectOne(res)
}

// Delete removes a source and its chunks.
func (r *SourceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	return expectOne(res)
}

// CountByStatus counts a notebook's sources per status.
func (r *SourceRepo) CountByStatus(ctx context.Context, notebookID string) (map[storage.SourceStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM sources WHERE notebook_id = $1 GROUP BY status",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[storage.SourceStatus]int)
	for rows.Next() {
		var status storage.SourceStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

func validateChunk(c *storage.ChunkRecord, i, dimensions int) error {
	if c.Position != i {
		return fmt.Errorf("chunk %d has position %d: positions must be contiguous from 0", i, c.Position)
	}
	if dimensions > 0 && len(c.Vector) != dimensions {
		return fmt.Errorf("chunk %d vector has %d dimensions, expected %d", i, len(c.Vector), dimensions)
	}
	return nil
}

func fillChunk(src *storage.SourceRecord, c *storage.ChunkRecord) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.SourceID = src.ID
	c.NotebookID = src.NotebookID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = src.CreatedAt
	}
}

func prepareSource(src *storage.SourceRecord) {
	if src.ID == "" {
		src.ID = uuid.New().String()
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = time.Now().UTC()
	}
}

func insertSource(ctx context.Context, tx *sql.Tx, src *storage.SourceRecord) error {
	metadata, err := marshalMetadata(src.Metadata)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertSourceSQL,
		src.ID, src.NotebookID, src.UserID, src.Title, src.Content, src.Kind, src.Origin,
		metadata, src.Status, src.Summary, src.Error, src.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	return nil
}

func marshalMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source metadata: %w", err)
	}
	return b, nil
}

func scanSource(row rowScanner) (*storage.SourceRecord, error) {
	var src storage.SourceRecord
	var content, summary sql.NullString
	var metadata []byte
	if err := row.Scan(
		&src.ID, &src.NotebookID, &src.UserID, &src.Title, &content, &src.Kind, &src.Origin,
		&metadata, &src.Status, &summary, &src.Error, &src.CreatedAt,
	); err != nil {
		return nil, err
	}
	if content.Valid {
		src.Content = &content.String
	}
	if summary.Valid {
		src.Summary = &summary.String
	}
	if err := json.Unmarshal(metadata, &src.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode source metadata: %w", err)
	}
	return &src, nil
}
