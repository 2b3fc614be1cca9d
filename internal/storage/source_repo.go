package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source_store.go -package=mocks notebook-ai/internal/storage SourceStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SourceStore defines the interface for source storage operations.
type SourceStore interface {
	// SaveEmbedded writes the source, its chunks and the embedded status in
	// one transaction. Nothing is written if any step fails.
	SaveEmbedded(ctx context.Context, src *SourceRecord, chunks []*ChunkRecord) error
	// SaveFetched writes a source that has no chunks. Its status stays fetched.
	SaveFetched(ctx context.Context, src *SourceRecord) error
	// SaveFailed records a source whose pipeline failed, with the reason.
	SaveFailed(ctx context.Context, src *SourceRecord, reason string) error
	// Get gets a source by ID. Returns ErrNotFound if not found.
	Get(ctx context.Context, id string) (*SourceRecord, error)
	// ListByNotebook returns a notebook's sources, oldest first.
	ListByNotebook(ctx context.Context, notebookID string) ([]*SourceRecord, error)
	// UpdateSummary replaces a source's summary.
	UpdateSummary(ctx context.Context, id, summary string) error
	// Delete removes a source and its chunks.
	Delete(ctx context.Context, id string) error
	// CountByStatus counts a notebook's sources per status.
	CountByStatus(ctx context.Context, notebookID string) (map[SourceStatus]int, error)
}

// SourceRepo provides methods for source operations.
// It implements the SourceStore interface.
type SourceRepo struct {
	db         *sql.DB
	dimensions int
}

// NewSourceRepo creates a new SourceRepo. Chunk vectors must have exactly
// dimensions components.
func NewSourceRepo(db *sql.DB, dimensions int) *SourceRepo {
	return &SourceRepo{db: db, dimensions: dimensions}
}

const sourceColumns = "id, notebook_id, user_id, title, content, kind, origin, metadata, status, summary, error, created_at"

// SaveEmbedded inserts the source as fetched, inserts its chunks, then flips
// it to embedded, all in one transaction.
func (r *SourceRepo) SaveEmbedded(ctx context.Context, src *SourceRecord, chunks []*ChunkRecord) error {
	if len(chunks) == 0 {
		return fmt.Errorf("source %s has no chunks to embed", src.ID)
	}
	prepareSource(src)
	src.Status = StatusFetched

	err := Transaction(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertSource(ctx, tx, src); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO chunks (id, source_id, notebook_id, text, position, vector, model, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare chunk insert: %w", err)
		}
		defer func() {
			_ = stmt.Close()
		}()

		for i, c := range chunks {
			if err := r.prepareChunk(src, c, i); err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx,
				c.ID, c.SourceID, c.NotebookID, c.Text, c.Position, EncodeVector(c.Vector), c.Model, formatTime(c.CreatedAt),
			); err != nil {
				return fmt.Errorf("failed to insert chunk %d: %w", i, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE sources SET status = ? WHERE id = ?", StatusEmbedded, src.ID,
		); err != nil {
			return fmt.Errorf("failed to mark source embedded: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	src.Status = StatusEmbedded
	return nil
}

// SaveFetched writes a source that has no chunks.
func (r *SourceRepo) SaveFetched(ctx context.Context, src *SourceRecord) error {
	prepareSource(src)
	src.Status = StatusFetched
	return Transaction(ctx, r.db, func(tx *sql.Tx) error {
		return insertSource(ctx, tx, src)
	})
}

// SaveFailed records a failed source. A row left behind by an earlier
// attempt with the same ID is moved to failed instead.
func (r *SourceRepo) SaveFailed(ctx context.Context, src *SourceRecord, reason string) error {
	prepareSource(src)
	src.Status = StatusFailed
	src.Error = reason

	metadata, err := marshalMetadata(src.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sources (`+sourceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET status = excluded.status, error = excluded.error`,
		src.ID, src.NotebookID, src.UserID, src.Title, src.Content, src.Kind, src.Origin,
		metadata, src.Status, src.Summary, src.Error, formatTime(src.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record failed source: %w", err)
	}
	return nil
}

// Get gets a source by ID. Returns ErrNotFound if not found.
func (r *SourceRepo) Get(ctx context.Context, id string) (*SourceRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)
	src, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	return src, nil
}

// ListByNotebook returns a notebook's sources, oldest first.
func (r *SourceRepo) ListByNotebook(ctx context.Context, notebookID string) ([]*SourceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE notebook_id = ? ORDER BY created_at, id",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []*SourceRecord
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
	res, err := r.db.ExecContext(ctx, "UPDATE sources SET summary = ? WHERE id = ?", summary, id)
	if err != nil {
		return fmt.Errorf("failed to update source summary: %w", err)
	}
	return expectOne(res)
}

// Delete removes a source; its chunks are removed by ON DELETE CASCADE.
func (r *SourceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	return expectOne(res)
}

// CountByStatus counts a notebook's sources per status.
func (r *SourceRepo) CountByStatus(ctx context.Context, notebookID string) (map[SourceStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM sources WHERE notebook_id = ? GROUP BY status",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[SourceStatus]int)
	for rows.Next() {
		var status SourceStatus
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

func (r *SourceRepo) prepareChunk(src *SourceRecord, c *ChunkRecord, i int) error {
	if c.Position != i {
		return fmt.Errorf("chunk %d has position %d: positions must be contiguous from 0", i, c.Position)
	}
	if r.dimensions > 0 && len(c.Vector) != r.dimensions {
		return fmt.Errorf("chunk %d vector has %d dimensions, expected %d", i, len(c.Vector), r.dimensions)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.SourceID = src.ID
	c.NotebookID = src.NotebookID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = src.CreatedAt
	}
	return nil
}

func prepareSource(src *SourceRecord) {
	if src.ID == "" {
		src.ID = uuid.New().String()
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = time.Now().UTC()
	}
}

func insertSource(ctx context.Context, tx *sql.Tx, src *SourceRecord) error {
	metadata, err := marshalMetadata(src.Metadata)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO sources ("+sourceColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		src.ID, src.NotebookID, src.UserID, src.Title, src.Content, src.Kind, src.Origin,
		metadata, src.Status, src.Summary, src.Error, formatTime(src.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	return nil
}

func marshalMetadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal source metadata: %w", err)
	}
	return string(b), nil
}

func scanSource(row rowScanner) (*SourceRecord, error) {
	var src SourceRecord
	var content, summary sql.NullString
	var metadata, createdAt string
	if err := row.Scan(
		&src.ID, &src.NotebookID, &src.UserID, &src.Title, &content, &src.Kind, &src.Origin,
		&metadata, &src.Status, &summary, &src.Error, &createdAt,
	); err != nil {
		return nil, err
	}
	if content.Valid {
		src.Content = &content.String
	}
	if summary.Valid {
		src.Summary = &summary.String
	}
	if err := json.Unmarshal([]byte(metadata), &src.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode source metadata: %w", err)
	}
	var err error
	src.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &src, nil
}
