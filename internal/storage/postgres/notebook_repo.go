package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notebook-ai/internal/storage"
)

// NotebookRepo implements storage.NotebookStore on PostgreSQL.
type NotebookRepo struct {
	db *sql.DB
}

// NewNotebookRepo creates a new NotebookRepo.
func NewNotebookRepo(db *sql.DB) *NotebookRepo {
	return &NotebookRepo{db: db}
}

var _ storage.NotebookStore = (*NotebookRepo)(nil)

// Create inserts a notebook.
func (r *NotebookRepo) Create(ctx context.Context, nb *storage.NotebookRecord) error {
	if nb.ID == "" {
		nb.ID = uuid.New().String()
	}
	if nb.CreatedAt.IsZero() {
		nb.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notebooks (id, user_id, title, summary, created_at) VALUES ($1, $2, $3, $4, $5)",
		nb.ID, nb.UserID, nb.Title, nb.Summary, nb.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notebook: %w", err)
	}
	return nil
}

// Get gets a notebook by ID. Returns storage.ErrNotFound if not found.
func (r *NotebookRepo) Get(ctx context.Context, id string) (*storage.NotebookRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT n.id, n.user_id, n.title, n.summary, n.created_at,
			(SELECT COUNT(*) FROM sources s WHERE s.notebook_id = n.id)
		 FROM notebooks n WHERE n.id = $1`,
		id,
	)
	nb, err := scanNotebook(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	return nb, nil
}

// GetForUser gets a notebook owned by userID.
func (r *NotebookRepo) GetForUser(ctx context.Context, id, userID string) (*storage.NotebookRecord, error) {
	nb, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if nb.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return nb, nil
}

// ListByUser returns a user's notebooks, newest first, with source counts.
func (r *NotebookRepo) ListByUser(ctx context.Context, userID string) ([]*storage.NotebookRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n.id, n.user_id, n.title, n.summary, n.created_at, COUNT(s.id)
		 FROM notebooks n LEFT JOIN sources s ON s.notebook_id = n.id
		 WHERE n.user_id = $1
		 GROUP BY n.id
		 ORDER BY n.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebooks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var notebooks []*storage.NotebookRecord
	for rows.Next() {
		nb, err := scanNotebook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		notebooks = append(notebooks, nb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notebooks, nil
}

// SetTitleIfEmpty sets the title only while it is still empty.
func (r *NotebookRepo) SetTitleIfEmpty(ctx context.Context, id, title string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notebooks SET title = $1 WHERE id = $2 AND title = ''",
		title, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set notebook title: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}

// UpdateSummary replaces the notebook summary.
func (r *NotebookRepo) UpdateSummary(ctx context.Context, id, summary string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE notebooks SET summary = $1 WHERE id = $2", summary, id)
	if err != nil {
		return fmt.Errorf("failed to update notebook summary: %w", err)
	}
	return expectOne(res)
}

// Delete removes a notebook along with its sources, chunks and messages.
func (r *NotebookRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notebooks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	return expectOne(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotebook(row rowScanner) (*storage.NotebookRecord, error) {
	var nb storage.NotebookRecord
	var summary sql.NullString
	if err := row.Scan(&nb.ID, &nb.UserID, &nb.Title, &summary, &nb.CreatedAt, &nb.SourceCount); err != nil {
		return nil, err
	}
	if summary.Valid {
		nb.Summary = &summary.String
	}
	return &nb, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
