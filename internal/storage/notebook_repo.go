package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notebook_store.go -package=mocks notebook-ai/internal/storage NotebookStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NotebookStore defines the interface for notebook storage operations.
type NotebookStore interface {
	// Create inserts a notebook. ID and CreatedAt are generated when empty.
	Create(ctx context.Context, nb *NotebookRecord) error
	// Get gets a notebook by ID. Returns ErrNotFound if not found.
	Get(ctx context.Context, id string) (*NotebookRecord, error)
	// GetForUser gets a notebook owned by userID. A notebook owned by
	// someone else is reported as ErrNotFound.
	GetForUser(ctx context.Context, id, userID string) (*NotebookRecord, error)
	// ListByUser returns a user's notebooks, newest first, with source counts.
	ListByUser(ctx context.Context, userID string) ([]*NotebookRecord, error)
	// SetTitleIfEmpty sets the title only if it is still empty and reports
	// whether this call won.
	SetTitleIfEmpty(ctx context.Context, id, title string) (bool, error)
	// UpdateSummary replaces the notebook summary.
	UpdateSummary(ctx context.Context, id, summary string) error
	// Delete removes a notebook with its sources, chunks and messages.
	Delete(ctx context.Context, id string) error
}

// NotebookRepo provides methods for notebook operations.
// It implements the NotebookStore interface.
type NotebookRepo struct {
	db *sql.DB
}

// NewNotebookRepo creates a new NotebookRepo.
func NewNotebookRepo(db *sql.DB) *NotebookRepo {
	return &NotebookRepo{db: db}
}

// Create inserts a notebook.
func (r *NotebookRepo) Create(ctx context.Context, nb *NotebookRecord) error {
	if nb.ID == "" {
		nb.ID = uuid.New().String()
	}
	if nb.CreatedAt.IsZero() {
		nb.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notebooks (id, user_id, title, summary, created_at) VALUES (?, ?, ?, ?, ?)",
		nb.ID, nb.UserID, nb.Title, nb.Summary, formatTime(nb.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notebook: %w", err)
	}
	return nil
}

// Get gets a notebook by ID. Returns ErrNotFound if not found.
func (r *NotebookRepo) Get(ctx context.Context, id string) (*NotebookRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT n.id, n.user_id, n.title, n.summary, n.created_at,
			(SELECT COUNT(*) FROM sources s WHERE s.notebook_id = n.id)
		 FROM notebooks n WHERE n.id = ?`,
		id,
	)
	nb, err := scanNotebook(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	return nb, nil
}

// GetForUser gets a notebook owned by userID.
func (r *NotebookRepo) GetForUser(ctx context.Context, id, userID string) (*NotebookRecord, error) {
	nb, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if nb.UserID != userID {
		return nil, ErrNotFound
	}
	return nb, nil
}

// ListByUser returns a user's notebooks, newest first, with source counts.
func (r *NotebookRepo) ListByUser(ctx context.Context, userID string) ([]*NotebookRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n.id, n.user_id, n.title, n.summary, n.created_at, COUNT(s.id)
		 FROM notebooks n LEFT JOIN sources s ON s.notebook_id = n.id
		 WHERE n.user_id = ?
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

	var notebooks []*NotebookRecord
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

// SetTitleIfEmpty sets the title only while it is still empty. Concurrent
// callers race on the UPDATE and exactly one of them wins.
func (r *NotebookRepo) SetTitleIfEmpty(ctx context.Context, id, title string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notebooks SET title = ? WHERE id = ? AND title = ''",
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
	res, err := r.db.ExecContext(ctx, "UPDATE notebooks SET summary = ? WHERE id = ?", summary, id)
	if err != nil {
		return fmt.Errorf("failed to update notebook summary: %w", err)
	}
	return expectOne(res)
}

// Delete removes a notebook. Sources, chunks and messages go with it
// through ON DELETE CASCADE.
func (r *NotebookRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notebooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	return expectOne(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotebook(row rowScanner) (*NotebookRecord, error) {
	var nb NotebookRecord
	var summary sql.NullString
	var createdAt string
	if err := row.Scan(&nb.ID, &nb.UserID, &nb.Title, &summary, &createdAt, &nb.SourceCount); err != nil {
		return nil, err
	}
	if summary.Valid {
		nb.Summary = &summary.String
	}
	var err error
	nb.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &nb, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
