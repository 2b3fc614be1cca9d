package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notebook-ai/internal/blob"
	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/textproc"
)

// MaxNotebookTitleLength bounds user-supplied notebook titles.
const MaxNotebookTitleLength = 200

// BlobPathFunc maps a file source to the blob holding its upload.
type BlobPathFunc func(src *storage.SourceRecord) (string, bool)

// NotebookService manages notebooks and their sources on behalf of a user.
type NotebookService struct {
	notebooks  storage.NotebookStore
	sources    storage.SourceStore
	blobs      blob.Store
	blobPath   BlobPathFunc
	titler     *Titler
	summarizer *Summarizer
}

// NewNotebookService creates a new NotebookService. blobPath locates the
// uploads removed with file sources; nil leaves uploads in place.
func NewNotebookService(
	notebooks storage.NotebookStore,
	sources storage.SourceStore,
	blobs blob.Store,
	blobPath BlobPathFunc,
	titler *Titler,
	summarizer *Summarizer,
) *NotebookService {
	return &NotebookService{
		notebooks:  notebooks,
		sources:    sources,
		blobs:      blobs,
		blobPath:   blobPath,
		titler:     titler,
		summarizer: summarizer,
	}
}

// Create creates an empty notebook. An empty title is allowed; it is filled
// in from the first source later.
func (s *NotebookService) Create(ctx context.Context, userID, title string) (*storage.NotebookRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "cannot be empty"}
	}
	title = strings.TrimSpace(title)
	if len([]rune(title)) > MaxNotebookTitleLength {
		return nil, &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxNotebookTitleLength)}
	}

	nb := &storage.NotebookRecord{UserID: userID, Title: title}
	if err := s.notebooks.Create(ctx, nb); err != nil {
		logger.ErrorContext(ctx, "failed to create notebook", "error", err)
		return nil, WrapError(err, "failed to create notebook")
	}

	logger.InfoContext(ctx, "notebook created", "notebook_id", nb.ID)
	return nb, nil
}

// List returns the user's notebooks, newest first.
func (s *NotebookService) List(ctx context.Context, userID string) ([]*storage.NotebookRecord, error) {
	notebooks, err := s.notebooks.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list notebooks")
	}
	return notebooks, nil
}

// Get returns a notebook owned by userID.
func (s *NotebookService) Get(ctx context.Context, userID, notebookID string) (*storage.NotebookRecord, error) {
	nb, err := s.notebooks.GetForUser(ctx, notebookID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("notebook %s: %w", notebookID, ErrNotFound)
	}
	if err != nil {
		return nil, WrapError(err, "failed to get notebook")
	}
	return nb, nil
}

// Delete removes a notebook with its sources, chunks and messages. Uploaded
// files are removed from blob storage afterwards on a best-effort basis.
func (s *NotebookService) Delete(ctx context.Context, userID, notebookID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := s.Get(ctx, userID, notebookID); err != nil {
		return err
	}

	sources, err := s.sources.ListByNotebook(ctx, notebookID)
	if err != nil {
		return WrapError(err, "failed to list sources")
	}

	if err := s.notebooks.Delete(ctx, notebookID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("notebook %s: %w", notebookID, ErrNotFound)
		}
		return WrapError(err, "failed to delete notebook")
	}

	for _, src := range sources {
		s.deleteBlob(ctx, src)
	}

	logger.InfoContext(ctx, "notebook deleted", "notebook_id", notebookID, "sources", len(sources))
	return nil
}

// ListSources returns the sources of a notebook owned by userID.
func (s *NotebookService) ListSources(ctx context.Context, userID, notebookID string) ([]*storage.SourceRecord, error) {
	if _, err := s.Get(ctx, userID, notebookID); err != nil {
		return nil, err
	}
	sources, err := s.sources.ListByNotebook(ctx, notebookID)
	if err != nil {
		return nil, WrapError(err, "failed to list sources")
	}
	return sources, nil
}

// SourceIDs returns the IDs of a notebook's sources.
func (s *NotebookService) SourceIDs(ctx context.Context, userID, notebookID string) ([]string, error) {
	sources, err := s.ListSources(ctx, userID, notebookID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(sources))
	for i, src := range sources {
		ids[i] = src.ID
	}
	return ids, nil
}

// DeleteSource removes one source and its chunks.
func (s *NotebookService) DeleteSource(ctx context.Context, userID, notebookID, sourceID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := s.Get(ctx, userID, notebookID); err != nil {
		return err
	}

	src, err := s.sources.Get(ctx, sourceID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && src.NotebookID != notebookID) {
		return fmt.Errorf("source %s: %w", sourceID, ErrNotFound)
	}
	if err != nil {
		return WrapError(err, "failed to get source")
	}

	if err := s.sources.Delete(ctx, sourceID); err != nil {
		return WrapError(err, "failed to delete source")
	}
	s.deleteBlob(ctx, src)

	logger.InfoContext(ctx, "source deleted", "notebook_id", notebookID, "source_id", sourceID)
	return nil
}

func (s *NotebookService) deleteBlob(ctx context.Context, src *storage.SourceRecord) {
	if src.Kind != storage.KindFile || s.blobs == nil || s.blobPath == nil {
		return
	}
	path, ok := s.blobPath(src)
	if !ok {
		return
	}
	if err := s.blobs.Delete(ctx, path); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to delete uploaded file",
			"source_id", src.ID,
			"path", path,
			"error", err,
		)
	}
}

// RefreshResult reports which steps of RefreshNotebook produced something.
type RefreshResult struct {
	Title            Attempt[string]
	SourceSummaries  int
	Summary          Attempt[string]
	TitleAlreadySet  bool
	SummarizeSkipped []string // source IDs whose summary could not be generated
}

var errNoTitleCandidate = errors.New("no source with content to title from")

// RefreshNotebook regenerates the notebook's derived fields: the title when
// it is still empty, missing per-source summaries, and the unified summary.
// Each step is best-effort; only failures to read the notebook are returned.
func (s *NotebookService) RefreshNotebook(ctx context.Context, notebookID string) (*RefreshResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	nb, err := s.notebooks.Get(ctx, notebookID)
	if err != nil {
		return nil, WrapError(err, "failed to get notebook")
	}
	sources, err := s.sources.ListByNotebook(ctx, notebookID)
	if err != nil {
		return nil, WrapError(err, "failed to list sources")
	}

	res := &RefreshResult{}
	title := nb.Title

	if title == "" {
		res.Title = s.refreshTitle(ctx, notebookID, sources)
		if res.Title.OK() {
			title = res.Title.Value
		} else {
			logger.WarnContext(ctx, "notebook title not generated", "notebook_id", notebookID, "reason", res.Title.Skipped)
		}
	} else {
		res.TitleAlreadySet = true
		res.Title = Done(title)
	}

	var summaries []string
	for _, src := range sources {
		if src.Status == storage.StatusFailed {
			continue
		}
		if src.Summary != nil && *src.Summary != "" {
			summaries = append(summaries, *src.Summary)
			continue
		}
		if src.Content == nil || *src.Content == "" {
			continue
		}

		summary := s.summarizer.SummarizeSource(ctx, *src.Content)
		if !summary.OK() {
			logger.WarnContext(ctx, "source summary not generated", "source_id", src.ID, "reason", summary.Skipped)
			res.SummarizeSkipped = append(res.SummarizeSkipped, src.ID)
			continue
		}
		if err := s.sources.UpdateSummary(ctx, src.ID, summary.Value); err != nil {
			logger.WarnContext(ctx, "failed to store source summary", "source_id", src.ID, "error", err)
		}
		summaries = append(summaries, summary.Value)
		res.SourceSummaries++
	}

	res.Summary = s.summarizer.UnifiedSummary(ctx, title, summaries)
	if !res.Summary.OK() {
		logger.WarnContext(ctx, "notebook summary not generated", "notebook_id", notebookID, "reason", res.Summary.Skipped)
		return res, nil
	}
	if err := s.notebooks.UpdateSummary(ctx, notebookID, res.Summary.Value); err != nil {
		logger.WarnContext(ctx, "failed to store notebook summary", "notebook_id", notebookID, "error", err)
		res.Summary = Skip[string](err)
	}

	return res, nil
}

// refreshTitle titles the notebook from its first source with content.
func (s *NotebookService) refreshTitle(ctx context.Context, notebookID string, sources []*storage.SourceRecord) Attempt[string] {
	for _, src := range sources {
		if src.Content == nil || strings.TrimSpace(*src.Content) == "" {
			continue
		}
		return s.SetTitleFrom(ctx, notebookID, *src.Content)
	}
	return Skip[string](errNoTitleCandidate)
}

// SetTitleFrom generates a title from content and stores it if the notebook
// title is still empty. Concurrent callers race; exactly one write wins.
func (s *NotebookService) SetTitleFrom(ctx context.Context, notebookID, content string) Attempt[string] {
	title := s.titler.GenerateTitle(ctx, textproc.Truncate(content, maxPromptRunes))
	if !title.OK() {
		return title
	}
	won, err := s.notebooks.SetTitleIfEmpty(ctx, notebookID, title.Value)
	if err != nil {
		return Skip[string](WrapError(err, "failed to store notebook title"))
	}
	if !won {
		return Skip[string](errors.New("notebook title already set"))
	}
	return title
}
