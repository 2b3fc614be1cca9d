package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notebook_refresher.go -package=mocks notebook-ai/internal/indexer NotebookRefresher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/extract"
	"notebook-ai/internal/service"
	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/textproc"
)

const (
	// MaxBatchItems caps the links or files accepted in one request.
	MaxBatchItems = 5
	// MaxFileSize caps a single uploaded file.
	MaxFileSize = 10 << 20

	defaultConcurrency     = 4
	defaultPostStepTimeout = 2 * time.Minute
)

// NotebookRefresher regenerates notebook titles and summaries after ingestion.
type NotebookRefresher interface {
	RefreshNotebook(ctx context.Context, notebookID string) (*service.RefreshResult, error)
	SetTitleFrom(ctx context.Context, notebookID, content string) service.Attempt[string]
}

// Adapters groups the per-kind source adapters.
type Adapters struct {
	Text  *sources.TextAdapter
	Links *sources.LinkAdapter
	Files *sources.FileAdapter
}

// Options tunes the pipeline. Zero values select defaults.
type Options struct {
	ChunkSize       int
	Concurrency     int
	PostStepTimeout time.Duration
}

// Pipeline ingests sources: adapt, chunk, embed, then persist each source
// and its chunks in one transaction.
type Pipeline struct {
	notebooks storage.NotebookStore
	sources   storage.SourceStore
	chunks    storage.ChunkStore
	embedder  Embedder
	adapters  Adapters
	refresher NotebookRefresher

	chunkSize       int
	concurrency     int
	postStepTimeout time.Duration

	detached sync.WaitGroup
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	notebooks storage.NotebookStore,
	sourceStore storage.SourceStore,
	chunkStore storage.ChunkStore,
	embedder Embedder,
	adapters Adapters,
	refresher NotebookRefresher,
	opts Options,
) *Pipeline {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = textproc.DefaultChunkSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.PostStepTimeout <= 0 {
		opts.PostStepTimeout = defaultPostStepTimeout
	}
	return &Pipeline{
		notebooks:       notebooks,
		sources:         sourceStore,
		chunks:          chunkStore,
		embedder:        embedder,
		adapters:        adapters,
		refresher:       refresher,
		chunkSize:       opts.ChunkSize,
		concurrency:     opts.Concurrency,
		postStepTimeout: opts.PostStepTimeout,
	}
}

// item is one unit of a batch. adapt returns ok=false for items that are
// skipped without counting as failures.
type item struct {
	label string
	adapt func(ctx context.Context) (draft sources.Draft, ok bool, err error)
}

type outcome struct {
	result  *ItemResult
	failure *ItemFailure
	skipped bool
}

// Ingest runs one ingestion request. Requests that cannot start (invalid
// input, missing credentials, unknown notebook) fail before anything is
// written. Otherwise every item runs independently; the call fails with a
// *BatchError only if every item failed.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*BatchResult, error) {
	logger := contextutil.LoggerFromContext(ctx).With("notebook_id", req.NotebookID, "kind", req.Kind)

	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := p.preflight(req.Kind); err != nil {
		return nil, err
	}

	nb, err := p.notebooks.Get(ctx, req.NotebookID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("notebook %s: %w", req.NotebookID, service.ErrNotFound)
	}
	if err != nil {
		return nil, service.WrapError(err, "failed to get notebook")
	}

	items := p.items(ctx, req, nb.Title == "")
	outcomes := make([]outcome, len(items))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			outcomes[i] = p.run(ctx, req, it)
			return nil
		})
	}
	_ = g.Wait()

	res := &BatchResult{}
	for i, o := range outcomes {
		switch {
		case o.result != nil:
			res.Successful = append(res.Successful, *o.result)
		case o.failure != nil:
			res.Failed = append(res.Failed, *o.failure)
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", o.failure.Label, o.failure.Message))
		case o.skipped:
			res.Skipped = append(res.Skipped, items[i].label)
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: no readable content", items[i].label))
		}
	}

	logger.InfoContext(ctx, "ingestion completed",
		"items", len(items),
		"successful", len(res.Successful),
		"failed", len(res.Failed),
		"skipped", len(res.Skipped),
	)

	if len(res.Failed) == len(items) {
		return res, &BatchError{Failures: res.Failed}
	}

	if len(res.Successful) > 0 {
		p.refresh(ctx, req.NotebookID)
	}

	return res, nil
}

// Wait blocks until detached post-ingestion work has finished.
func (p *Pipeline) Wait() {
	p.detached.Wait()
}

func validate(req *Request) error {
	if req.NotebookID == "" {
		return &service.ValidationError{Field: "notebook_id", Message: "cannot be empty"}
	}

	switch req.Kind {
	case storage.KindText:
		if strings.TrimSpace(req.Text) == "" {
			return &service.ValidationError{Field: "text", Message: "cannot be empty"}
		}
	case storage.KindLink:
		// Duplicates and malformed entries do not count against the cap.
		urls, err := sources.ValidateURLs(req.URLs)
		if err != nil {
			return err
		}
		if len(urls) > MaxBatchItems {
			return &service.ValidationError{Field: "urls", Message: fmt.Sprintf("at most %d URLs per request", MaxBatchItems)}
		}
		req.URLs = urls
	case storage.KindFile:
		if len(req.Files) == 0 {
			return &service.ValidationError{Field: "files", Message: "at least one file is required"}
		}
		if len(req.Files) > MaxBatchItems {
			return &service.ValidationError{Field: "files", Message: fmt.Sprintf("at most %d files per request", MaxBatchItems)}
		}
		for _, f := range req.Files {
			if len(f.Data) > MaxFileSize {
				return &service.ValidationError{Field: "files", Message: fmt.Sprintf("%s exceeds %d MiB", f.Name, MaxFileSize>>20)}
			}
			if !extract.Supported(f.MimeType) {
				return &service.ValidationError{Field: "files", Message: fmt.Sprintf("%s has unsupported type %q", f.Name, f.MimeType)}
			}
		}
	default:
		return &service.ValidationError{Field: "type", Message: fmt.Sprintf("unknown source type %q", req.Kind)}
	}
	return nil
}

// preflight fails with a *service.NeedsSetupError when a provider the
// request depends on has no credentials.
func (p *Pipeline) preflight(kind storage.SourceKind) error {
	var missing []string
	if !configured(p.embedder) {
		missing = append(missing, "embedding provider")
	}
	if kind == storage.KindLink && (p.adapters.Links == nil || !p.adapters.Links.Configured()) {
		missing = append(missing, "content fetcher")
	}
	if len(missing) > 0 {
		return &service.NeedsSetupError{Missing: missing}
	}
	return nil
}

func configured(v any) bool {
	if v == nil {
		return false
	}
	if c, ok := v.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

func (p *Pipeline) items(ctx context.Context, req Request, untitled bool) []item {
	switch req.Kind {
	case storage.KindText:
		return []item{{
			label: "text",
			adapt: func(ctx context.Context) (sources.Draft, bool, error) {
				return p.adapters.Text.Adapt(ctx, req.Text), true, nil
			},
		}}

	case storage.KindLink:
		// The first page fetched titles an untitled notebook. Concurrent
		// batches may race here; the store keeps the first title written.
		var titleOnce sync.Once
		items := make([]item, len(req.URLs))
		for i, u := range req.URLs {
			u := u
			items[i] = item{
				label: u,
				adapt: func(ctx context.Context) (sources.Draft, bool, error) {
					draft, ok, err := p.adapters.Links.Adapt(ctx, u)
					if ok && untitled {
						titleOnce.Do(func() {
							p.goDetached(ctx, func(ctx context.Context) {
								p.refresher.SetTitleFrom(ctx, req.NotebookID, titleInput(draft))
							})
						})
					}
					return draft, ok, err
				},
			}
		}
		return items

	case storage.KindFile:
		items := make([]item, len(req.Files))
		for i, f := range req.Files {
			f := f
			items[i] = item{
				label: f.Name,
				adapt: func(ctx context.Context) (sources.Draft, bool, error) {
					draft, err := p.adapters.Files.Adapt(ctx, req.NotebookID, f)
					return draft, err == nil, err
				},
			}
		}
		return items
	}
	return nil
}

func titleInput(d sources.Draft) string {
	if d.Title == "" {
		return d.Content
	}
	return d.Title + "\n\n" + d.Content
}

// run executes one item and never panics the batch.
func (p *Pipeline) run(ctx context.Context, req Request, it item) (o outcome) {
	logger := contextutil.LoggerFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "source pipeline panicked", "label", it.label, "panic", r)
			o = outcome{failure: newItemFailure(it.label, "", fmt.Errorf("internal error: %v", r))}
		}
	}()

	draft, ok, err := it.adapt(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to adapt source", "label", it.label, "error", err)
		return outcome{failure: newItemFailure(it.label, "", err)}
	}
	if !ok {
		return outcome{skipped: true}
	}

	result, err := p.persist(ctx, req, draft)
	if err != nil {
		logger.ErrorContext(ctx, "failed to ingest source", "label", it.label, "source_id", result.SourceID, "error", err)
		return outcome{failure: newItemFailure(it.label, result.SourceID, err)}
	}
	result.Label = it.label
	return outcome{result: &result}
}

// persist stores one draft. Content is chunked, embedded and written with
// its chunks atomically; a draft without content is stored as fetched. On
// failure the source is recorded as failed in a separate write.
func (p *Pipeline) persist(ctx context.Context, req Request, draft sources.Draft) (ItemResult, error) {
	rec := draft.Record(req.NotebookID, req.UserID)

	if draft.Content == "" {
		if err := p.sources.SaveFetched(ctx, rec); err != nil {
			return ItemResult{}, fmt.Errorf("failed to save source: %w", err)
		}
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "stored source without text", "source_id", rec.ID, "title", rec.Title)
		return ItemResult{SourceID: rec.ID, Title: rec.Title, Status: rec.Status}, nil
	}

	chunks, err := p.embedChunks(ctx, draft.Content)
	if err == nil {
		err = p.sources.SaveEmbedded(ctx, rec, chunks)
	}
	if err != nil {
		p.recordFailure(ctx, rec, err)
		return ItemResult{SourceID: rec.ID}, err
	}

	return ItemResult{SourceID: rec.ID, Title: rec.Title, Status: rec.Status, Chunks: len(chunks)}, nil
}

// embedChunks chunks content and embeds every chunk, keeping positions in
// chunker order.
func (p *Pipeline) embedChunks(ctx context.Context, content string) ([]*storage.ChunkRecord, error) {
	texts := textproc.Chunk(content, p.chunkSize)
	if len(texts) == 0 {
		return nil, errors.New("content produced no chunks")
	}

	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(vectors))
	}

	model := p.embedder.ModelName()
	records := make([]*storage.ChunkRecord, len(texts))
	for i, text := range texts {
		records[i] = &storage.ChunkRecord{
			Text:     text,
			Position: i,
			Vector:   textproc.NormalizeVector(vectors[i]),
			Model:    model,
		}
	}
	return records, nil
}

func (p *Pipeline) recordFailure(ctx context.Context, rec *storage.SourceRecord, cause error) {
	if err := p.sources.SaveFailed(ctx, rec, cause.Error()); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record failed source",
			"source_id", rec.ID,
			"error", err,
		)
	}
}

// refresh regenerates the notebook title and summaries in the background.
func (p *Pipeline) refresh(ctx context.Context, notebookID string) {
	if p.refresher == nil {
		return
	}
	p.goDetached(ctx, func(ctx context.Context) {
		logger := contextutil.LoggerFromContext(ctx)
		res, err := p.refresher.RefreshNotebook(ctx, notebookID)
		if err != nil {
			logger.WarnContext(ctx, "notebook refresh failed", "notebook_id", notebookID, "error", err)
			return
		}
		logger.InfoContext(ctx, "notebook refreshed",
			"notebook_id", notebookID,
			"title_generated", res.Title.OK() && !res.TitleAlreadySet,
			"source_summaries", res.SourceSummaries,
			"summary_generated", res.Summary.OK(),
		)
	})
}

// goDetached runs fn after the request returns, bounded by the post-step
// timeout. Wait blocks until it is done.
func (p *Pipeline) goDetached(ctx context.Context, fn func(ctx context.Context)) {
	if p.refresher == nil {
		return
	}
	p.detached.Add(1)
	go func() {
		defer p.detached.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.postStepTimeout)
		defer cancel()
		fn(ctx)
	}()
}
