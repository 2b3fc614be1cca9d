// Package app assembles the notebook services from configuration. The API
// server and the CLI share it so both run the same pipeline.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"notebook-ai/internal/blob"
	"notebook-ai/internal/cache"
	"notebook-ai/internal/config"
	"notebook-ai/internal/extract"
	"notebook-ai/internal/fetcher"
	"notebook-ai/internal/handlers"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/llm"
	"notebook-ai/internal/rag"
	"notebook-ai/internal/service"
	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/storage/postgres"
	"notebook-ai/internal/textproc"
)

const fetchCacheSize = 512

// App holds the wired services.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Blobs     blob.Store
	Notebooks *service.NotebookService
	Pipeline  *indexer.Pipeline
	Engine    rag.Engine
	Health    *handlers.HealthHandler
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Open connects storage and builds every service. Call Close when done.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, stores, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	blobs, err := openBlobs(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	embedder := newEmbedder(cfg)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	titler := service.NewTitler(llmClient)
	notebooks := service.NewNotebookService(
		stores.notebooks,
		stores.sources,
		blobs,
		func(src *storage.SourceRecord) (string, bool) { return sources.BlobPath(src, cfg.BlobBucket) },
		titler,
		service.NewSummarizer(llmClient),
	)

	adapters := indexer.Adapters{
		Text:  sources.NewTextAdapter(titler, textproc.DefaultMaxLength),
		Links: sources.NewLinkAdapter(newFetcher(cfg), textproc.DefaultMaxLength),
		Files: sources.NewFileAdapter(blobs, extract.Extractor{}),
	}
	pipeline := indexer.NewPipeline(
		stores.notebooks,
		stores.sources,
		stores.chunks,
		embedder,
		adapters,
		notebooks,
		indexer.Options{
			Concurrency:     cfg.IngestConcurrency,
			PostStepTimeout: cfg.SummaryTimeout,
		},
	)

	return &App{
		Config:    cfg,
		DB:        db,
		Blobs:     blobs,
		Notebooks: notebooks,
		Pipeline:  pipeline,
		Engine:    rag.NewEngine(embedder, stores.chunks),
		Health:    handlers.NewHealthHandler(db, handlers.PingFunc(blobs.Ping)),
	}, nil
}

// Close waits for background notebook refreshes, then releases the database.
func (a *App) Close() error {
	a.Pipeline.Wait()
	return a.DB.Close()
}

type stores struct {
	notebooks storage.NotebookStore
	sources   storage.SourceStore
	chunks    storage.ChunkStore
}

func openStores(ctx context.Context, cfg *config.Config) (*sql.DB, stores, error) {
	logger := slog.Default()

	if cfg.DBDriver == "postgres" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, stores{}, fmt.Errorf("failed to open database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, stores{}, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.InfoContext(ctx, "Database initialized", "driver", "postgres")
		return db, stores{
			notebooks: postgres.NewNotebookRepo(db),
			sources:   postgres.NewSourceRepo(db, cfg.EmbeddingDimensions),
			chunks:    postgres.NewChunkRepo(db),
		}, nil
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, stores{}, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, stores{}, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "Database initialized", "driver", "sqlite", "path", cfg.DBPath)
	return db, stores{
		notebooks: storage.NewNotebookRepo(db),
		sources:   storage.NewSourceRepo(db, cfg.EmbeddingDimensions),
		chunks:    storage.NewChunkRepo(db),
	}, nil
}

// openBlobs uses object storage when BLOB_ENDPOINT is set and an in-process
// store otherwise.
func openBlobs(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.BlobEndpoint == "" {
		slog.Default().WarnContext(ctx, "BLOB_ENDPOINT not set, uploaded files are kept in memory")
		return blob.NewMemoryStore(cfg.BlobPublicURL, cfg.BlobBucket), nil
	}

	store, err := blob.NewS3Store(blob.S3Config{
		Endpoint:        cfg.BlobEndpoint,
		AccessKeyID:     cfg.BlobAccessKeyID,
		SecretAccessKey: cfg.BlobSecretAccessKey,
		Bucket:          cfg.BlobBucket,
		Region:          cfg.BlobRegion,
		UseSSL:          cfg.BlobUseSSL,
		PublicURL:       cfg.BlobPublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}
	slog.Default().InfoContext(ctx, "Blob store ready", "endpoint", cfg.BlobEndpoint, "bucket", cfg.BlobBucket)
	return store, nil
}

// embedder is what both the pipeline and the search engine need.
type embedder interface {
	indexer.Embedder
	Configured() bool
}

func newEmbedder(cfg *config.Config) embedder {
	httpClient := func() embedder {
		opts := []llm.EmbeddingsOption{llm.WithBatchSize(cfg.EmbeddingBatchSize)}
		if cfg.EmbeddingRPS > 0 {
			opts = append(opts, llm.WithRateLimit(cfg.EmbeddingRPS, 1))
		}
		return llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions, opts...)
	}

	if cfg.EmbeddingProvider != "langchaingo" || cfg.EmbeddingAPIKey == "" {
		return httpClient()
	}
	lc, err := llm.NewLangchainEmbedder(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions, cfg.EmbeddingBatchSize)
	if err != nil {
		slog.Default().Warn("langchaingo embedder unavailable, using HTTP client", "error", err)
		return httpClient()
	}
	return lc
}

func newFetcher(cfg *config.Config) fetcher.Fetcher {
	var next fetcher.Fetcher
	switch strings.ToLower(cfg.FetcherProvider) {
	case "direct":
		next = fetcher.NewDirectClient()
	default:
		next = fetcher.NewExaClient(cfg.FetcherBaseURL, cfg.FetcherAPIKey)
	}
	return fetcher.NewCachingFetcher(next, cache.NewTTL[string, fetcher.Page](fetchCacheSize, cfg.FetchCacheTTL))
}
