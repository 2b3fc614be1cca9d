package app

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook-ai/internal/config"
	"notebook-ai/internal/llm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:            "info",
		LogFormat:           "text",
		DBDriver:            "sqlite",
		DBPath:              filepath.Join(t.TempDir(), "app.db"),
		EmbeddingProvider:   "http",
		EmbeddingBaseURL:    "http://localhost:1",
		EmbeddingModel:      "test-embed",
		EmbeddingDimensions: config.RequiredDimensions,
		EmbeddingBatchSize:  10,
		FetcherProvider:     "direct",
		FetchCacheTTL:       time.Minute,
		BlobBucket:          "sources",
		IngestConcurrency:   2,
		SummaryTimeout:      time.Second,
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{LogLevel: "warn", LogFormat: "json"}
	logger := NewLogger(cfg, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&config.Config{LogLevel: "loud", LogFormat: "text"}, &buf)

	logger.Debug("debug line")
	logger.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestOpen_SQLite(t *testing.T) {
	slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ctx := context.Background()

	a, err := Open(ctx, testConfig(t))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.DB.PingContext(ctx))
	require.NoError(t, a.Blobs.Ping(ctx))

	nb, err := a.Notebooks.Create(ctx, "user-1", "Research")
	require.NoError(t, err)

	list, err := a.Notebooks.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, nb.ID, list[0].ID)

	stats, err := a.Pipeline.Stats(ctx, nb.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Chunks)
}

func TestNewEmbedder(t *testing.T) {
	cfg := testConfig(t)

	e := newEmbedder(cfg)
	_, ok := e.(*llm.EmbeddingsClient)
	assert.True(t, ok, "http provider should use the HTTP client")
	assert.False(t, e.Configured())

	cfg.EmbeddingProvider = "langchaingo"
	e = newEmbedder(cfg)
	_, ok = e.(*llm.EmbeddingsClient)
	assert.True(t, ok, "langchaingo without a key should fall back to the HTTP client")

	cfg.EmbeddingAPIKey = "sk-test"
	e = newEmbedder(cfg)
	_, ok = e.(*llm.LangchainEmbedder)
	assert.True(t, ok)
	assert.Equal(t, "test-embed", e.ModelName())
}
