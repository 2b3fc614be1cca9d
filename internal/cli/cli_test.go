package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"notebook-ai/internal/extract"
	handlermocks "notebook-ai/internal/handlers/mocks"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/rag"
	ragmocks "notebook-ai/internal/rag/mocks"
	"notebook-ai/internal/service"
	"notebook-ai/internal/storage"
)

type testServices struct {
	notebooks *handlermocks.MockNotebookService
	ingester  *handlermocks.MockIngester
	engine    *ragmocks.MockEngine
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	ctrl := gomock.NewController(t)
	s := &testServices{
		notebooks: handlermocks.NewMockNotebookService(ctrl),
		ingester:  handlermocks.NewMockIngester(ctrl),
		engine:    ragmocks.NewMockEngine(ctrl),
	}
	notebookService = s.notebooks
	ingester = s.ingester
	engine = s.engine
	t.Cleanup(func() {
		notebookService = nil
		ingester = nil
		engine = nil
		userID = "local"
		outputJSON = false
		searchK = rag.DefaultK
		searchSources = nil
	})
	return s
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := Execute()
	return buf.String(), err
}

func TestNotebookCreate(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().
		Create(gomock.Any(), "alice", "Research").
		Return(&storage.NotebookRecord{ID: "nb-1", UserID: "alice", Title: "Research"}, nil)

	out, err := execute(t, "", "notebook", "create", "--user", "alice", "  Research ")

	require.NoError(t, err)
	assert.Contains(t, out, "Created notebook nb-1")
}

func TestNotebookList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := setupTestServices(t)
		s.notebooks.EXPECT().List(gomock.Any(), "local").Return(nil, nil)

		out, err := execute(t, "", "notebook", "list")

		require.NoError(t, err)
		assert.Contains(t, out, "No notebooks found.")
	})

	t.Run("with notebooks", func(t *testing.T) {
		s := setupTestServices(t)
		s.notebooks.EXPECT().List(gomock.Any(), "local").Return([]*storage.NotebookRecord{
			{ID: "nb-1", Title: "Research", SourceCount: 2},
			{ID: "nb-2"},
		}, nil)

		out, err := execute(t, "", "notebook", "list")

		require.NoError(t, err)
		assert.Contains(t, out, "Research")
		assert.Contains(t, out, "(untitled)")
		assert.Contains(t, out, "2 sources")
	})
}

func TestNotebookSources_ShowsFailure(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().ListSources(gomock.Any(), "local", "nb-1").Return([]*storage.SourceRecord{
		{ID: "src-1", Kind: storage.KindLink, Status: storage.StatusFailed, Title: "Broken", Error: "fetch timed out"},
	}, nil)

	out, err := execute(t, "", "notebook", "sources", "nb-1")

	require.NoError(t, err)
	assert.Contains(t, out, "[link/failed]")
	assert.Contains(t, out, "error: fetch timed out")
}

func TestNotebookDelete(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().Delete(gomock.Any(), "local", "nb-1").Return(service.ErrNotFound)

	_, err := execute(t, "", "notebook", "delete", "nb-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestIngestText(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().Get(gomock.Any(), "local", "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	s.ingester.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req indexer.Request) (*indexer.BatchResult, error) {
			assert.Equal(t, storage.KindText, req.Kind)
			assert.Equal(t, "local", req.UserID)
			assert.Equal(t, "from stdin\n", req.Text)
			return &indexer.BatchResult{Successful: []indexer.ItemResult{
				{Label: "text", SourceID: "src-1", Title: "Notes", Status: storage.StatusEmbedded, Chunks: 1},
			}}, nil
		})

	out, err := execute(t, "from stdin\n", "ingest", "text", "nb-1", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "added src-1")
	assert.Contains(t, out, "(1 chunks)")
}

func TestIngestLinks_NotebookNotFound(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().Get(gomock.Any(), "local", "nb-x").Return(nil, service.ErrNotFound)

	_, err := execute(t, "", "ingest", "links", "nb-x", "https://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestIngestLinks_PrintsWarnings(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().Get(gomock.Any(), "local", "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	s.ingester.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req indexer.Request) (*indexer.BatchResult, error) {
			assert.Equal(t, []string{"https://a.example", "https://b.example"}, req.URLs)
			return &indexer.BatchResult{
				Successful: []indexer.ItemResult{{SourceID: "src-1", Status: storage.StatusEmbedded}},
				Warnings:   []string{"https://b.example: no readable content"},
			}, nil
		})

	out, err := execute(t, "", "ingest", "links", "nb-1", "https://a.example", "https://b.example")

	require.NoError(t, err)
	assert.Contains(t, out, "warning: https://b.example: no readable content")
}

func TestIngestLinks_AllFailed(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().Get(gomock.Any(), "local", "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	batchErr := &indexer.BatchError{Failures: []indexer.ItemFailure{
		{Label: "https://a.example", Message: "timeout", Err: errors.New("timeout")},
	}}
	s.ingester.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(nil, batchErr)

	_, err := execute(t, "", "ingest", "links", "nb-1", "https://a.example")

	var target *indexer.BatchError
	require.ErrorAs(t, err, &target)
	assert.Len(t, target.Failures, 1)
}

func TestIngestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\nbody"), 0o644))

	s := setupTestServices(t)
	s.notebooks.EXPECT().Get(gomock.Any(), "local", "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	s.ingester.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req indexer.Request) (*indexer.BatchResult, error) {
			require.Len(t, req.Files, 1)
			f := req.Files[0]
			assert.Equal(t, "notes.md", f.Name)
			assert.Equal(t, extract.MIMEMarkdown, f.MimeType)
			assert.Equal(t, int64(12), f.Size)
			assert.Equal(t, "# Notes\nbody", string(f.Data))
			return &indexer.BatchResult{}, nil
		})

	_, err := execute(t, "", "ingest", "files", "nb-1", path)

	require.NoError(t, err)
}

func TestIngestFiles_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "ingest", "files", "nb-1", filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}

func TestSearch(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().SourceIDs(gomock.Any(), "local", "nb-1").Return([]string{"a", "b", "c"}, nil)
	s.engine.EXPECT().Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req rag.SearchRequest) ([]rag.RankedChunk, error) {
			assert.Equal(t, "quick fox", req.Query)
			assert.Equal(t, []string{"b"}, req.SourceIDs)
			assert.Equal(t, 3, req.K)
			return []rag.RankedChunk{{
				ChunkID:         "c-1",
				SourceID:        "b",
				Text:            "The quick brown fox",
				Similarity:      0.91,
				SourceTitle:     "Foxes",
				SourceURL:       "https://example.com/fox",
				SourceCreatedAt: time.Now(),
			}}, nil
		})

	out, err := execute(t, "", "search", "nb-1", "quick fox", "-n", "3", "--source", "b", "--source", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Foxes (0.91)")
	assert.Contains(t, out, "Source: https://example.com/fox")
	assert.Contains(t, out, "The quick brown fox")
}

func TestSearch_NoResultsJSON(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().SourceIDs(gomock.Any(), "local", "nb-1").Return(nil, nil)
	s.engine.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]rag.RankedChunk{}, nil)

	out, err := execute(t, "", "search", "nb-1", "anything", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, "[]")
}

func TestSearch_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "search", "nb-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestStats(t *testing.T) {
	s := setupTestServices(t)
	s.notebooks.EXPECT().Get(gomock.Any(), "local", "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	s.ingester.EXPECT().Stats(gomock.Any(), "nb-1").Return(&indexer.CoverageStats{
		Sources:              map[storage.SourceStatus]int{storage.StatusEmbedded: 2},
		SourcesWithoutChunks: 1,
		Chunks:               4,
		ChunkLength:          indexer.ChunkLengthStats{Min: 10, Max: 80, Mean: 40, P95: 80},
		ChunkerVersion:       indexer.ChunkerVersion,
		IndexVersion:         "abcdef0123456789",
	}, nil)

	out, err := execute(t, "", "stats", "nb-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Chunks: 4")
	assert.Contains(t, out, "Sources without chunks: 1")
	assert.Contains(t, out, "p95 80")
	assert.Contains(t, out, "Index version: abcdef0123456789")
}

func TestMigrate(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "migrate")

	require.NoError(t, err)
	assert.Contains(t, out, "up to date")
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		path string
		data []byte
		want string
	}{
		{"paper.PDF", nil, extract.MIMEPDF},
		{"letter.docx", nil, extract.MIMEDocx},
		{"old.doc", nil, extract.MIMEDoc},
		{"readme.markdown", nil, extract.MIMEMarkdown},
		{"notes.txt", nil, extract.MIMEText},
		{"noext", []byte("plain words"), "text/plain"},
		{"image.bin", []byte("\x89PNG\r\n\x1a\n"), "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detectMimeType(tt.path, tt.data))
		})
	}
}

func TestReadFile_OversizeNotRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.pdf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(indexer.MaxFileSize+1))
	require.NoError(t, f.Close())

	got, err := readFile(path)

	require.NoError(t, err)
	assert.Equal(t, int64(indexer.MaxFileSize+1), got.Size)
	assert.Equal(t, extract.MIMEPDF, got.MimeType)
	assert.Nil(t, got.Data)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("a\n\n b", 10))
	assert.Equal(t, "abc…", preview("abcdef", 3))
}
