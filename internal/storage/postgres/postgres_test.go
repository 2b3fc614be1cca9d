package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"notebook-ai/internal/storage"
)

// openTestDB connects to the database named by NOTEBOOK_TEST_DATABASE_URL,
// skipping the test when it is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("NOTEBOOK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("NOTEBOOK_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestMigrations_Embedded(t *testing.T) {
	ups, err := fs.Glob(migrations, "migrations/*.up.sql")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	downs, _ := fs.Glob(migrations, "migrations/*.down.sql")
	if len(ups) == 0 || len(ups) != len(downs) {
		t.Fatalf("migrations: %d up, %d down", len(ups), len(downs))
	}

	body, err := fs.ReadFile(migrations, ups[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{"CREATE EXTENSION IF NOT EXISTS vector", "vector(1536)", "ON DELETE CASCADE"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("initial migration missing %q", want)
		}
	}
}

func TestOpen_RequiresURL(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Error("Open(\"\") expected error, got nil")
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   storage.ChunkRecord
		index   int
		wantErr bool
	}{
		{name: "valid", chunk: storage.ChunkRecord{Position: 1, Vector: []float32{1, 2}}, index: 1},
		{name: "position gap", chunk: storage.ChunkRecord{Position: 2, Vector: []float32{1, 2}}, index: 1, wantErr: true},
		{name: "wrong dimensions", chunk: storage.ChunkRecord{Position: 0, Vector: []float32{1}}, index: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateChunk(&tt.chunk, tt.index, 2)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateChunk() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRepos_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	notebooks := NewNotebookRepo(db)
	sources := NewSourceRepo(db, 1536)
	chunks := NewChunkRepo(db)

	nb := &storage.NotebookRecord{UserID: "integration"}
	if err := notebooks.Create(ctx, nb); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	t.Cleanup(func() {
		_ = notebooks.Delete(context.Background(), nb.ID)
	})

	vec := make([]float32, 1536)
	vec[0] = 1
	src := &storage.SourceRecord{NotebookID: nb.ID, UserID: "integration", Title: "t", Kind: storage.KindText, Origin: "user_input"}
	if err := sources.SaveEmbedded(ctx, src, []*storage.ChunkRecord{{Text: "hello", Position: 0, Vector: vec, Model: "m"}}); err != nil {
		t.Fatalf("SaveEmbedded() error = %v", err)
	}

	results, err := chunks.Search(ctx, vec, []string{src.ID}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Chunk.Text != "hello" {
		t.Fatalf("Search() = %+v", results)
	}

	won, err := notebooks.SetTitleIfEmpty(ctx, nb.ID, "first")
	if err != nil || !won {
		t.Fatalf("SetTitleIfEmpty() = %v, %v", won, err)
	}

	if err := notebooks.Delete(ctx, nb.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := sources.Get(ctx, src.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() after notebook delete error = %v, want ErrNotFound", err)
	}
}
