package storage

import (
	"context"
	"testing"
	"time"
)

func TestChunkRepo_Search(t *testing.T) {
	db := newTestDB(t)
	nb := createNotebook(t, NewNotebookRepo(db))
	sources := NewSourceRepo(db, 2)
	repo := NewChunkRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := textSource(nb.ID)
	a.Title = "A"
	a.CreatedAt = base
	if err := sources.SaveEmbedded(ctx, a, []*ChunkRecord{
		{Text: "east", Position: 0, Vector: []float32{1, 0}, Model: "m"},
		{Text: "north", Position: 1, Vector: []float32{0, 1}, Model: "m"},
	}); err != nil {
		t.Fatalf("SaveEmbedded(a) error = %v", err)
	}

	b := textSource(nb.ID)
	b.Title = "B"
	b.CreatedAt = base.Add(time.Minute)
	if err := sources.SaveEmbedded(ctx, b, []*ChunkRecord{
		{Text: "northeast", Position: 0, Vector: []float32{0.7071, 0.7071}, Model: "m"},
	}); err != nil {
		t.Fatalf("SaveEmbedded(b) error = %v", err)
	}

	// A failed source is never a candidate even if its ID is passed in.
	failed := textSource(nb.ID)
	if err := sources.SaveFailed(ctx, failed, "boom"); err != nil {
		t.Fatalf("SaveFailed() error = %v", err)
	}

	tests := []struct {
		name      string
		sourceIDs []string
		k         int
		wantTexts []string
	}{
		{
			name:      "all sources ranked",
			sourceIDs: []string{a.ID, b.ID, failed.ID},
			k:         5,
			wantTexts: []string{"east", "northeast", "north"},
		},
		{
			name:      "k limits results",
			sourceIDs: []string{a.ID, b.ID},
			k:         1,
			wantTexts: []string{"east"},
		},
		{
			name:      "restricted to one source",
			sourceIDs: []string{b.ID},
			k:         5,
			wantTexts: []string{"northeast"},
		},
		{
			name:      "no candidates",
			sourceIDs: nil,
			k:         5,
			wantTexts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.Search(ctx, []float32{1, 0}, tt.sourceIDs, tt.k)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(results) != len(tt.wantTexts) {
				t.Fatalf("Search() returned %d results, want %d", len(results), len(tt.wantTexts))
			}
			for i, want := range tt.wantTexts {
				if results[i].Chunk.Text != want {
					t.Errorf("result %d = %q, want %q", i, results[i].Chunk.Text, want)
				}
				if i > 0 && results[i].Distance < results[i-1].Distance {
					t.Errorf("results not in ascending distance order at %d", i)
				}
			}
		})
	}

	results, _ := repo.Search(ctx, []float32{1, 0}, []string{a.ID}, 1)
	if results[0].SourceTitle != "A" || results[0].SourceOrigin != "user_input" {
		t.Errorf("source fields = %q %q", results[0].SourceTitle, results[0].SourceOrigin)
	}
	if !results[0].SourceCreatedAt.Equal(base) {
		t.Errorf("SourceCreatedAt = %v, want %v", results[0].SourceCreatedAt, base)
	}
	if results[0].Distance > 1e-6 {
		t.Errorf("Distance = %v, want 0", results[0].Distance)
	}
}

func TestChunkRepo_ListTextsByNotebook(t *testing.T) {
	db := newTestDB(t)
	nb := createNotebook(t, NewNotebookRepo(db))
	sources := NewSourceRepo(db, 2)
	repo := NewChunkRepo(db)
	ctx := context.Background()

	if err := sources.SaveEmbedded(ctx, textSource(nb.ID), []*ChunkRecord{
		{Text: "one", Position: 0, Vector: []float32{1, 0}, Model: "m"},
		{Text: "two", Position: 1, Vector: []float32{0, 1}, Model: "m"},
	}); err != nil {
		t.Fatalf("SaveEmbedded() error = %v", err)
	}

	texts, err := repo.ListTextsByNotebook(ctx, nb.ID)
	if err != nil {
		t.Fatalf("ListTextsByNotebook() error = %v", err)
	}
	if len(texts) != 2 || texts[0] != "one" || texts[1] != "two" {
		t.Errorf("ListTextsByNotebook() = %v, want [one two]", texts)
	}

	empty, err := repo.ListTextsByNotebook(ctx, "other")
	if err != nil {
		t.Fatalf("ListTextsByNotebook() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListTextsByNotebook(other) = %v, want empty", empty)
	}
}
