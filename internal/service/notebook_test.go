package service_test

import (
	"context"
	"errors"
	"testing"

	blobmocks "notebook-ai/internal/blob/mocks"
	"notebook-ai/internal/service"
	"notebook-ai/internal/service/mocks"
	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
	storagemocks "notebook-ai/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

type notebookFixture struct {
	notebooks *storagemocks.MockNotebookStore
	sources   *storagemocks.MockSourceStore
	blobs     *blobmocks.MockStore
	llm       *mocks.MockLLMClient
	svc       *service.NotebookService
}

func newNotebookFixture(t *testing.T) *notebookFixture {
	ctrl := gomock.NewController(t)
	f := &notebookFixture{
		notebooks: storagemocks.NewMockNotebookStore(ctrl),
		sources:   storagemocks.NewMockSourceStore(ctrl),
		blobs:     blobmocks.NewMockStore(ctrl),
		llm:       mocks.NewMockLLMClient(ctrl),
	}
	blobPath := func(src *storage.SourceRecord) (string, bool) { return sources.BlobPath(src, "sources") }
	f.svc = service.NewNotebookService(f.notebooks, f.sources, f.blobs, blobPath,
		service.NewTitler(f.llm), service.NewSummarizer(f.llm))
	return f
}

func strPtr(s string) *string { return &s }

func TestNotebookService_Create(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		title     string
		mockSetup func(f *notebookFixture)
		wantErr   error
	}{
		{
			name:   "valid",
			userID: "user-1",
			title:  "  Research  ",
			mockSetup: func(f *notebookFixture) {
				f.notebooks.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, nb *storage.NotebookRecord) error {
						if nb.Title != "Research" || nb.UserID != "user-1" {
							t.Errorf("Create() got %+v", nb)
						}
						nb.ID = "nb-1"
						return nil
					})
			},
		},
		{
			name:      "missing user",
			userID:    "",
			mockSetup: func(f *notebookFixture) {},
			wantErr:   service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newNotebookFixture(t)
			tt.mockSetup(f)

			nb, err := f.svc.Create(testContext(), tt.userID, tt.title)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if nb.ID != "nb-1" {
				t.Errorf("Create() ID = %q", nb.ID)
			}
		})
	}
}

func TestNotebookService_Get_NotOwned(t *testing.T) {
	f := newNotebookFixture(t)
	f.notebooks.EXPECT().GetForUser(gomock.Any(), "nb-1", "intruder").Return(nil, storage.ErrNotFound)

	_, err := f.svc.Get(testContext(), "intruder", "nb-1")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestNotebookService_Delete_RemovesUploadedFiles(t *testing.T) {
	f := newNotebookFixture(t)

	f.notebooks.EXPECT().GetForUser(gomock.Any(), "nb-1", "user-1").
		Return(&storage.NotebookRecord{ID: "nb-1", UserID: "user-1"}, nil)
	f.sources.EXPECT().ListByNotebook(gomock.Any(), "nb-1").Return([]*storage.SourceRecord{
		{ID: "s1", Kind: storage.KindFile, Origin: "https://cdn.example.com/sources/sources/nb-1/f1_a.pdf"},
		{ID: "s2", Kind: storage.KindLink, Origin: "https://example.com"},
		{ID: "s3", Kind: storage.KindFile, Origin: "https://cdn.example.com/sources/sources/nb-1/f2_b.pdf"},
		// The recorded path is used even when the URL does not map to it.
		{ID: "s4", Kind: storage.KindFile, Origin: "https://files.example.net/f3_c.pdf",
			Metadata: map[string]any{"blobPath": "sources/nb-1/f3_c.pdf"}},
	}, nil)
	f.notebooks.EXPECT().Delete(gomock.Any(), "nb-1").Return(nil)
	f.blobs.EXPECT().Delete(gomock.Any(), "sources/nb-1/f1_a.pdf").Return(nil)
	f.blobs.EXPECT().Delete(gomock.Any(), "sources/nb-1/f3_c.pdf").Return(nil)
	// A blob failure is logged, not returned.
	f.blobs.EXPECT().Delete(gomock.Any(), "sources/nb-1/f2_b.pdf").Return(errors.New("unreachable"))

	if err := f.svc.Delete(testContext(), "user-1", "nb-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestNotebookService_DeleteSource_WrongNotebook(t *testing.T) {
	f := newNotebookFixture(t)

	f.notebooks.EXPECT().GetForUser(gomock.Any(), "nb-1", "user-1").
		Return(&storage.NotebookRecord{ID: "nb-1", UserID: "user-1"}, nil)
	f.sources.EXPECT().Get(gomock.Any(), "s1").
		Return(&storage.SourceRecord{ID: "s1", NotebookID: "nb-2"}, nil)

	err := f.svc.DeleteSource(testContext(), "user-1", "nb-1", "s1")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("DeleteSource() error = %v, want ErrNotFound", err)
	}
}

func TestNotebookService_RefreshNotebook(t *testing.T) {
	f := newNotebookFixture(t)

	f.notebooks.EXPECT().Get(gomock.Any(), "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	f.sources.EXPECT().ListByNotebook(gomock.Any(), "nb-1").Return([]*storage.SourceRecord{
		{ID: "empty", Status: storage.StatusFetched},
		{ID: "s1", Status: storage.StatusEmbedded, Content: strPtr("Foxes are clever.")},
		{ID: "s2", Status: storage.StatusEmbedded, Content: strPtr("Dogs are loyal."), Summary: strPtr("About dogs.")},
		{ID: "bad", Status: storage.StatusFailed, Content: strPtr("ignored")},
	}, nil)

	f.llm.EXPECT().Configured().Return(true).AnyTimes()
	gomock.InOrder(
		f.llm.EXPECT().Complete(gomock.Any(), gomock.Any(), "Foxes are clever.", gomock.Any()).Return("Clever Animals", nil),
		f.notebooks.EXPECT().SetTitleIfEmpty(gomock.Any(), "nb-1", "Clever Animals").Return(true, nil),
		f.llm.EXPECT().Complete(gomock.Any(), gomock.Any(), "Foxes are clever.", gomock.Any()).Return("About foxes.", nil),
		f.sources.EXPECT().UpdateSummary(gomock.Any(), "s1", "About foxes.").Return(nil),
		f.llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("Animals.", nil),
		f.notebooks.EXPECT().UpdateSummary(gomock.Any(), "nb-1", "Animals.").Return(nil),
	)

	res, err := f.svc.RefreshNotebook(testContext(), "nb-1")
	if err != nil {
		t.Fatalf("RefreshNotebook() error = %v", err)
	}
	if !res.Title.OK() || res.Title.Value != "Clever Animals" {
		t.Errorf("Title = %+v", res.Title)
	}
	if res.SourceSummaries != 1 {
		t.Errorf("SourceSummaries = %d, want 1", res.SourceSummaries)
	}
	if !res.Summary.OK() || res.Summary.Value != "Animals." {
		t.Errorf("Summary = %+v", res.Summary)
	}
}

func TestNotebookService_SetTitleFrom_LostRace(t *testing.T) {
	f := newNotebookFixture(t)

	f.llm.EXPECT().Configured().Return(true)
	f.llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("Late Title", nil)
	f.notebooks.EXPECT().SetTitleIfEmpty(gomock.Any(), "nb-1", "Late Title").Return(false, nil)

	got := f.svc.SetTitleFrom(testContext(), "nb-1", "content")
	if got.OK() {
		t.Error("SetTitleFrom() should be skipped when another writer set the title first")
	}
}
