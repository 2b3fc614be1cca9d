package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"notebook-ai/internal/handlers/mocks"
	"notebook-ai/internal/service"
	"notebook-ai/internal/storage"
)

func TestNotebookHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(m *mocks.MockNotebookService)
		wantStatus int
	}{
		{
			name: "with title",
			body: CreateNotebookRequest{Title: "Research"},
			mockSetup: func(m *mocks.MockNotebookService) {
				m.EXPECT().Create(gomock.Any(), "user-1", "Research").
					Return(&storage.NotebookRecord{ID: "nb-1", UserID: "user-1", Title: "Research"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "empty body",
			mockSetup: func(m *mocks.MockNotebookService) {
				m.EXPECT().Create(gomock.Any(), "user-1", "").
					Return(&storage.NotebookRecord{ID: "nb-1", UserID: "user-1"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid JSON body",
			body:       "{not json",
			mockSetup:  func(m *mocks.MockNotebookService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: CreateNotebookRequest{Title: "Research"},
			mockSetup: func(m *mocks.MockNotebookService) {
				m.EXPECT().Create(gomock.Any(), "user-1", "Research").Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockNotebookService(ctrl)
			tt.mockSetup(svc)

			h := NewNotebookHandler(svc)
			w := serve(http.MethodPost, "/api/notebooks", "/api/notebooks", h.Create, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestNotebookHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockNotebookService(ctrl)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.EXPECT().List(gomock.Any(), "user-1").Return([]*storage.NotebookRecord{
		{ID: "nb-2", Title: "Second", SourceCount: 3, CreatedAt: created},
		{ID: "nb-1", Title: "First", CreatedAt: created},
	}, nil)

	h := NewNotebookHandler(svc)
	w := serve(http.MethodGet, "/api/notebooks", "/api/notebooks", h.List, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeResponse(t, w)
	items, ok := resp.Data.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("Data = %#v, want 2 notebooks", resp.Data)
	}
	first := items[0].(map[string]any)
	if first["id"] != "nb-2" || first["source_count"] != float64(3) {
		t.Errorf("first notebook = %v", first)
	}
}

func TestNotebookHandler_GetAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockNotebookService(ctrl)

	svc.EXPECT().Get(gomock.Any(), "user-1", "nb-1").Return(&storage.NotebookRecord{ID: "nb-1"}, nil)
	svc.EXPECT().Get(gomock.Any(), "user-1", "other").Return(nil, service.ErrNotFound)
	svc.EXPECT().Delete(gomock.Any(), "user-1", "nb-1").Return(nil)

	h := NewNotebookHandler(svc)

	if w := serve(http.MethodGet, "/api/notebooks/{id}", "/api/notebooks/nb-1", h.Get, nil); w.Code != http.StatusOK {
		t.Errorf("Get status = %d, want %d", w.Code, http.StatusOK)
	}
	if w := serve(http.MethodGet, "/api/notebooks/{id}", "/api/notebooks/other", h.Get, nil); w.Code != http.StatusNotFound {
		t.Errorf("Get other status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if w := serve(http.MethodDelete, "/api/notebooks/{id}", "/api/notebooks/nb-1", h.Delete, nil); w.Code != http.StatusOK {
		t.Errorf("Delete status = %d, want %d", w.Code, http.StatusOK)
	}
}
