package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"notebook-ai/internal/handlers/mocks"
	"notebook-ai/internal/rag"
	ragmocks "notebook-ai/internal/rag/mocks"
	"notebook-ai/internal/service"
)

const searchPattern = "/api/notebooks/{id}/search"

func TestIntersect(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		owned     []string
		want      []string
	}{
		{"all owned", []string{"b", "a"}, []string{"a", "b", "c"}, []string{"b", "a"}},
		{"foreign dropped", []string{"a", "x"}, []string{"a"}, []string{"a"}},
		{"none owned", []string{"x"}, []string{"a"}, []string{}},
		{"empty request", []string{}, []string{"a"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := intersect(tt.requested, tt.owned); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("intersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(svc *mocks.MockNotebookService, engine *ragmocks.MockEngine)
		wantStatus int
	}{
		{
			name: "defaults to every source",
			body: SearchRequest{Query: "fox"},
			mockSetup: func(svc *mocks.MockNotebookService, engine *ragmocks.MockEngine) {
				svc.EXPECT().SourceIDs(gomock.Any(), "user-1", "nb-1").Return([]string{"s1", "s2"}, nil)
				engine.EXPECT().Search(gomock.Any(), rag.SearchRequest{Query: "fox", SourceIDs: []string{"s1", "s2"}}).
					Return([]rag.RankedChunk{{ChunkID: "c1", SourceID: "s1", Text: "quick fox"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "restricted to owned sources",
			body: SearchRequest{Query: "fox", SourceIDs: []string{"s2", "foreign"}, K: 3},
			mockSetup: func(svc *mocks.MockNotebookService, engine *ragmocks.MockEngine) {
				svc.EXPECT().SourceIDs(gomock.Any(), "user-1", "nb-1").Return([]string{"s1", "s2"}, nil)
				engine.EXPECT().Search(gomock.Any(), rag.SearchRequest{Query: "fox", SourceIDs: []string{"s2"}, K: 3}).
					Return([]rag.RankedChunk{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown notebook",
			body: SearchRequest{Query: "fox"},
			mockSetup: func(svc *mocks.MockNotebookService, engine *ragmocks.MockEngine) {
				svc.EXPECT().SourceIDs(gomock.Any(), "user-1", "nb-1").Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "empty query",
			body: SearchRequest{},
			mockSetup: func(svc *mocks.MockNotebookService, engine *ragmocks.MockEngine) {
				svc.EXPECT().SourceIDs(gomock.Any(), "user-1", "nb-1").Return([]string{"s1"}, nil)
				engine.EXPECT().Search(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "query", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON body",
			body:       "nope",
			mockSetup:  func(svc *mocks.MockNotebookService, engine *ragmocks.MockEngine) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockNotebookService(ctrl)
			engine := ragmocks.NewMockEngine(ctrl)
			tt.mockSetup(svc, engine)

			h := NewSearchHandler(svc, engine)
			w := serve(http.MethodPost, searchPattern, "/api/notebooks/nb-1/search", h.ServeHTTP, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
