package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notebook_service.go -package=mocks notebook-ai/internal/handlers NotebookService

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/storage"
)

// NotebookService is the notebook and source management the API exposes.
type NotebookService interface {
	Create(ctx context.Context, userID, title string) (*storage.NotebookRecord, error)
	List(ctx context.Context, userID string) ([]*storage.NotebookRecord, error)
	Get(ctx context.Context, userID, notebookID string) (*storage.NotebookRecord, error)
	Delete(ctx context.Context, userID, notebookID string) error
	ListSources(ctx context.Context, userID, notebookID string) ([]*storage.SourceRecord, error)
	SourceIDs(ctx context.Context, userID, notebookID string) ([]string, error)
	DeleteSource(ctx context.Context, userID, notebookID, sourceID string) error
}

// NotebookHandler handles HTTP requests for notebooks.
type NotebookHandler struct {
	notebooks NotebookService
}

// NewNotebookHandler creates a new NotebookHandler.
func NewNotebookHandler(notebooks NotebookService) *NotebookHandler {
	return &NotebookHandler{notebooks: notebooks}
}

// CreateNotebookRequest represents the HTTP request payload for creating a notebook.
//
// swagger:model CreateNotebookRequest
type CreateNotebookRequest struct {
	// Optional; inferred from the first sources when empty.
	Title string `json:"title"`
}

// NotebookResponse represents a notebook in HTTP responses.
//
// swagger:model NotebookResponse
type NotebookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     *string   `json:"summary,omitempty"`
	SourceCount int       `json:"source_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func notebookResponse(nb *storage.NotebookRecord) NotebookResponse {
	return NotebookResponse{
		ID:          nb.ID,
		Title:       nb.Title,
		Summary:     nb.Summary,
		SourceCount: nb.SourceCount,
		CreatedAt:   nb.CreatedAt,
	}
}

// Create handles POST /api/notebooks.
func (h *NotebookHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateNotebookRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	nb, err := h.notebooks.Create(ctx, contextutil.UserIDFromContext(ctx), req.Title)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create notebook")
		return
	}

	writeData(ctx, w, http.StatusCreated, "Notebook created", notebookResponse(nb))
}

// List handles GET /api/notebooks.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notebooks, err := h.notebooks.List(ctx, contextutil.UserIDFromContext(ctx))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list notebooks")
		return
	}

	out := make([]NotebookResponse, len(notebooks))
	for i, nb := range notebooks {
		out[i] = notebookResponse(nb)
	}
	writeData(ctx, w, http.StatusOK, "", out)
}

// Get handles GET /api/notebooks/{id}.
func (h *NotebookHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nb, err := h.notebooks.Get(ctx, contextutil.UserIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get notebook")
		return
	}

	writeData(ctx, w, http.StatusOK, "", notebookResponse(nb))
}

// Delete handles DELETE /api/notebooks/{id}.
func (h *NotebookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.notebooks.Delete(ctx, contextutil.UserIDFromContext(ctx), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete notebook")
		return
	}

	writeData(ctx, w, http.StatusOK, "Notebook deleted", nil)
}
