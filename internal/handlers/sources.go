package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingester.go -package=mocks notebook-ai/internal/handlers Ingester

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
)

// maxIngestBody bounds a source request: five base64-encoded 10 MiB files
// plus envelope.
const maxIngestBody = indexer.MaxBatchItems*indexer.MaxFileSize*4/3 + 1<<20

// Ingester runs source ingestion and reports index coverage.
type Ingester interface {
	Ingest(ctx context.Context, req indexer.Request) (*indexer.BatchResult, error)
	Stats(ctx context.Context, notebookID string) (*indexer.CoverageStats, error)
}

// SourceHandler handles HTTP requests for a notebook's sources.
type SourceHandler struct {
	notebooks NotebookService
	ingester  Ingester
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(notebooks NotebookService, ingester Ingester) *SourceHandler {
	return &SourceHandler{notebooks: notebooks, ingester: ingester}
}

// AddSourcesRequest represents the HTTP request payload for adding sources.
//
// swagger:model AddSourcesRequest
type AddSourcesRequest struct {
	// One of "text", "links", "files".
	Type string         `json:"type"`
	Data AddSourcesData `json:"data"`
}

// AddSourcesData carries the payload for one source type.
type AddSourcesData struct {
	Text  string        `json:"text,omitempty"`
	URLs  []string      `json:"urls,omitempty"`
	Files []FilePayload `json:"files,omitempty"`
}

// FilePayload is an uploaded file with base64-encoded content.
type FilePayload struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// SourceResponse represents a source in HTTP responses.
//
// swagger:model SourceResponse
type SourceResponse struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Kind       storage.SourceKind   `json:"kind"`
	Origin     string               `json:"origin"`
	Status     storage.SourceStatus `json:"status"`
	HasContent bool                 `json:"has_content"`
	Summary    *string              `json:"summary,omitempty"`
	Error      string               `json:"error,omitempty"`
	Metadata   map[string]any       `json:"metadata,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

func sourceResponse(src *storage.SourceRecord) SourceResponse {
	return SourceResponse{
		ID:         src.ID,
		Title:      src.Title,
		Kind:       src.Kind,
		Origin:     src.Origin,
		Status:     src.Status,
		HasContent: src.Content != nil,
		Summary:    src.Summary,
		Error:      src.Error,
		Metadata:   src.Metadata,
		CreatedAt:  src.CreatedAt,
	}
}

var sourceKinds = map[string]storage.SourceKind{
	"text":  storage.KindText,
	"links": storage.KindLink,
	"files": storage.KindFile,
}

// Add handles POST /api/notebooks/{id}/sources.
func (h *SourceHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID := contextutil.UserIDFromContext(ctx)
	notebookID := chi.URLParam(r, "id")

	var req AddSourcesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody)).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, ok := sourceKinds[req.Type]
	if !ok {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown source type %q", req.Type))
		return
	}

	files, err := decodeFiles(req.Data.Files)
	if err != nil {
		logger.WarnContext(ctx, "invalid file payload", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.notebooks.Get(ctx, userID, notebookID); err != nil {
		handleServiceError(w, ctx, err, "Failed to get notebook")
		return
	}

	res, err := h.ingester.Ingest(ctx, indexer.Request{
		NotebookID: notebookID,
		UserID:     userID,
		Kind:       kind,
		Text:       req.Data.Text,
		URLs:       req.Data.URLs,
		Files:      files,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to add sources")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, Response{
		Success:  true,
		Message:  addedMessage(len(res.Successful)),
		Data:     res,
		Warnings: res.Warnings,
	})
}

func addedMessage(n int) string {
	if n == 1 {
		return "Added 1 source"
	}
	return fmt.Sprintf("Added %d sources", n)
}

func decodeFiles(payloads []FilePayload) ([]sources.File, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	files := make([]sources.File, 0, len(payloads))
	for _, p := range payloads {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, fmt.Errorf("file %s is not valid base64", p.Name)
		}
		files = append(files, sources.File{
			Name:     p.Name,
			Size:     p.Size,
			MimeType: p.Type,
			Data:     data,
		})
	}
	return files, nil
}

// List handles GET /api/notebooks/{id}/sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	srcs, err := h.notebooks.ListSources(ctx, contextutil.UserIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list sources")
		return
	}

	out := make([]SourceResponse, len(srcs))
	for i, src := range srcs {
		out[i] = sourceResponse(src)
	}
	writeData(ctx, w, http.StatusOK, "", out)
}

// Delete handles DELETE /api/notebooks/{id}/sources/{sourceID}.
func (h *SourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.notebooks.DeleteSource(ctx, contextutil.UserIDFromContext(ctx), chi.URLParam(r, "id"), chi.URLParam(r, "sourceID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to delete source")
		return
	}

	writeData(ctx, w, http.StatusOK, "Source deleted", nil)
}

// Stats handles GET /api/notebooks/{id}/stats.
func (h *SourceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notebookID := chi.URLParam(r, "id")

	if _, err := h.notebooks.Get(ctx, contextutil.UserIDFromContext(ctx), notebookID); err != nil {
		handleServiceError(w, ctx, err, "Failed to get notebook")
		return
	}

	stats, err := h.ingester.Stats(ctx, notebookID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to compute stats")
		return
	}
	writeData(ctx, w, http.StatusOK, "", stats)
}
