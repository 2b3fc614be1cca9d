package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/rag"
)

// SearchHandler handles HTTP requests for semantic search over a notebook.
type SearchHandler struct {
	notebooks NotebookService
	engine    rag.Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(notebooks NotebookService, engine rag.Engine) *SearchHandler {
	return &SearchHandler{notebooks: notebooks, engine: engine}
}

// SearchRequest represents the HTTP request payload for search.
//
// swagger:model SearchRequest
type SearchRequest struct {
	Query string `json:"query"`
	// SourceIDs limits the search. Omitted means every source in the notebook.
	SourceIDs []string `json:"source_ids,omitempty"`
	K         int      `json:"k,omitempty"`
}

// SearchResponse represents the HTTP response payload for search.
//
// swagger:model SearchResponse
type SearchResponse struct {
	Results []rag.RankedChunk `json:"results"`
	// Context is the results rendered for an LLM prompt.
	Context string `json:"context"`
}

// ServeHTTP handles POST /api/notebooks/{id}/search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owned, err := h.notebooks.SourceIDs(ctx, contextutil.UserIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list sources")
		return
	}

	candidates := owned
	if req.SourceIDs != nil {
		candidates = intersect(req.SourceIDs, owned)
	}

	results, err := h.engine.Search(ctx, rag.SearchRequest{
		Query:     req.Query,
		SourceIDs: candidates,
		K:         req.K,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search sources")
		return
	}

	writeData(ctx, w, http.StatusOK, "", SearchResponse{
		Results: results,
		Context: rag.FormatContext(results),
	})
}

// intersect keeps the requested IDs that belong to the notebook, in
// request order.
func intersect(requested, owned []string) []string {
	set := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(requested))
	for _, id := range requested {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
