package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/indexer"
	"notebook-ai/internal/service"
	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
)

// Response is the envelope every API endpoint returns.
//
// swagger:model Response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	// Warnings name batch items that failed or were skipped.
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
	// RequiresSetup is set when a provider needs credentials before the
	// request can run.
	RequiresSetup bool `json:"requires_setup,omitempty"`
}

// writeJSON writes resp with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeData writes a successful response.
func writeData(ctx context.Context, w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(ctx, w, statusCode, Response{Success: true, Message: message, Data: data})
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Response{Error: message})
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var setupErr *service.NeedsSetupError
	if errors.As(err, &setupErr) {
		logger.WarnContext(ctx, "request needs setup", "missing", setupErr.Missing)
		writeJSON(ctx, w, http.StatusBadRequest, Response{Error: setupErr.Error(), RequiresSetup: true})
		return
	}

	var batchErr *indexer.BatchError
	if errors.As(err, &batchErr) {
		logger.ErrorContext(ctx, "every item in the batch failed", "error", err)
		WriteError(w, http.StatusBadGateway, batchErr.Error())
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	if errors.Is(err, sources.ErrNoValidURLs) {
		WriteError(w, http.StatusBadRequest, "No valid URLs provided")
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		WriteError(w, http.StatusBadGateway, "External service error")
		return
	}

	WriteError(w, http.StatusInternalServerError, defaultMsg)
}
