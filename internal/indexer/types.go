package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks notebook-ai/internal/indexer Embedder

import (
	"context"
	"fmt"
	"strings"

	"notebook-ai/internal/sources"
	"notebook-ai/internal/storage"
)

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// ModelName identifies the model stored with each vector.
	ModelName() string
}

// Request is one ingestion call: a single text, or a batch of links or files.
type Request struct {
	NotebookID string
	UserID     string
	Kind       storage.SourceKind
	Text       string
	URLs       []string
	Files      []sources.File
}

// ItemResult describes one source that was stored.
type ItemResult struct {
	Label    string               `json:"label"`
	SourceID string               `json:"source_id"`
	Title    string               `json:"title"`
	Status   storage.SourceStatus `json:"status"`
	Chunks   int                  `json:"chunks"`
}

// ItemFailure describes one item that could not be ingested. SourceID is set
// when a failed source row was recorded.
type ItemFailure struct {
	Label    string `json:"label"`
	SourceID string `json:"source_id,omitempty"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

// Message is the failure text shown to the user.
func newItemFailure(label, sourceID string, err error) *ItemFailure {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &ItemFailure{Label: label, SourceID: sourceID, Message: msg, Err: err}
}

// BatchResult aggregates the items of one ingestion call. Partial success is
// a normal outcome: Warnings name every item that failed or was skipped.
type BatchResult struct {
	Successful []ItemResult  `json:"successful"`
	Failed     []ItemFailure `json:"failed"`
	Skipped    []string      `json:"skipped,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// BatchError is returned when every item of a batch failed.
type BatchError struct {
	Failures []ItemFailure
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 1 {
		f := e.Failures[0]
		return fmt.Sprintf("failed to process %s: %s", f.Label, f.Message)
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %s", f.Label, f.Message)
	}
	return fmt.Sprintf("all %d items failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the per-item errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}
