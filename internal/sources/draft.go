package sources

import (
	"notebook-ai/internal/storage"
)

// OriginUserInput is the origin recorded for pasted text.
const OriginUserInput = "user_input"

// Draft is one adapted source before it is chunked and stored.
type Draft struct {
	// Label names the submitted item in batch results: a URL, a file name,
	// or "text".
	Label    string
	Title    string
	Content  string // Normalized; empty when nothing could be extracted
	Origin   string
	Metadata Metadata
}

// Kind returns the source kind carried by the metadata.
func (d Draft) Kind() storage.SourceKind {
	return d.Metadata.Kind()
}

// Record builds the storage record for the draft. The ID is left for the
// store to assign.
func (d Draft) Record(notebookID, userID string) *storage.SourceRecord {
	rec := &storage.SourceRecord{
		NotebookID: notebookID,
		UserID:     userID,
		Title:      d.Title,
		Kind:       d.Kind(),
		Origin:     d.Origin,
		Metadata:   d.Metadata.ToMap(),
	}
	if d.Content != "" {
		content := d.Content
		rec.Content = &content
	}
	return rec
}
