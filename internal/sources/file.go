package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notebook-ai/internal/blob"
	"notebook-ai/internal/textproc"
)

// File is one uploaded file.
type File struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

// TextExtractor pulls plain text out of file bytes. It returns "" when
// nothing can be extracted and never fails.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) string
}

// FileAdapter stores uploaded files and extracts their text.
type FileAdapter struct {
	blobs     blob.Store
	extractor TextExtractor
	now       func() time.Time
}

// NewFileAdapter creates a new FileAdapter.
func NewFileAdapter(blobs blob.Store, extractor TextExtractor) *FileAdapter {
	return &FileAdapter{blobs: blobs, extractor: extractor, now: time.Now}
}

// Adapt uploads the file under the notebook's namespace, then extracts its
// text. Only the upload can fail; a file with no extractable text still
// produces a draft with empty content.
func (a *FileAdapter) Adapt(ctx context.Context, notebookID string, f File) (Draft, error) {
	fileID := uuid.New().String()
	path := blob.SourcePath(notebookID, fileID, f.Name)

	url, err := a.blobs.Put(ctx, f.Data, path, f.MimeType, map[string]string{
		"originalName": f.Name,
		"uploadedAt":   a.now().UTC().Format(time.RFC3339),
		"notebookId":   notebookID,
		"fileId":       fileID,
	})
	if err != nil {
		return Draft{}, fmt.Errorf("failed to upload file %s: %w", f.Name, err)
	}

	content := a.extractor.Extract(ctx, f.Data, f.MimeType)

	size := f.Size
	if size == 0 {
		size = int64(len(f.Data))
	}

	return Draft{
		Label:   f.Name,
		Title:   textproc.TitleFromFilename(f.Name),
		Content: content,
		Origin:  url,
		Metadata: FileMetadata{
			FileName:       f.Name,
			FileSize:       size,
			MimeType:       f.MimeType,
			HasTextContent: content != "",
			BlobPath:       path,
		},
	}, nil
}
