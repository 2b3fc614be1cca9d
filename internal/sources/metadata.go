// Package sources turns user-submitted text, links and files into source
// drafts ready for chunking and embedding.
package sources

import (
	"fmt"

	"notebook-ai/internal/blob"
	"notebook-ai/internal/storage"
)

// Metadata is the kind-specific provenance of a source. The concrete type is
// one of TextMetadata, LinkMetadata or FileMetadata; switch on it rather than
// reading the persisted map.
type Metadata interface {
	Kind() storage.SourceKind
	// ToMap converts the metadata to the open map persisted with the source.
	ToMap() map[string]any
	sealed()
}

// TextMetadata describes pasted text.
type TextMetadata struct {
	InputMethod string
	TextLength  int
}

// LinkMetadata describes a fetched web page.
type LinkMetadata struct {
	URL                 string
	Title               string
	ExtractedTextLength int
}

// FileMetadata describes an uploaded file.
type FileMetadata struct {
	FileName       string
	FileSize       int64
	MimeType       string
	HasTextContent bool
	BlobPath       string
}

func (TextMetadata) Kind() storage.SourceKind { return storage.KindText }
func (LinkMetadata) Kind() storage.SourceKind { return storage.KindLink }
func (FileMetadata) Kind() storage.SourceKind { return storage.KindFile }

func (TextMetadata) sealed() {}
func (LinkMetadata) sealed() {}
func (FileMetadata) sealed() {}

func (m TextMetadata) ToMap() map[string]any {
	return map[string]any{
		"inputMethod": m.InputMethod,
		"textLength":  m.TextLength,
	}
}

func (m LinkMetadata) ToMap() map[string]any {
	return map[string]any{
		"url":                 m.URL,
		"title":               m.Title,
		"extractedTextLength": m.ExtractedTextLength,
	}
}

func (m FileMetadata) ToMap() map[string]any {
	out := map[string]any{
		"fileName":       m.FileName,
		"fileSize":       m.FileSize,
		"mimeType":       m.MimeType,
		"hasTextContent": m.HasTextContent,
	}
	if m.BlobPath != "" {
		out["blobPath"] = m.BlobPath
	}
	return out
}

// ParseMetadata reads a persisted metadata map back into its typed form.
// Missing or mistyped keys leave the zero value.
func ParseMetadata(kind storage.SourceKind, m map[string]any) (Metadata, error) {
	switch kind {
	case storage.KindText:
		return TextMetadata{
			InputMethod: stringOf(m, "inputMethod"),
			TextLength:  int(intOf(m, "textLength")),
		}, nil
	case storage.KindLink:
		return LinkMetadata{
			URL:                 stringOf(m, "url"),
			Title:               stringOf(m, "title"),
			ExtractedTextLength: int(intOf(m, "extractedTextLength")),
		}, nil
	case storage.KindFile:
		has, _ := m["hasTextContent"].(bool)
		return FileMetadata{
			FileName:       stringOf(m, "fileName"),
			FileSize:       intOf(m, "fileSize"),
			MimeType:       stringOf(m, "mimeType"),
			HasTextContent: has,
			BlobPath:       stringOf(m, "blobPath"),
		}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

func stringOf(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intOf accepts the numeric types produced by Go code and by JSON decoding.
func intOf(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// BlobPath returns the blob path of an uploaded file source. The path
// recorded in the metadata wins; older rows fall back to parsing the public
// URL against bucket. Non-file sources report false.
func BlobPath(src *storage.SourceRecord, bucket string) (string, bool) {
	if src == nil || src.Kind != storage.KindFile {
		return "", false
	}
	md, err := ParseMetadata(src.Kind, src.Metadata)
	if err == nil {
		if fm, ok := md.(FileMetadata); ok && fm.BlobPath != "" {
			return fm.BlobPath, true
		}
	}
	return blob.PathFromURL(src.Origin, bucket)
}
