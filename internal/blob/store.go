package blob

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks notebook-ai/internal/blob Store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// Store persists uploaded file bytes.
type Store interface {
	// Put writes data at path and returns the object's public URL.
	Put(ctx context.Context, data []byte, path, contentType string, metadata map[string]string) (string, error)
	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// SourcePath returns the object path for an uploaded source file:
// sources/<notebookID>/<fileID>_<name>.
func SourcePath(notebookID, fileID, name string) string {
	return fmt.Sprintf("sources/%s/%s_%s", notebookID, fileID, safeName(name))
}

// PathFromURL recovers the object path from a public URL produced by Put.
// ok is false when url does not point into bucket.
func PathFromURL(url, bucket string) (string, bool) {
	marker := "/" + bucket + "/"
	i := strings.Index(url, marker)
	if i < 0 {
		return "", false
	}
	return url[i+len(marker):], true
}

func publicURL(base, bucket, objectPath string) string {
	return strings.TrimRight(base, "/") + "/" + path.Join(bucket, objectPath)
}

func safeName(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
