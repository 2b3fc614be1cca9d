package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePath(t *testing.T) {
	assert.Equal(t, "sources/nb-1/f-1_report.pdf", SourcePath("nb-1", "f-1", "report.pdf"))
	assert.Equal(t, "sources/nb-1/f-1_.._etc_passwd", SourcePath("nb-1", "f-1", "../etc/passwd"))
	assert.Equal(t, "sources/nb-1/f-1_file", SourcePath("nb-1", "f-1", "  "))
}

func TestPathFromURL(t *testing.T) {
	p, ok := PathFromURL("https://cdn.example.com/uploads/sources/nb/f_a.txt", "uploads")
	require.True(t, ok)
	assert.Equal(t, "sources/nb/f_a.txt", p)

	_, ok = PathFromURL("https://example.com/other/a.txt", "uploads")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("https://files.test", "uploads")

	url, err := store.Put(ctx, []byte("hello"), "sources/nb/f_a.txt", "text/plain", map[string]string{"fileId": "f"})
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/uploads/sources/nb/f_a.txt", url)

	obj, err := store.Get("sources/nb/f_a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), obj.Data)
	assert.Equal(t, "text/plain", obj.ContentType)
	assert.Equal(t, "f", obj.Metadata["fileId"])

	path, ok := PathFromURL(url, store.Bucket())
	require.True(t, ok)
	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Get(path)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Delete(ctx, "missing"))
}

func TestNewS3Store_Validation(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.Error(t, err)

	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", Bucket: "b"})
	assert.Error(t, err)

	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKeyID: "a", SecretAccessKey: "s"})
	assert.Error(t, err)
}

func TestS3Store_PutDelete(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []*http.Request
		bodies   []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, r)
		bodies = append(bodies, string(body))
		mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	store, err := NewS3Store(S3Config{
		Endpoint:        server.URL,
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
		Bucket:          "uploads",
		Region:          "us-east-1",
		PublicURL:       "https://cdn.example.com",
	})
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Put(ctx, []byte("file body"), "sources/nb/f_a.txt", "text/plain", map[string]string{"notebookId": "nb"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/sources/nb/f_a.txt", url)

	require.NoError(t, store.Delete(ctx, "sources/nb/f_a.txt"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, "/uploads/sources/nb/f_a.txt", requests[0].URL.Path)
	assert.Equal(t, "text/plain", requests[0].Header.Get("Content-Type"))
	assert.Equal(t, "nb", requests[0].Header.Get("X-Amz-Meta-Notebookid"))
	assert.Contains(t, bodies[0], "file body")
	assert.Equal(t, http.MethodDelete, requests[1].Method)
}
