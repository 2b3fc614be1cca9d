package blob

import (
	"context"
	"sync"
)

// Object is a stored blob held by MemoryStore.
type Object struct {
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// MemoryStore is an in-process Store for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
	bucket  string
}

// NewMemoryStore creates an empty MemoryStore whose URLs look like
// <baseURL>/<bucket>/<path>.
func NewMemoryStore(baseURL, bucket string) *MemoryStore {
	if baseURL == "" {
		baseURL = "memory://local"
	}
	if bucket == "" {
		bucket = "sources"
	}
	return &MemoryStore{
		objects: make(map[string]Object),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

// Bucket returns the bucket name used in generated URLs.
func (m *MemoryStore) Bucket() string {
	return m.bucket
}

func (m *MemoryStore) Put(ctx context.Context, data []byte, path, contentType string, metadata map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[path] = Object{Data: buf, ContentType: contentType, Metadata: metadata}
	m.mu.Unlock()

	return publicURL(m.baseURL, m.bucket, path), nil
}

func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	delete(m.objects, path)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Get returns the object stored at path.
func (m *MemoryStore) Get(path string) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[path]
	if !ok {
		return Object{}, ErrNotFound
	}
	return obj, nil
}

// Len reports the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
