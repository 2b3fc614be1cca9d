package fetcher

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_fetcher.go -package=mocks notebook-ai/internal/fetcher Fetcher

import (
	"context"

	"notebook-ai/internal/cache"
	"notebook-ai/internal/contextutil"
)

// Page is the readable content of a remote document. An empty Text means the
// page could not be read and should be skipped.
type Page struct {
	URL   string
	Title string
	Text  string
}

// Fetcher retrieves the readable text of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// CachingFetcher serves repeated fetches of the same URL from a cache.
// Only pages with text are cached.
type CachingFetcher struct {
	next  Fetcher
	cache cache.Cache[string, Page]
}

// NewCachingFetcher wraps next with c.
func NewCachingFetcher(next Fetcher, c cache.Cache[string, Page]) *CachingFetcher {
	return &CachingFetcher{next: next, cache: c}
}

func (f *CachingFetcher) Fetch(ctx context.Context, url string) (Page, error) {
	if page, ok := f.cache.Get(url); ok {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "fetch cache hit", "url", url)
		return page, nil
	}

	page, err := f.next.Fetch(ctx, url)
	if err != nil {
		return Page{}, err
	}
	if page.Text != "" {
		f.cache.Set(url, page)
	}
	return page, nil
}

// Configured reports whether the wrapped fetcher has credentials. Fetchers
// without a Configured method are assumed ready.
func (f *CachingFetcher) Configured() bool {
	if c, ok := f.next.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

// Invalidate drops url from the cache.
func (f *CachingFetcher) Invalidate(url string) {
	f.cache.Invalidate(url)
}
