package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/fetcher"
	"notebook-ai/internal/textproc"
)

// ErrNoValidURLs is returned when no submitted URL survives validation.
var ErrNoValidURLs = errors.New("no valid URLs provided")

// ValidateURLs removes duplicates and malformed entries, keeping the first
// occurrence order. It fails only when nothing is left.
func ValidateURLs(urls []string) ([]string, error) {
	seen := make(map[string]struct{}, len(urls))
	valid := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}

		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		valid = append(valid, raw)
	}
	if len(valid) == 0 {
		return nil, ErrNoValidURLs
	}
	return valid, nil
}

// LinkAdapter adapts web pages through a content fetcher.
type LinkAdapter struct {
	fetcher   fetcher.Fetcher
	maxLength int
}

// NewLinkAdapter creates a new LinkAdapter. maxLength <= 0 selects
// textproc.DefaultMaxLength.
func NewLinkAdapter(f fetcher.Fetcher, maxLength int) *LinkAdapter {
	return &LinkAdapter{fetcher: f, maxLength: maxLength}
}

// Configured reports whether the fetcher has the credentials it needs.
func (a *LinkAdapter) Configured() bool {
	if c, ok := a.fetcher.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

// Adapt fetches rawURL and normalizes its text. ok is false when the page
// yielded no text; the caller skips such URLs without reporting a failure.
func (a *LinkAdapter) Adapt(ctx context.Context, rawURL string) (draft Draft, ok bool, err error) {
	page, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return Draft{}, false, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}

	content := textproc.Normalize(page.Text, a.maxLength)
	if content == "" {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "skipping link with no readable text", "url", rawURL)
		return Draft{}, false, nil
	}

	return Draft{
		Label:   rawURL,
		Title:   strings.TrimSpace(page.Title),
		Content: content,
		Origin:  rawURL,
		Metadata: LinkMetadata{
			URL:                 rawURL,
			Title:               strings.TrimSpace(page.Title),
			ExtractedTextLength: len([]rune(content)),
		},
	}, true, nil
}
