package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxPageBytes = 5 << 20

// DirectClient downloads pages itself and extracts their visible text.
// It needs no API key.
type DirectClient struct {
	UserAgent string
	client    *http.Client
}

// NewDirectClient creates a DirectClient.
func NewDirectClient() *DirectClient {
	return &DirectClient{
		UserAgent: "notebook-ai/1.0",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured is always true; no credentials are involved.
func (c *DirectClient) Configured() bool {
	return true
}

func (c *DirectClient) Fetch(ctx context.Context, url string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("bad status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxPageBytes)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		raw, err := io.ReadAll(body)
		if err != nil {
			return Page{}, fmt.Errorf("failed to read body: %w", err)
		}
		return Page{URL: url, Text: strings.TrimSpace(string(raw))}, nil
	}

	doc, err := html.Parse(body)
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse html: %w", err)
	}

	title, text := readable(doc)
	return Page{URL: url, Title: title, Text: text}, nil
}

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Header:   true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Template: true,
}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Article: true, atom.Section: true, atom.Pre: true, atom.Blockquote: true,
}

// readable walks the parsed document collecting the <title> and the text of
// every element outside boilerplate containers.
func readable(doc *html.Node) (title, text string) {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Title && title == "" && n.FirstChild != nil {
				title = strings.TrimSpace(n.FirstChild.Data)
				return
			}
			if skipped[n.DataAtom] {
				return
			}
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteString(" ")
				}
				b.WriteString(s)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && blocks[n.DataAtom] && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
	walk(doc)
	return title, strings.TrimSpace(b.String())
}
