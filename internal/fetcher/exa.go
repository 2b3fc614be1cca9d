package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ExaClient fetches page contents through the Exa contents API.
type ExaClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewExaClient creates a new Exa contents client.
func NewExaClient(baseURL, apiKey string) *ExaClient {
	if baseURL == "" {
		baseURL = "https://api.exa.ai"
	}
	return &ExaClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is set.
func (c *ExaClient) Configured() bool {
	return c != nil && c.APIKey != ""
}

// ContentsRequest is the request payload for the contents endpoint.
type ContentsRequest struct {
	URLs []string `json:"urls"`
	Text bool     `json:"text"`
}

// ContentsResult is a single document in a contents response.
type ContentsResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ContentsResponse is the response from the contents endpoint.
type ContentsResponse struct {
	Results []ContentsResult `json:"results"`
}

func (c *ExaClient) Fetch(ctx context.Context, url string) (Page, error) {
	body, err := json.Marshal(ContentsRequest{URLs: []string{url}, Text: true})
	if err != nil {
		return Page{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/contents", bytes.NewBuffer(body))
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Page{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var contents ContentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return Page{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(contents.Results) == 0 {
		return Page{URL: url}, nil
	}
	r := contents.Results[0]
	return Page{URL: url, Title: r.Title, Text: r.Text}, nil
}
