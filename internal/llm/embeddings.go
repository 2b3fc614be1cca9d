package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrNoEmbeddings is returned when the provider answers a non-empty request
// with zero vectors.
var ErrNoEmbeddings = errors.New("no embeddings returned")

const (
	defaultBatchSize   = 100
	defaultParallelism = 4
)

// EmbeddingsClient is a client for an OpenAI-compatible embeddings API.
type EmbeddingsClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int // Requested output size; every returned vector is validated against it
	BatchSize  int // Maximum inputs per request
	limiter    *rate.Limiter
	client     *http.Client
}

// EmbeddingsOption configures an EmbeddingsClient.
type EmbeddingsOption func(*EmbeddingsClient)

// WithBatchSize caps the number of inputs sent per request.
func WithBatchSize(n int) EmbeddingsOption {
	return func(c *EmbeddingsClient) {
		if n > 0 {
			c.BatchSize = n
		}
	}
}

// WithRateLimit limits outgoing requests to rps per second.
func WithRateLimit(rps float64, burst int) EmbeddingsOption {
	return func(c *EmbeddingsClient) {
		if rps > 0 {
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) EmbeddingsOption {
	return func(c *EmbeddingsClient) {
		c.client = hc
	}
}

// NewEmbeddingsClient creates a new embeddings client.
func NewEmbeddingsClient(baseURL, apiKey, model string, dimensions int, opts ...EmbeddingsOption) *EmbeddingsClient {
	c := &EmbeddingsClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		Dimensions: dimensions,
		BatchSize:  defaultBatchSize,
		client:     &http.Client{Timeout: time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EmbeddingsRequest represents the request payload for embeddings API.
type EmbeddingsRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	Dimensions     int      `json:"dimensions,omitempty"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// ModelName returns the model identifier stored alongside each vector.
func (c *EmbeddingsClient) ModelName() string {
	return c.Model
}

// Configured reports whether the client has credentials to call the API.
func (c *EmbeddingsClient) Configured() bool {
	return c != nil && c.APIKey != "" && c.BaseURL != ""
}

// Embed returns one vector per input text, in input order. Inputs larger
// than BatchSize are split into several concurrent requests and reassembled
// by position. Vectors are returned exactly as the provider sent them.
func (c *EmbeddingsClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}
	for i, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("input %d is empty", i)
		}
	}

	size := c.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}

	result := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultParallelism)

	for start := 0; start < len(texts); start += size {
		start := start
		end := min(start+size, len(texts))
		g.Go(func() error {
			vectors, err := c.embedBatch(gctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(result[start:end], vectors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *EmbeddingsClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	payload := EmbeddingsRequest{
		Model:          c.Model,
		Input:          texts,
		Dimensions:     c.Dimensions,
		EncodingFormat: "float",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingsResp EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embeddingsResp.Data) == 0 {
		return nil, ErrNoEmbeddings
	}
	if len(embeddingsResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddingsResp.Data))
	}

	ordered := orderByIndex(embeddingsResp.Data)

	result := make([][]float32, len(ordered))
	for i, data := range ordered {
		if c.Dimensions > 0 && len(data.Embedding) != c.Dimensions {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.Dimensions)
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[i] = vec
	}

	return result, nil
}

// orderByIndex places each item at its reported index. Providers that omit
// or repeat indices keep their response order.
func orderByIndex(data []EmbeddingData) []EmbeddingData {
	ordered := make([]EmbeddingData, len(data))
	seen := make([]bool, len(data))
	for _, d := range data {
		if d.Index < 0 || d.Index >= len(data) || seen[d.Index] {
			return data
		}
		seen[d.Index] = true
		ordered[d.Index] = d
	}
	return ordered
}
