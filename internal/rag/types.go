package rag

import "time"

const (
	// DefaultK is the number of chunks returned when the request leaves K unset.
	DefaultK = 5
	// MaxK caps the number of chunks one search may return.
	MaxK = 20
	// PreviewLength is the maximum number of characters of chunk text returned.
	PreviewLength = 1000
)

// SearchRequest represents a retrieval query.
type SearchRequest struct {
	// Query is the natural-language text to search for.
	Query string `json:"query"`
	// SourceIDs restricts the search to these sources. Empty means no results.
	SourceIDs []string `json:"source_ids"`
	// K is the desired number of chunks. Zero selects DefaultK.
	K int `json:"k,omitempty"`
}

// RankedChunk is one retrieval hit with its owning source attached.
type RankedChunk struct {
	ChunkID  string `json:"chunk_id"`
	SourceID string `json:"source_id"`
	// Position is the chunk's index within its source.
	Position int `json:"position"`
	// Text is the chunk text, cut to PreviewLength characters.
	Text string `json:"text"`
	// Similarity is 1 - cosine distance. Higher is better.
	Similarity      float64   `json:"similarity"`
	SourceTitle     string    `json:"source_title"`
	SourceURL       string    `json:"source_url"`
	SourceCreatedAt time.Time `json:"source_created_at"`
}
