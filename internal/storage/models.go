package storage

import "time"

// SourceKind identifies how a source entered a notebook.
type SourceKind string

const (
	KindText SourceKind = "text"
	KindLink SourceKind = "link"
	KindFile SourceKind = "file"
)

// SourceStatus is the ingestion state of a source. The only forward
// transition is fetched -> embedded; failed is terminal.
type SourceStatus string

const (
	StatusFetched  SourceStatus = "fetched"
	StatusEmbedded SourceStatus = "embedded"
	StatusFailed   SourceStatus = "failed"
)

// NotebookRecord represents a notebook in the database.
type NotebookRecord struct {
	ID          string // UUID
	UserID      string
	Title       string // Empty until set by the user or inferred from sources
	Summary     *string
	CreatedAt   time.Time
	SourceCount int // Populated by list queries only
}

// SourceRecord represents one ingested source in the database.
type SourceRecord struct {
	ID         string // UUID
	NotebookID string
	UserID     string
	Title      string
	Content    *string // Normalized text; nil when nothing could be extracted
	Kind       SourceKind
	Origin     string         // URL, blob URL, or "user_input"
	Metadata   map[string]any // Kind-specific; persisted as JSON
	Status     SourceStatus
	Summary    *string
	Error      string // Failure reason for failed sources
	CreatedAt  time.Time
}

// ChunkRecord represents one embedded slice of a source.
type ChunkRecord struct {
	ID         string // UUID
	SourceID   string
	NotebookID string
	Text       string
	Position   int       // 0-based, contiguous per source
	Vector     []float32 // Unit length
	Model      string
	CreatedAt  time.Time
}

// ScoredChunk is a search hit joined with its owning source.
type ScoredChunk struct {
	Chunk           ChunkRecord
	Distance        float64 // Cosine distance to the query, ascending is better
	SourceTitle     string
	SourceOrigin    string
	SourceCreatedAt time.Time
}
