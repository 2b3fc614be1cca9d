package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"notebook-ai/internal/storage"
)

// ChunkerVersion identifies the chunking rules. Bump it when chunk
// boundaries change so IndexVersion changes with them.
const ChunkerVersion = "fixed-v1"

// CoverageStats summarizes what a notebook's index holds.
type CoverageStats struct {
	// Sources counts sources per ingestion status.
	Sources map[storage.SourceStatus]int `json:"sources"`
	// SourcesWithoutChunks counts stored sources that had no extractable
	// text and so cannot be retrieved.
	SourcesWithoutChunks int `json:"sources_without_chunks"`
	// Chunks is the number of embedded chunks.
	Chunks int `json:"chunks"`
	// ChunkLength summarizes chunk lengths in characters.
	ChunkLength ChunkLengthStats `json:"chunk_length"`
	// ChunkerVersion is the version of the chunker used.
	ChunkerVersion string `json:"chunker_version"`
	// IndexVersion is a hash of chunker version, embedding model and chunk size.
	IndexVersion string `json:"index_version"`
}

// ChunkLengthStats contains statistics about chunk lengths.
type ChunkLengthStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// Stats computes index coverage for a notebook from the stores.
func (p *Pipeline) Stats(ctx context.Context, notebookID string) (*CoverageStats, error) {
	counts, err := p.sources.CountByStatus(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sources: %w", err)
	}

	texts, err := p.chunks.ListTextsByNotebook(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	lengths := make([]int, len(texts))
	for i, text := range texts {
		lengths[i] = utf8.RuneCountInString(text)
	}

	model := ""
	if p.embedder != nil {
		model = p.embedder.ModelName()
	}

	return &CoverageStats{
		Sources:              counts,
		SourcesWithoutChunks: counts[storage.StatusFetched],
		Chunks:               len(texts),
		ChunkLength:          computeLengthStats(lengths),
		ChunkerVersion:       ChunkerVersion,
		IndexVersion:         indexVersion(model, p.chunkSize),
	}, nil
}

func indexVersion(model string, chunkSize int) string {
	input := fmt.Sprintf("%s|%s|chunkSize=%d", ChunkerVersion, model, chunkSize)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// computeLengthStats computes min, max, mean, and p95 from lengths.
func computeLengthStats(lengths []int) ChunkLengthStats {
	if len(lengths) == 0 {
		return ChunkLengthStats{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	sum := 0
	for _, n := range lengths {
		sum += n
	}
	mean := float64(sum) / float64(len(lengths))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return ChunkLengthStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
