package textproc

import "unicode/utf8"

// DefaultChunkSize is the maximum number of characters per chunk.
const DefaultChunkSize = 8000

// Chunk splits text into consecutive, non-overlapping slices of at most size
// runes. Concatenating the result in order reproduces text exactly. Empty
// text yields no chunks. A size <= 0 selects DefaultChunkSize.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if text == "" {
		return nil
	}

	chunks := make([]string, 0, utf8.RuneCountInString(text)/size+1)
	start, count := 0, 0
	for i := range text {
		if count == size {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(chunks, text[start:])
}
