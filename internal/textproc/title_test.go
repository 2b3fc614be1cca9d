package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"quarterly_report-final.pdf", "Quarterly Report Final"},
		{"my-NOTES.md", "My Notes"},
		{"README", "Readme"},
		{"archive.tar.gz", "Archive.tar"},
		{"  spaced__out  .txt", "Spaced Out"},
		{"éclair_recipe.docx", "Éclair Recipe"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromFilename(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "日本", Truncate("日本語", 2))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "", Truncate("abc", 0))
}
