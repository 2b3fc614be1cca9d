package textproc

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleFromFilename derives a display title from an uploaded file name:
// "quarterly_report-final.pdf" becomes "Quarterly Report Final".
func TitleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// Truncate cuts s to at most n runes without splitting a character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
