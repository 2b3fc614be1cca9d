package extract

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	docNoiseRe   = regexp.MustCompile(`[^\x20-\x7E\n\t]+`)
	paragraphEnd = strings.NewReplacer("</w:p>", "\n", "<w:tab/>", "\t", "<w:br/>", "\n")
)

func parsePDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
		if b.Len() > maxPDFChars*4 {
			break
		}
	}
	return clean(b.String()), nil
}

func parseDocx(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	content := paragraphEnd.Replace(r.Editable().GetContent())
	content = xmlTagRe.ReplaceAllString(content, "")
	return clean(html.UnescapeString(content)), nil
}

// parseDoc pulls printable runs out of a legacy binary Word file. It is
// lossy but finds body text in most documents.
func parseDoc(data []byte) string {
	return clean(docNoiseRe.ReplaceAllString(string(data), " "))
}
