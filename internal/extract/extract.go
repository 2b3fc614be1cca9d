package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/textproc"
)

// Supported MIME types.
const (
	MIMEPDF      = "application/pdf"
	MIMEDoc      = "application/msword"
	MIMEDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText     = "text/plain"
	MIMEMarkdown = "text/markdown"
)

const (
	maxPDFChars  = 200000
	maxDocChars  = 100000
	minDocChars  = 10
	maxTextChars = 1000000
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Supported reports whether mimeType has a text extractor.
func Supported(mimeType string) bool {
	switch baseType(mimeType) {
	case MIMEPDF, MIMEDoc, MIMEDocx, MIMEText, MIMEMarkdown:
		return true
	}
	return false
}

// Parse extracts plain text from data. Unsupported types return an empty
// string and no error. Parser panics are converted to errors.
func Parse(data []byte, mimeType string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extractor panic for %s: %v", mimeType, r)
		}
	}()

	switch baseType(mimeType) {
	case MIMEPDF:
		text, err = parsePDF(data)
		return textproc.Truncate(text, maxPDFChars), err
	case MIMEDocx:
		text, err = parseDocx(data)
		return textproc.Truncate(text, maxDocChars), err
	case MIMEDoc:
		text = parseDoc(data)
		if len([]rune(text)) < minDocChars {
			return "", nil
		}
		return textproc.Truncate(text, maxDocChars), nil
	case MIMEText:
		return textproc.Truncate(clean(strings.ToValidUTF8(string(data), "")), maxTextChars), nil
	case MIMEMarkdown:
		text, err = parseMarkdown(data)
		return textproc.Truncate(text, maxTextChars), err
	default:
		return "", nil
	}
}

// Extractor adapts Parse to the never-failing contract used by ingestion:
// every failure is logged and degrades to empty text.
type Extractor struct{}

// Extract returns the text of data, or "" when nothing could be read.
func (Extractor) Extract(ctx context.Context, data []byte, mimeType string) string {
	text, err := Parse(data, mimeType)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "text extraction failed",
			"mime_type", mimeType,
			"size", len(data),
			"error", err,
		)
		return ""
	}
	return text
}

// clean drops NUL bytes and collapses whitespace runs.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func baseType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
