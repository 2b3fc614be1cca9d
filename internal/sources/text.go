package sources

import (
	"context"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/service"
	"notebook-ai/internal/textproc"
)

// DefaultTextTitle is used when no title can be generated for pasted text.
const DefaultTextTitle = "Text Document"

// TitleGenerator produces a best-effort title for content.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, content string) service.Attempt[string]
}

// TextAdapter adapts pasted text.
type TextAdapter struct {
	titles    TitleGenerator
	maxLength int
}

// NewTextAdapter creates a new TextAdapter. maxLength <= 0 selects
// textproc.DefaultMaxLength.
func NewTextAdapter(titles TitleGenerator, maxLength int) *TextAdapter {
	return &TextAdapter{titles: titles, maxLength: maxLength}
}

// Adapt normalizes the text and titles it. A title that cannot be generated
// falls back to DefaultTextTitle.
func (a *TextAdapter) Adapt(ctx context.Context, text string) Draft {
	content := textproc.Normalize(text, a.maxLength)

	title := DefaultTextTitle
	if content != "" && a.titles != nil {
		attempt := a.titles.GenerateTitle(ctx, content)
		if !attempt.OK() {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "using default title for text source", "reason", attempt.Skipped)
		}
		title = attempt.Or(DefaultTextTitle)
	}

	return Draft{
		Label:   "text",
		Title:   title,
		Content: content,
		Origin:  OriginUserInput,
		Metadata: TextMetadata{
			InputMethod: "raw_text",
			TextLength:  len([]rune(content)),
		},
	}
}
