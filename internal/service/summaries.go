package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks notebook-ai/internal/service LLMClient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notebook-ai/internal/llm"
	"notebook-ai/internal/textproc"
)

// LLMClient is an interface for interacting with an LLM API.
// This interface is defined from the service layer's perspective (consumer-first).
type LLMClient interface {
	// Complete sends a system instruction and a prompt and returns the reply.
	Complete(ctx context.Context, system, prompt string, params llm.CompletionParams) (string, error)
	// Configured reports whether the client has credentials.
	Configured() bool
}

// MaxTitleLength bounds generated titles.
const MaxTitleLength = 60

// maxPromptRunes bounds the content sent for a single title or summary.
const maxPromptRunes = 12000

var errLLMNotConfigured = errors.New("llm client not configured")

const titleSystemPrompt = `You write a short title for the content provided.
- no more than 60 characters
- capture the main topic or theme of the content
- do not use quotes or colons
Reply with the title only.`

const sourceSummarySystemPrompt = "Generate a concise summary of the provided content. The summary should be 2-3 sentences long and capture the main points."

const unifiedSummarySystemPrompt = "You summarize a collection of resources. Give a clear, concise overview that keeps what is distinct about each resource while pointing out shared themes."

// Titler generates short titles for source content.
type Titler struct {
	llm LLMClient
}

// NewTitler creates a new Titler.
func NewTitler(client LLMClient) *Titler {
	return &Titler{llm: client}
}

// GenerateTitle asks the LLM for a title of at most MaxTitleLength
// characters with quotes and colons removed.
func (t *Titler) GenerateTitle(ctx context.Context, content string) Attempt[string] {
	if t == nil || t.llm == nil || !t.llm.Configured() {
		return Skip[string](errLLMNotConfigured)
	}
	if strings.TrimSpace(content) == "" {
		return Skip[string](errors.New("no content to title"))
	}

	reply, err := t.llm.Complete(ctx, titleSystemPrompt, textproc.Truncate(content, maxPromptRunes), llm.CompletionParams{
		MaxTokens:   32,
		Temperature: 0.3,
	})
	if err != nil {
		return Skip[string](WrapError(err, "failed to generate title"))
	}

	title := cleanTitle(reply)
	if title == "" {
		return Skip[string](errors.New("llm returned an empty title"))
	}
	return Done(title)
}

func cleanTitle(s string) string {
	s = strings.NewReplacer(`"`, "", "'", "", "“", "", "”", "", ":", "").Replace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(textproc.Truncate(s, MaxTitleLength))
}

// Summarizer writes per-source and notebook-level summaries.
type Summarizer struct {
	llm LLMClient
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client LLMClient) *Summarizer {
	return &Summarizer{llm: client}
}

// SummarizeSource summarizes one source's content in 2-3 sentences.
func (s *Summarizer) SummarizeSource(ctx context.Context, content string) Attempt[string] {
	if s == nil || s.llm == nil || !s.llm.Configured() {
		return Skip[string](errLLMNotConfigured)
	}
	if strings.TrimSpace(content) == "" {
		return Skip[string](errors.New("no content to summarize"))
	}

	reply, err := s.llm.Complete(ctx, sourceSummarySystemPrompt, textproc.Truncate(content, maxPromptRunes), llm.CompletionParams{
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return Skip[string](WrapError(err, "failed to summarize source"))
	}
	if reply == "" {
		return Skip[string](errors.New("llm returned an empty summary"))
	}
	return Done(reply)
}

// UnifiedSummary combines per-source summaries into one notebook summary.
// Blank summaries are ignored; with none left the step is skipped.
func (s *Summarizer) UnifiedSummary(ctx context.Context, notebookTitle string, summaries []string) Attempt[string] {
	if s == nil || s.llm == nil || !s.llm.Configured() {
		return Skip[string](errLLMNotConfigured)
	}

	kept := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		if strings.TrimSpace(summary) != "" {
			kept = append(kept, strings.TrimSpace(summary))
		}
	}
	if len(kept) == 0 {
		return Skip[string](errors.New("no source summaries to combine"))
	}

	reply, err := s.llm.Complete(ctx, unifiedSummarySystemPrompt, unifiedSummaryPrompt(notebookTitle, kept), llm.CompletionParams{
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		return Skip[string](WrapError(err, "failed to generate unified summary"))
	}
	if reply == "" {
		return Skip[string](errors.New("llm returned an empty summary"))
	}
	return Done(reply)
}

func unifiedSummaryPrompt(notebookTitle string, summaries []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Notebook: %s\n", notebookTitle)
	fmt.Fprintf(&b, "It contains %d resources. Write one short paragraph per resource, then a single sentence on what connects them.\n\n", len(summaries))
	for i, summary := range summaries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Resource %d: %s", i+1, summary)
	}
	return b.String()
}
