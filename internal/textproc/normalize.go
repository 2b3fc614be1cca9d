package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the content ceiling applied to ingested source text.
const DefaultMaxLength = 10000

// Ellipsis is appended to text cut at the length ceiling.
const Ellipsis = "…"

const (
	// rawLengthFactor bounds how much raw input is cleaned, as a multiple of
	// the output ceiling.
	rawLengthFactor = 8
	// maxCleanPasses bounds the fixed-point loop for deeply nested markup.
	maxCleanPasses = 32
)

var (
	lineEndingRe  = regexp.MustCompile(`\r\n?`)
	htmlTagRe     = regexp.MustCompile(`<[^>\n]*>`)
	mdImageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeadingRe   = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	controlCharRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	hSpaceRe      = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	// "&amp;amp;amp;lt;" decodes one level per replacement; collapse the chain
	// so a single pass resolves it.
	entityChainRe = regexp.MustCompile(`&(?:amp;)+`)

	// RE2 has no backreferences, so each emphasis marker gets its own pattern.
	// Double markers run first so "**a**" does not leave stray stars behind.
	emphasisRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*(.*?)\*\*`),
		regexp.MustCompile(`__(.*?)__`),
		regexp.MustCompile(`\*(.*?)\*`),
		regexp.MustCompile(`_(.*?)_`),
	}

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Normalize turns raw markup-bearing text into plain text no longer than
// maxLength runes. A maxLength <= 0 selects DefaultMaxLength.
//
// The cleaning pass is repeated until it reaches a fixed point, so decoded
// entities that form new markup are stripped too and Normalize is idempotent.
// Only the first rawLengthFactor*maxLength runes of s are considered.
func Normalize(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if s == "" {
		return ""
	}

	out := headRunes(s, maxLength*rawLengthFactor)
	for i := 0; i < maxCleanPasses; i++ {
		next := cleanOnce(out)
		if next == out {
			break
		}
		out = next
	}

	return truncate(out, maxLength)
}

func cleanOnce(s string) string {
	s = lineEndingRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = mdImageRe.ReplaceAllString(s, "")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = mdHeadingRe.ReplaceAllString(s, "")
	for _, re := range emphasisRes {
		s = re.ReplaceAllString(s, "$1")
	}
	s = entityChainRe.ReplaceAllString(s, "&")
	s = entityReplacer.Replace(s)
	s = controlCharRe.ReplaceAllString(s, "")
	s = hSpaceRe.ReplaceAllString(s, " ")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// headRunes returns the first n runes of s.
func headRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func truncate(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	head := strings.TrimRight(string(runes[:maxLength-1]), " \t\n")
	return head + Ellipsis
}
