package summarize

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"PaperHarvest/internal/ports"
)

const fallbackSentences = 3

// Chain tries each configured provider in fixed priority order and falls
// back to truncating the abstract itself. Generate never fails: a provider
// that errors simply contributes nothing.
type Chain struct {
	providers []ports.SummaryProvider
	logger    *slog.Logger
}

var _ ports.Summarizer = (*Chain)(nil)

// NewChain composes providers in the order they should be attempted.
func NewChain(logger *slog.Logger, providers ...ports.SummaryProvider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Generate returns the first non-empty provider result, or the first three
// sentences of the abstract when every provider declines.
func (c *Chain) Generate(ctx context.Context, title, abstract string) string {
	for _, provider := range c.providers {
		if provider == nil {
			continue
		}
		if summary := provider.Summarize(ctx, title, abstract); summary != "" {
			c.debug("provider produced summary", "provider", provider.Name())
			return summary
		}
	}
	return FirstSentences(abstract, fallbackSentences)
}

func (c *Chain) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

var sentenceEndExpr = regexp.MustCompile(`[.!?]\s+`)

// FirstSentences joins up to n sentences of text, splitting after '.', '!'
// or '?' followed by whitespace. Fewer sentences return all of them; empty
// text returns the empty string.
func FirstSentences(text string, n int) string {
	sentences := splitSentences(text)
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	return strings.Join(sentences, " ")
}

func splitSentences(text string) []string {
	matches := sentenceEndExpr.FindAllStringIndex(text, -1)

	sentences := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		// keep the terminator, drop the whitespace
		sentences = append(sentences, text[start:m[0]+1])
		start = m[1]
	}
	return append(sentences, text[start:])
}
