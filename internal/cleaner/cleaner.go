// Package cleaner is the asynchronous text-producing collaborator: it takes
// the current buffer text plus an options snapshot and returns a cleaned
// version. Implementations may be slow and may be invoked concurrently;
// relevance of late results is arbitrated by the caller's history.Guard.
package cleaner

import (
	"context"
	"strings"
)

// Cleaner produces a cleaned version of text according to opts.
type Cleaner interface {
	Clean(ctx context.Context, text string, opts Options) (string, error)
}

// Func adapts a plain function to the Cleaner interface.
type Func func(ctx context.Context, text string, opts Options) (string, error)

// Clean calls f.
func (f Func) Clean(ctx context.Context, text string, opts Options) (string, error) {
	return f(ctx, text, opts)
}

// Options is the snapshot of cleaning toggles captured when a request is
// issued. Mutating the live options after issue must not affect in-flight
// requests, so Options is a value type.
type Options struct {
	SmartQuotes   bool `mapstructure:"smart_quotes"`   // normalize curly quotes to straight
	Dashes        bool `mapstructure:"dashes"`         // normalize em/en dashes to hyphens
	Whitespace    bool `mapstructure:"whitespace"`     // collapse runs of spaces, trim trailing
	StripMarkdown bool `mapstructure:"strip_markdown"` // remove markdown syntax
	FixGrammar    bool `mapstructure:"fix_grammar"`    // correct grammar and punctuation
}

// DefaultOptions enables the lossless normalizations and leaves the
// content-altering ones off.
func DefaultOptions() Options {
	return Options{
		SmartQuotes: true,
		Dashes:      true,
		Whitespace:  true,
	}
}

// Instructions renders the options as cleaning instructions for the model.
func (o Options) Instructions() string {
	var rules []string
	if o.SmartQuotes {
		rules = append(rules, "replace curly quotation marks and apostrophes with straight ASCII ones")
	}
	if o.Dashes {
		rules = append(rules, "replace em dashes and en dashes with plain hyphens, adjusting spacing naturally")
	}
	if o.Whitespace {
		rules = append(rules, "collapse repeated spaces, remove trailing whitespace, and normalize blank lines")
	}
	if o.StripMarkdown {
		rules = append(rules, "remove markdown formatting syntax while keeping the underlying text")
	}
	if o.FixGrammar {
		rules = append(rules, "fix grammatical errors and punctuation without changing meaning or tone")
	}
	if len(rules) == 0 {
		return "Return the text unchanged."
	}

	var sb strings.Builder
	sb.WriteString("Clean up the user's text. Apply exactly these rules and nothing else:\n")
	for _, rule := range rules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	sb.WriteString("Respond with the cleaned text only, no commentary.")
	return sb.String()
}
