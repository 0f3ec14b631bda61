package cleaner

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced wraps a Cleaner so every Clean call produces a span with request
// attributes and outcome status.
type Traced struct {
	inner  Cleaner
	tracer trace.Tracer
}

// NewTraced wraps inner with span creation. A nil tracer returns the inner
// cleaner untouched, so disabled tracing has zero overhead.
func NewTraced(inner Cleaner, tracer trace.Tracer) Cleaner {
	if tracer == nil {
		return inner
	}
	return &Traced{inner: inner, tracer: tracer}
}

// Clean delegates to the wrapped cleaner inside a span.
func (t *Traced) Clean(ctx context.Context, text string, opts Options) (string, error) {
	ctx, span := t.tracer.Start(ctx, "cleaner.clean",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	span.SetAttributes(
		attribute.Int("cleaner.input_bytes", len(text)),
		attribute.Bool("cleaner.smart_quotes", opts.SmartQuotes),
		attribute.Bool("cleaner.dashes", opts.Dashes),
		attribute.Bool("cleaner.whitespace", opts.Whitespace),
		attribute.Bool("cleaner.strip_markdown", opts.StripMarkdown),
		attribute.Bool("cleaner.fix_grammar", opts.FixGrammar),
	)

	cleaned, err := t.inner.Clean(ctx, text, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("cleaner.output_bytes", len(cleaned)))
	span.SetStatus(codes.Ok, "")
	return cleaned, nil
}
