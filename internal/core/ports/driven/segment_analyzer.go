package driven

import (
	"context"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// SegmentAnalyzer proposes semantic segments for a span of document text.
// Implementations may call a hosted model, run local rules, or replay
// scripted responses in tests.
type SegmentAnalyzer interface {
	// Analyze returns candidate segments for the span. Offsets in the
	// result are relative to the span, not the document. Failures are
	// reported as domain.ErrAnalyzerFormat (unparseable response) or
	// domain.ErrAnalyzerTransport (unreachable/timeout) wrapped with
	// call context.
	Analyze(ctx context.Context, span string) ([]domain.CandidateSegment, error)

	// Model returns the model or rule-set name being used
	Model() string

	// Ping verifies the analyzer is available
	Ping(ctx context.Context) error

	// Close releases resources held by the analyzer
	Close() error
}
