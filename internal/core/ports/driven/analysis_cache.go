package driven

import (
	"context"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// AnalysisCache stores analyzer results keyed by span content.
// Cached segments keep span-relative offsets so identical windows at
// different document positions share entries. Implementations: Redis
// for shared deployments, in-process LRU for single binaries.
type AnalysisCache interface {
	// Get retrieves cached segments for a span. The second return value
	// is false on a miss.
	Get(ctx context.Context, span string) ([]domain.CandidateSegment, bool, error)

	// Set stores segments for a span with the adapter's TTL
	Set(ctx context.Context, span string, segments []domain.CandidateSegment) error

	// Ping verifies the cache is available
	Ping(ctx context.Context) error

	// Close releases resources held by the cache
	Close() error
}
