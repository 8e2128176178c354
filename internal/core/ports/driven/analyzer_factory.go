package driven

import (
	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// AnalyzerFactory creates segment analyzers based on configuration
type AnalyzerFactory interface {
	// CreateAnalyzer creates a segment analyzer from settings.
	// Returns nil, nil if settings are not configured.
	CreateAnalyzer(settings *domain.AnalyzerSettings) (SegmentAnalyzer, error)
}
