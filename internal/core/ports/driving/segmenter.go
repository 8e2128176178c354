package driving

import (
	"context"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// SegmentationService turns raw document text into ordered, typed,
// size-bounded chunks
type SegmentationService interface {
	// Segment analyzes document and returns its chunks, sorted by start
	// position, non-overlapping, each within opts.MaxChunkSize except
	// atomic units that cannot be split further. A whitespace-only
	// document yields an empty list and no error. Zero-value opts
	// fields fall back to defaults.
	Segment(ctx context.Context, document string, opts domain.SegmentOptions) ([]domain.DocumentChunk, error)
}
