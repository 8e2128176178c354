package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driving"
	"github.com/custodia-labs/segmenta-core/internal/gapfill"
	"github.com/custodia-labs/segmenta-core/internal/merge"
	"github.com/custodia-labs/segmenta-core/internal/runtime"
	"github.com/custodia-labs/segmenta-core/internal/splitter"
	"github.com/custodia-labs/segmenta-core/internal/window"
	"github.com/custodia-labs/segmenta-core/internal/worker"
)

// minChunkContent is the trimmed content length below which a
// materialized chunk is discarded as noise. Size-split sub-chunks are
// exempt; the filter runs at materialization only.
const minChunkContent = 30

// Ensure segmentationService implements SegmentationService
var _ driving.SegmentationService = (*segmentationService)(nil)

// segmentationService implements the SegmentationService interface.
// It runs the full pipeline: windowed analysis for large documents,
// overlap merging, gap filling, materialization with the noise filter,
// and size-bounded splitting.
//
// MinConfidence is applied as a post-materialization filter: chunks
// below the threshold are dropped outright, which may reintroduce
// coverage gaps. That trade-off is deliberate; re-running gap fill
// after the filter would manufacture low-signal chunks from the very
// spans the caller asked to drop.
type segmentationService struct {
	services  *runtime.Services // Dynamic analyzer and cache
	extractor driven.KeywordExtractor
	settings  domain.SegmenterSettings
	windows   *window.Generator
	gaps      *gapfill.Filler
	splitter  *splitter.Registry
	pool      *worker.Pool
	logger    *slog.Logger
}

// NewSegmentationService creates a new SegmentationService.
// The analyzer and cache are accessed dynamically via runtime.Services,
// so they can be reconfigured between calls. Zero-value settings fields
// fall back to defaults.
func NewSegmentationService(
	services *runtime.Services,
	extractor driven.KeywordExtractor,
	settings domain.SegmenterSettings,
	logger *slog.Logger,
) driving.SegmentationService {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := domain.DefaultSegmenterSettings()
	if settings.WindowSize <= 0 {
		settings.WindowSize = defaults.WindowSize
	}
	if settings.WindowOverlap <= 0 || settings.WindowOverlap >= 1 {
		settings.WindowOverlap = defaults.WindowOverlap
	}
	if settings.MinWindowLength <= 0 {
		settings.MinWindowLength = defaults.MinWindowLength
	}
	if settings.LargeDocThreshold <= 0 {
		settings.LargeDocThreshold = defaults.LargeDocThreshold
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = defaults.Concurrency
	}

	return &segmentationService{
		services:  services,
		extractor: extractor,
		settings:  settings,
		windows: window.NewGenerator(window.Config{
			Size:      settings.WindowSize,
			Overlap:   settings.WindowOverlap,
			MinLength: settings.MinWindowLength,
		}),
		gaps:     gapfill.NewFiller(extractor),
		splitter: splitter.DefaultRegistry(),
		pool: worker.NewPool(worker.PoolConfig{
			Concurrency: settings.Concurrency,
			Logger:      logger,
		}),
		logger: logger,
	}
}

// Segment analyzes document and returns its ordered, non-overlapping,
// size-bounded chunks
func (s *segmentationService) Segment(ctx context.Context, document string, opts domain.SegmentOptions) ([]domain.DocumentChunk, error) {
	if strings.TrimSpace(document) == "" {
		return nil, nil
	}

	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = domain.DefaultSegmentOptions().MaxChunkSize
	}

	analyzer := s.services.Analyzer()
	if analyzer == nil {
		return nil, domain.ErrAnalyzerNotConfigured
	}

	candidates := s.collectCandidates(ctx, analyzer, document)
	candidates = clampCandidates(candidates, len(document))

	merged := merge.Merge(candidates)
	filled := s.gaps.Fill(document, merged)

	chunks := materialize(document, filled)
	chunks = s.splitter.Apply(chunks, opts.MaxChunkSize)

	if opts.MinConfidence > 0 {
		chunks = filterConfidence(chunks, opts.MinConfidence)
	}

	s.logger.Debug("document segmented",
		"document_bytes", len(document),
		"candidates", len(candidates),
		"merged", len(merged),
		"chunks", len(chunks),
	)

	return chunks, nil
}

// collectCandidates gathers analyzer candidates with document-absolute
// offsets. Small documents get one whole-text call; large ones are
// analyzed per window, possibly concurrently. Analyzer failures degrade
// to an empty contribution so partial segmentation still succeeds.
func (s *segmentationService) collectCandidates(ctx context.Context, analyzer driven.SegmentAnalyzer, document string) []domain.CandidateSegment {
	if len(document) <= s.settings.LargeDocThreshold {
		candidates, err := s.analyzeSpan(ctx, analyzer, document)
		if err != nil {
			s.logger.Warn("document analysis failed, continuing with no candidates", "error", err)
			return nil
		}
		return candidates
	}

	windows := s.windows.Windows(document)
	return s.pool.Analyze(ctx, windows, func(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
		return s.analyzeSpan(ctx, analyzer, span)
	})
}

// analyzeSpan runs one analyzer call through the cache. Cache failures
// are logged and bypassed. Transport errors get one retry; format
// errors do not, since a malformed response is usually deterministic.
func (s *segmentationService) analyzeSpan(ctx context.Context, analyzer driven.SegmentAnalyzer, span string) ([]domain.CandidateSegment, error) {
	cache := s.services.Cache()
	if cache != nil {
		segments, ok, err := cache.Get(ctx, span)
		if err != nil {
			s.logger.Warn("analysis cache get failed, calling analyzer", "error", err)
		} else if ok {
			return segments, nil
		}
	}

	segments, err := analyzer.Analyze(ctx, span)
	if err != nil && errors.Is(err, domain.ErrAnalyzerTransport) && ctx.Err() == nil {
		s.logger.Warn("analyzer transport failure, retrying once", "error", err)
		segments, err = analyzer.Analyze(ctx, span)
	}
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, span, segments); err != nil {
			s.logger.Warn("analysis cache set failed", "error", err)
		}
	}

	return segments, nil
}

// clampCandidates bounds every candidate to the document and drops the
// ones that become empty. Unknown content types normalize to mixed.
func clampCandidates(candidates []domain.CandidateSegment, limit int) []domain.CandidateSegment {
	out := make([]domain.CandidateSegment, 0, len(candidates))
	for _, seg := range candidates {
		clamped, ok := seg.Clamp(limit)
		if !ok {
			continue
		}
		clamped.ContentType = domain.ParseChunkType(string(clamped.ContentType))
		out = append(out, clamped)
	}
	return out
}

// materialize turns segments into chunks: slice the document, trim,
// tighten offsets to the trimmed extent, and drop noise under the
// minimum content length.
func materialize(document string, segments []domain.CandidateSegment) []domain.DocumentChunk {
	chunks := make([]domain.DocumentChunk, 0, len(segments))
	for _, seg := range segments {
		text := document[seg.StartChar:seg.EndChar]
		trimmed := strings.TrimSpace(text)
		if len(trimmed) < minChunkContent {
			continue
		}

		leftTrim := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
		rightTrim := len(text) - len(strings.TrimRightFunc(text, unicode.IsSpace))

		chunks = append(chunks, domain.DocumentChunk{
			Content:       trimmed,
			StartPosition: seg.StartChar + leftTrim,
			EndPosition:   seg.EndChar - rightTrim,
			ChunkType:     seg.ContentType,
			Topic:         seg.Topic,
			Confidence:    seg.Confidence,
			Keywords:      seg.Keywords,
		})
	}
	return chunks
}

// filterConfidence drops chunks below the threshold, preserving order.
func filterConfidence(chunks []domain.DocumentChunk, minConfidence float64) []domain.DocumentChunk {
	out := make([]domain.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Confidence >= minConfidence {
			out = append(out, chunk)
		}
	}
	return out
}
