package gapfill

import (
	"strings"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
)

const (
	// gapThreshold is the uncovered distance between segments above
	// which a gap is worth inspecting
	gapThreshold = 50

	// minGapText is the trimmed gap text length at or under which the
	// gap is ignored as whitespace or noise
	minGapText = 50

	// minSharedKeywords is the keyword overlap at which gap text counts
	// as a continuation of the previous segment
	minSharedKeywords = 2

	// keywordTopN bounds keywords extracted per gap
	keywordTopN = 5

	gapConfidence      = 0.6
	trailingConfidence = 0.5
)

// Filler inserts segments for document regions no candidate covered.
// Input must be sorted and non-overlapping, as the merger produces it.
type Filler struct {
	extractor driven.KeywordExtractor
}

// NewFiller creates a gap filler using extractor for topic-continuity
// checks.
func NewFiller(extractor driven.KeywordExtractor) *Filler {
	return &Filler{extractor: extractor}
}

// Fill returns segments with significant uncovered gaps turned into
// mixed-type segments and uncovered trailing text into one fragment
// segment. Gap text that continues the previous segment's topic is
// dropped rather than folded into a neighbour. With no input segments
// the whole document is treated as trailing text, so a degraded
// analyzer still yields output.
func (f *Filler) Fill(document string, segments []domain.CandidateSegment) []domain.CandidateSegment {
	out := make([]domain.CandidateSegment, 0, len(segments)+1)

	for i, seg := range segments {
		if i > 0 {
			prev := segments[i-1]
			if gap, ok := f.inspectGap(document, prev, seg); ok {
				out = append(out, gap)
			}
		}
		out = append(out, seg)
	}

	lastEnd := 0
	if len(segments) > 0 {
		lastEnd = segments[len(segments)-1].EndChar
	}
	if trailing, ok := f.inspectTrailing(document, lastEnd); ok {
		out = append(out, trailing)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// inspectGap decides what to do with the region between two adjacent
// segments.
func (f *Filler) inspectGap(document string, prev, next domain.CandidateSegment) (domain.CandidateSegment, bool) {
	if next.StartChar-prev.EndChar <= gapThreshold {
		return domain.CandidateSegment{}, false
	}

	gapText := strings.TrimSpace(document[prev.EndChar:next.StartChar])
	if len(gapText) <= minGapText {
		return domain.CandidateSegment{}, false
	}

	gapKeywords := f.extractor.Extract(gapText, keywordTopN)
	if sharedKeywords(gapKeywords, prev.Keywords) >= minSharedKeywords {
		// Continuation of the previous topic; the text is dropped
		return domain.CandidateSegment{}, false
	}

	return domain.CandidateSegment{
		StartChar:   prev.EndChar,
		EndChar:     next.StartChar,
		ContentType: domain.ChunkTypeMixed,
		Confidence:  gapConfidence,
		Keywords:    gapKeywords,
	}, true
}

// inspectTrailing handles uncovered text after the last segment.
func (f *Filler) inspectTrailing(document string, lastEnd int) (domain.CandidateSegment, bool) {
	if lastEnd >= len(document) {
		return domain.CandidateSegment{}, false
	}

	tail := strings.TrimSpace(document[lastEnd:])
	if len(tail) <= minGapText {
		return domain.CandidateSegment{}, false
	}

	return domain.CandidateSegment{
		StartChar:   lastEnd,
		EndChar:     len(document),
		ContentType: domain.ChunkTypeFragment,
		Confidence:  trailingConfidence,
		Keywords:    f.extractor.Extract(tail, keywordTopN),
	}, true
}

// sharedKeywords counts case-insensitive overlap between two keyword
// lists.
func sharedKeywords(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, kw := range a {
		set[strings.ToLower(kw)] = struct{}{}
	}

	shared := 0
	seen := make(map[string]struct{}, len(b))
	for _, kw := range b {
		low := strings.ToLower(kw)
		if _, dup := seen[low]; dup {
			continue
		}
		seen[low] = struct{}{}
		if _, ok := set[low]; ok {
			shared++
		}
	}
	return shared
}
