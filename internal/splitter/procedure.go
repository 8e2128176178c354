package splitter

import (
	"regexp"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// Step markers tried in order; the first pattern with a match wins.
var (
	numberedLineMarker = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
	stepWordMarker     = regexp.MustCompile(`\bStep\s+\d+`)
	bulletLineMarker   = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
)

// Verify interface compliance
var _ Strategy = (*ProcedureStrategy)(nil)

// ProcedureStrategy splits procedure chunks at step markers so each step
// survives as its own unit. Chunks without recognizable markers fall
// back to sentence splitting.
type ProcedureStrategy struct {
	sentence *SentenceStrategy
}

// NewProcedureStrategy creates a step-marker splitting strategy that
// recurses into sentence for oversized or unmarked content.
func NewProcedureStrategy(sentence *SentenceStrategy) *ProcedureStrategy {
	return &ProcedureStrategy{sentence: sentence}
}

func (p *ProcedureStrategy) Name() string {
	return "procedure"
}

// Split cuts chunk at step-marker boundaries. Marker-delimited pieces
// keep the parent's confidence; pieces still over maxSize recurse into
// sentence splitting.
func (p *ProcedureStrategy) Split(chunk domain.DocumentChunk, maxSize int) []domain.DocumentChunk {
	boundaries := markerBoundaries(chunk.Content)
	if boundaries == nil {
		return p.sentence.Split(chunk, maxSize)
	}

	var out []domain.DocumentChunk
	emit := func(relStart, relEnd int) {
		sub, ok := subChunk(chunk, relStart, relEnd, chunk.Confidence)
		if !ok {
			return
		}
		if len(sub.Content) > maxSize {
			out = append(out, p.sentence.Split(sub, maxSize)...)
			return
		}
		out = append(out, sub)
	}

	if boundaries[0] > 0 {
		emit(0, boundaries[0])
	}
	for i, start := range boundaries {
		end := len(chunk.Content)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}
		emit(start, end)
	}

	if len(out) == 0 {
		return []domain.DocumentChunk{chunk}
	}
	return out
}

// markerBoundaries returns the start offsets of step markers in content,
// or nil when no pattern matches.
func markerBoundaries(content string) []int {
	for _, re := range []*regexp.Regexp{numberedLineMarker, stepWordMarker, bulletLineMarker} {
		matches := re.FindAllStringIndex(content, -1)
		if len(matches) == 0 {
			continue
		}
		starts := make([]int, len(matches))
		for i, m := range matches {
			starts[i] = m[0]
		}
		return starts
	}
	return nil
}
