package splitter

import (
	"regexp"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// confidencePenalty applies to sub-chunks cut at sentence boundaries,
// which are blinder to meaning than marker-based cuts.
const confidencePenalty = 0.8

// sentenceBoundary matches terminal punctuation followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// Verify interface compliance
var _ Strategy = (*SentenceStrategy)(nil)

// SentenceStrategy greedily accumulates sentences into sub-chunks.
// The default for all chunk types without a structural strategy, and the
// recursion target for oversized structural pieces.
type SentenceStrategy struct{}

// NewSentenceStrategy creates a sentence-boundary splitting strategy.
func NewSentenceStrategy() *SentenceStrategy {
	return &SentenceStrategy{}
}

func (s *SentenceStrategy) Name() string {
	return "sentence"
}

// Split cuts chunk at sentence boundaries, accumulating sentences until
// the next would push a sub-chunk over maxSize. A chunk with no sentence
// boundary is an atomic unit and comes back unchanged, oversized or not.
func (s *SentenceStrategy) Split(chunk domain.DocumentChunk, maxSize int) []domain.DocumentChunk {
	spans := sentenceSpans(chunk.Content)
	if len(spans) <= 1 {
		return []domain.DocumentChunk{chunk}
	}

	confidence := chunk.Confidence * confidencePenalty

	var out []domain.DocumentChunk
	groupStart, groupEnd := spans[0][0], spans[0][1]
	for _, span := range spans[1:] {
		if span[1]-groupStart > maxSize {
			if sub, ok := subChunk(chunk, groupStart, groupEnd, confidence); ok {
				out = append(out, sub)
			}
			groupStart, groupEnd = span[0], span[1]
			continue
		}
		groupEnd = span[1]
	}
	if sub, ok := subChunk(chunk, groupStart, groupEnd, confidence); ok {
		out = append(out, sub)
	}

	if len(out) == 0 {
		return []domain.DocumentChunk{chunk}
	}
	return out
}

// sentenceSpans tiles content into sentence spans, each ending after its
// terminal punctuation and trailing whitespace. Text with no boundary
// yields a single span.
func sentenceSpans(content string) [][2]int {
	matches := sentenceBoundary.FindAllStringIndex(content, -1)

	var spans [][2]int
	prev := 0
	for _, m := range matches {
		spans = append(spans, [2]int{prev, m[1]})
		prev = m[1]
	}
	if prev < len(content) {
		spans = append(spans, [2]int{prev, len(content)})
	}
	return spans
}
