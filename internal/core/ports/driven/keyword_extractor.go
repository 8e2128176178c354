package driven

// KeywordExtractor pulls representative keywords out of a text span.
// Used by gap analysis to decide whether uncovered text continues the
// previous segment's topic. Implementations must be deterministic.
type KeywordExtractor interface {
	// Extract returns up to topN keywords, lowercased. topN <= 0 uses
	// the implementation default. Returns nil when the text yields no
	// candidates.
	Extract(text string, topN int) []string
}
