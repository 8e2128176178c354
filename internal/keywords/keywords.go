package keywords

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
)

const (
	defaultTopN  = 5 // default number of keywords returned
	minWordRunes = 2 // minimum word length to be a candidate
)

// Verify interface compliance
var _ driven.KeywordExtractor = (*Extractor)(nil)

// Extractor extracts keywords by term frequency after stopword filtering.
// Results are deterministic: sorted by count descending with lexicographic
// tie-breaking. Safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a frequency-based keyword extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns up to topN keywords from text, lowercased.
// Returns nil when the text yields no candidates.
func (e *Extractor) Extract(text string, topN int) []string {
	if topN <= 0 {
		topN = defaultTopN
	}

	words := Tokenize(text)
	if len(words) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, w := range words {
		if utf8.RuneCountInString(w) < minWordRunes {
			continue
		}
		if isStopword(w) {
			continue
		}
		counts[w]++
	}
	if len(counts) == 0 {
		return nil
	}

	type candidate struct {
		word  string
		count int
	}
	candidates := make([]candidate, 0, len(counts))
	for w, c := range counts {
		candidates = append(candidates, candidate{word: w, count: c})
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.count != b.count {
			if a.count > b.count {
				return -1
			}
			return 1
		}
		return strings.Compare(a.word, b.word)
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.word
	}
	return result
}

// Tokenize splits text into lowercase word tokens. Letters and digits
// form words; everything else separates them.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// Jaccard returns the Jaccard similarity of two token lists treated as
// sets. Two empty sets have similarity 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
