package splitter

import (
	"regexp"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// Item markers tried in order; the first pattern with a match wins.
var (
	itemBulletMarker   = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	itemNumberedMarker = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
	itemLetteredMarker = regexp.MustCompile(`(?m)^\s*[a-zA-Z][.)]\s+`)
)

// Verify interface compliance
var _ Strategy = (*ListStrategy)(nil)

// ListStrategy splits list chunks at item boundaries, packing whole
// items into each sub-chunk. Chunks without recognizable item markers
// fall back to sentence splitting.
type ListStrategy struct {
	sentence *SentenceStrategy
}

// NewListStrategy creates an item-accumulation splitting strategy.
func NewListStrategy(sentence *SentenceStrategy) *ListStrategy {
	return &ListStrategy{sentence: sentence}
}

func (l *ListStrategy) Name() string {
	return "list"
}

// Split groups list items greedily: items accumulate until the next one
// would push the sub-chunk over maxSize, then the group is flushed. An
// item larger than maxSize on its own is emitted as-is.
func (l *ListStrategy) Split(chunk domain.DocumentChunk, maxSize int) []domain.DocumentChunk {
	items := itemSpans(chunk.Content)
	if items == nil {
		return l.sentence.Split(chunk, maxSize)
	}

	var out []domain.DocumentChunk
	groupStart, groupEnd := items[0][0], items[0][1]
	for _, item := range items[1:] {
		if item[1]-groupStart > maxSize {
			if sub, ok := subChunk(chunk, groupStart, groupEnd, chunk.Confidence); ok {
				out = append(out, sub)
			}
			groupStart, groupEnd = item[0], item[1]
			continue
		}
		groupEnd = item[1]
	}
	if sub, ok := subChunk(chunk, groupStart, groupEnd, chunk.Confidence); ok {
		out = append(out, sub)
	}

	if len(out) == 0 {
		return []domain.DocumentChunk{chunk}
	}
	return out
}

// itemSpans tiles content into list-item spans, each running from its
// marker to the next marker. Leading text before the first marker
// becomes the first span. Returns nil when no marker pattern matches.
func itemSpans(content string) [][2]int {
	var starts []int
	for _, re := range []*regexp.Regexp{itemBulletMarker, itemNumberedMarker, itemLetteredMarker} {
		matches := re.FindAllStringIndex(content, -1)
		if len(matches) == 0 {
			continue
		}
		starts = make([]int, len(matches))
		for i, m := range matches {
			starts[i] = m[0]
		}
		break
	}
	if starts == nil {
		return nil
	}

	var spans [][2]int
	if starts[0] > 0 {
		spans = append(spans, [2]int{0, starts[0]})
	}
	for i, start := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}
