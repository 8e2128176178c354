package merge

import (
	"slices"
	"strings"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/keywords"
)

const (
	// overlapThreshold is the fraction of the smaller span above which
	// two overlapping segments merge
	overlapThreshold = 0.3

	// topicThreshold is the Jaccard similarity of topic word sets above
	// which two adjacent segments merge
	topicThreshold = 0.3
)

// Merge resolves overlapping and topically redundant candidates into a
// sorted, non-overlapping segment list. Passes run until no pair merges,
// so merging an already-merged list returns it unchanged.
func Merge(candidates []domain.CandidateSegment) []domain.CandidateSegment {
	if len(candidates) == 0 {
		return nil
	}

	out := make([]domain.CandidateSegment, len(candidates))
	copy(out, candidates)
	sortSegments(out)

	for {
		merged, changed := mergeOnce(out)
		out = merged
		if !changed {
			return out
		}
	}
}

// mergeOnce walks adjacent pairs once, merging or clipping as it goes.
func mergeOnce(sorted []domain.CandidateSegment) ([]domain.CandidateSegment, bool) {
	if len(sorted) <= 1 {
		return sorted, false
	}

	changed := false
	result := make([]domain.CandidateSegment, 0, len(sorted))
	result = append(result, sorted[0])

	for _, cur := range sorted[1:] {
		last := &result[len(result)-1]

		if shouldMerge(*last, cur) {
			*last = combine(*last, cur)
			changed = true
			continue
		}

		// Residual overlap below the merge threshold gets clipped so
		// the output never carries overlapping spans. Full containment
		// always trips the overlap trigger, so clipping cannot empty
		// the later span.
		if cur.StartChar < last.EndChar {
			cur.StartChar = last.EndChar
			changed = true
		}
		result = append(result, cur)
	}

	return result, changed
}

// shouldMerge reports whether two segments describe the same content:
// either their spans substantially overlap or their topics agree.
func shouldMerge(a, b domain.CandidateSegment) bool {
	overlap := a.Overlap(b)
	minLen := min(a.Length(), b.Length())
	if minLen > 0 && float64(overlap) > overlapThreshold*float64(minLen) {
		return true
	}

	similarity := keywords.Jaccard(keywords.Tokenize(a.Topic), keywords.Tokenize(b.Topic))
	return similarity > topicThreshold
}

// combine folds two segments into one covering both spans.
func combine(a, b domain.CandidateSegment) domain.CandidateSegment {
	out := domain.CandidateSegment{
		StartChar: min(a.StartChar, b.StartChar),
		EndChar:   max(a.EndChar, b.EndChar),
	}

	// Type follows the more confident side; ties keep the earlier side
	if b.Confidence > a.Confidence {
		out.ContentType = b.ContentType
	} else {
		out.ContentType = a.ContentType
	}

	// The longer topic tends to be the more descriptive one
	if len(b.Topic) > len(a.Topic) {
		out.Topic = b.Topic
	} else {
		out.Topic = a.Topic
	}

	out.Confidence = max(a.Confidence, b.Confidence)
	out.Keywords = unionKeywords(a.Keywords, b.Keywords)
	return out
}

// unionKeywords de-duplicates the combined keywords, preserving
// first-seen order for determinism.
func unionKeywords(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, kw := range a {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	for _, kw := range b {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// sortSegments orders segments by start offset with deterministic
// tie-breaking so merge results never depend on arrival order.
func sortSegments(segments []domain.CandidateSegment) {
	slices.SortStableFunc(segments, func(a, b domain.CandidateSegment) int {
		if a.StartChar != b.StartChar {
			return a.StartChar - b.StartChar
		}
		if a.EndChar != b.EndChar {
			return a.EndChar - b.EndChar
		}
		if c := strings.Compare(a.Topic, b.Topic); c != 0 {
			return c
		}
		switch {
		case a.Confidence < b.Confidence:
			return -1
		case a.Confidence > b.Confidence:
			return 1
		}
		return 0
	})
}

// Sort exposes the merger's deterministic ordering for callers that
// collect candidates concurrently.
func Sort(segments []domain.CandidateSegment) {
	sortSegments(segments)
}
