package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/segmenta-core/internal/gapfill"
	"github.com/custodia-labs/segmenta-core/internal/merge"
	"github.com/custodia-labs/segmenta-core/internal/runtime"
)

func TestSegmentationFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeSegmentationScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("segmentation feature suite failed")
	}
}

// segmentationState carries one scenario's inputs and outcomes
type segmentationState struct {
	analyzer  *mocks.MockSegmentAnalyzer
	extractor *mocks.MockKeywordExtractor

	document   string
	candidates []domain.CandidateSegment
	merged     []domain.CandidateSegment
	filled     []domain.CandidateSegment
	chunks     []domain.DocumentChunk
}

func initializeSegmentationScenario(sc *godog.ScenarioContext) {
	state := &segmentationState{}

	sc.Before(func(ctx context.Context, scn *godog.Scenario) (context.Context, error) {
		*state = segmentationState{
			analyzer:  mocks.NewMockSegmentAnalyzer(),
			extractor: mocks.NewMockKeywordExtractor(),
		}
		return ctx, nil
	})

	sc.Step(`^the document is "([^"]*)"$`, state.theDocumentIs)
	sc.Step(`^the analyzer reports one "([^"]+)" segment covering the whole document, titled "([^"]+)", with confidence (\d+(?:\.\d+)?)$`, state.analyzerReportsWholeDocument)
	sc.Step(`^the document is segmented with a maximum chunk size of (\d+)$`, state.documentIsSegmented)
	sc.Step(`^(\d+) chunks are produced$`, state.chunksAreProduced)
	sc.Step(`^no chunks are produced$`, state.noChunksAreProduced)
	sc.Step(`^every chunk starts with "([^"]+)"$`, state.everyChunkStartsWith)
	sc.Step(`^every chunk keeps confidence (\d+(?:\.\d+)?)$`, state.everyChunkKeepsConfidence)

	sc.Step(`^a candidate from (\d+) to (\d+) about "([^"]+)" with confidence (\d+(?:\.\d+)?)$`, state.aCandidate)
	sc.Step(`^the candidates are merged$`, state.candidatesAreMerged)
	sc.Step(`^(\d+) segments remain$`, state.segmentsRemain)
	sc.Step(`^the segments do not overlap$`, state.segmentsDoNotOverlap)

	sc.Step(`^a merged segment from (\d+) to (\d+) with keywords "([^"]+)"$`, state.aMergedSegmentWithKeywords)
	sc.Step(`^a following segment from (\d+) to (\d+)$`, state.aFollowingSegment)
	sc.Step(`^the text between them has keywords "([^"]+)"$`, state.gapTextHasKeywords)
	sc.Step(`^the gaps are filled$`, state.gapsAreFilled)
	sc.Step(`^no segment is inserted between them$`, state.noSegmentInsertedBetween)
}

func (s *segmentationState) theDocumentIs(document string) error {
	s.document = document
	return nil
}

func (s *segmentationState) analyzerReportsWholeDocument(chunkType, topic string, confidence float64) error {
	s.analyzer.Script(s.document, []domain.CandidateSegment{
		{
			StartChar:   0,
			EndChar:     len(s.document),
			ContentType: domain.ChunkType(chunkType),
			Topic:       topic,
			Confidence:  confidence,
		},
	})
	return nil
}

func (s *segmentationState) documentIsSegmented(maxChunkSize int) error {
	holder := runtime.NewServices(domain.NewRuntimeConfig("memory"))
	holder.SetAnalyzer(s.analyzer)

	svc := NewSegmentationService(holder, s.extractor, domain.SegmenterSettings{}, nil)
	chunks, err := svc.Segment(context.Background(), s.document, domain.SegmentOptions{MaxChunkSize: maxChunkSize})
	if err != nil {
		return err
	}
	s.chunks = chunks
	return nil
}

func (s *segmentationState) chunksAreProduced(count int) error {
	if len(s.chunks) != count {
		return fmt.Errorf("expected %d chunks, got %d", count, len(s.chunks))
	}
	return nil
}

func (s *segmentationState) noChunksAreProduced() error {
	return s.chunksAreProduced(0)
}

func (s *segmentationState) everyChunkStartsWith(prefix string) error {
	for i, chunk := range s.chunks {
		if !strings.HasPrefix(chunk.Content, prefix) {
			return fmt.Errorf("chunk %d does not start with %q: %q", i, prefix, chunk.Content)
		}
	}
	return nil
}

func (s *segmentationState) everyChunkKeepsConfidence(confidence float64) error {
	for i, chunk := range s.chunks {
		if math.Abs(chunk.Confidence-confidence) > 1e-9 {
			return fmt.Errorf("chunk %d has confidence %f, expected %f", i, chunk.Confidence, confidence)
		}
	}
	return nil
}

func (s *segmentationState) aCandidate(start, end int, topic string, confidence float64) error {
	s.candidates = append(s.candidates, domain.CandidateSegment{
		StartChar:   start,
		EndChar:     end,
		ContentType: domain.ChunkTypeExplanation,
		Topic:       topic,
		Confidence:  confidence,
	})
	return nil
}

func (s *segmentationState) candidatesAreMerged() error {
	s.merged = merge.Merge(s.candidates)
	return nil
}

func (s *segmentationState) segmentsRemain(count int) error {
	if len(s.merged) != count {
		return fmt.Errorf("expected %d segments, got %d", count, len(s.merged))
	}
	return nil
}

func (s *segmentationState) segmentsDoNotOverlap() error {
	for i := 1; i < len(s.merged); i++ {
		if s.merged[i].StartChar < s.merged[i-1].EndChar {
			return fmt.Errorf("segments %d and %d overlap", i-1, i)
		}
	}
	return nil
}

func (s *segmentationState) aMergedSegmentWithKeywords(start, end int, keywordList string) error {
	s.merged = append(s.merged, domain.CandidateSegment{
		StartChar:   start,
		EndChar:     end,
		ContentType: domain.ChunkTypeExplanation,
		Topic:       "infrastructure",
		Confidence:  0.8,
		Keywords:    splitKeywords(keywordList),
	})
	return nil
}

func (s *segmentationState) aFollowingSegment(start, end int) error {
	s.merged = append(s.merged, domain.CandidateSegment{
		StartChar:   start,
		EndChar:     end,
		ContentType: domain.ChunkTypeExplanation,
		Topic:       "next section",
		Confidence:  0.8,
	})

	// Synthesize a document long enough to back every segment and the
	// gap between them
	s.document = strings.Repeat("a", end)
	return nil
}

func (s *segmentationState) gapTextHasKeywords(keywordList string) error {
	if len(s.merged) < 2 {
		return fmt.Errorf("need two segments before describing the gap between them")
	}

	gapText := strings.TrimSpace(s.document[s.merged[0].EndChar:s.merged[1].StartChar])
	s.extractor.Script(gapText, splitKeywords(keywordList))
	return nil
}

func (s *segmentationState) gapsAreFilled() error {
	s.filled = gapfill.NewFiller(s.extractor).Fill(s.document, s.merged)
	return nil
}

func (s *segmentationState) noSegmentInsertedBetween() error {
	if len(s.filled) != len(s.merged) {
		return fmt.Errorf("expected %d segments after gap fill, got %d", len(s.merged), len(s.filled))
	}
	for i := range s.filled {
		if s.filled[i].StartChar != s.merged[i].StartChar || s.filled[i].EndChar != s.merged[i].EndChar {
			return fmt.Errorf("segment %d changed during gap fill", i)
		}
	}
	return nil
}

func splitKeywords(list string) []string {
	parts := strings.Split(list, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		keywords = append(keywords, strings.TrimSpace(p))
	}
	return keywords
}
