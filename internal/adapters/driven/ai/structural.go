package ai

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Ensure StructuralAnalyzer implements SegmentAnalyzer
var _ driven.SegmentAnalyzer = (*StructuralAnalyzer)(nil)

// Fixed confidences per block class. Structural evidence is strong for
// markers and weak for prose.
const (
	structuralCodeConfidence       = 0.9
	structuralListConfidence       = 0.85
	structuralDefinitionConfidence = 0.8
	structuralProseConfidence      = 0.75
	structuralNarrativeConfidence  = 0.7
	structuralMixedConfidence      = 0.6
)

// narrativeLength is the prose block length above which a paragraph
// reads as narrative rather than a focused explanation
const narrativeLength = 400

var (
	definitionOpener = regexp.MustCompile(`(?i)^[^.!?\n]{1,60}\b(is|are|means|refers to|stands for)\b`)
	stepOpener       = regexp.MustCompile(`(?i)\bstep\s+\d+`)
)

// StructuralAnalyzer implements SegmentAnalyzer with markdown structure
// instead of a model: headings scope topics, lists and code blocks carry
// their types, prose is classified by shape. Deterministic and fully
// offline; plain text without markup degrades to paragraph candidates.
type StructuralAnalyzer struct {
	extractor driven.KeywordExtractor
	parser    parser.Parser
}

// NewStructuralAnalyzer creates a rule-based segment analyzer
func NewStructuralAnalyzer(extractor driven.KeywordExtractor) *StructuralAnalyzer {
	return &StructuralAnalyzer{
		extractor: extractor,
		parser:    goldmark.New().Parser(),
	}
}

// Analyze walks the span's markdown AST and emits one candidate per
// top-level block, with offsets into the span. Blocks under a heading
// share its topic, so the merger folds a section's paragraphs together.
func (a *StructuralAnalyzer) Analyze(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
	if strings.TrimSpace(span) == "" {
		return nil, nil
	}

	src := []byte(span)
	doc := a.parser.Parse(text.NewReader(src))

	var candidates []domain.CandidateSegment
	topic := ""
	sectionStart := -1 // heading offset awaiting its first block

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		start, stop, ok := nodeSpan(node, src)
		if !ok {
			continue
		}

		if heading, isHeading := node.(*ast.Heading); isHeading {
			topic = blockText(heading, src)
			if sectionStart < 0 {
				sectionStart = start
			}
			continue
		}

		// Classification and keywords look at the block alone; the
		// emitted span still absorbs a pending heading so section
		// titles stay inside their first chunk.
		content := span[start:stop]
		chunkType, confidence := classifyBlock(node, content)

		blockTopic := topic
		if blockTopic == "" {
			blockTopic = leadingWords(content, 8)
		}

		candidateStart := start
		if sectionStart >= 0 {
			candidateStart = sectionStart
			sectionStart = -1
		}

		candidates = append(candidates, domain.CandidateSegment{
			StartChar:   candidateStart,
			EndChar:     stop,
			ContentType: chunkType,
			Topic:       blockTopic,
			Confidence:  confidence,
			Keywords:    a.extractor.Extract(content, 5),
		})
	}

	return candidates, nil
}

// Model returns the rule-set name being used
func (a *StructuralAnalyzer) Model() string {
	return "structural-rules"
}

// Ping verifies the analyzer is available. The rule engine always is.
func (a *StructuralAnalyzer) Ping(ctx context.Context) error {
	return nil
}

// Close releases resources held by the analyzer
func (a *StructuralAnalyzer) Close() error {
	return nil
}

// classifyBlock maps an AST block to a chunk type and confidence
func classifyBlock(node ast.Node, content string) (domain.ChunkType, float64) {
	switch n := node.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return domain.ChunkTypeExample, structuralCodeConfidence
	case *ast.List:
		if n.IsOrdered() || stepOpener.MatchString(content) {
			return domain.ChunkTypeProcedure, structuralListConfidence
		}
		return domain.ChunkTypeList, structuralListConfidence
	case *ast.Paragraph:
		if stepOpener.MatchString(leadingWords(content, 4)) {
			return domain.ChunkTypeProcedure, structuralListConfidence
		}
		if definitionOpener.MatchString(content) {
			return domain.ChunkTypeDefinition, structuralDefinitionConfidence
		}
		if len(content) > narrativeLength {
			return domain.ChunkTypeNarrative, structuralNarrativeConfidence
		}
		return domain.ChunkTypeExplanation, structuralProseConfidence
	default:
		return domain.ChunkTypeMixed, structuralMixedConfidence
	}
}

// nodeSpan computes a block's byte span in the source by visiting the
// line segments of its leaf descendants. Container blocks such as lists
// carry no lines of their own.
func nodeSpan(node ast.Node, src []byte) (int, int, bool) {
	start, stop := -1, -1

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		if lines == nil || lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		if start < 0 || first.Start < start {
			start = first.Start
		}
		if last.Stop > stop {
			stop = last.Stop
		}
		return ast.WalkContinue, nil
	})

	if start < 0 || stop <= start || stop > len(src) {
		return 0, 0, false
	}
	return start, stop, true
}

// blockText reassembles a leaf block's source text from its line
// segments
func blockText(node ast.Node, src []byte) string {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}

// leadingWords returns the first n whitespace-separated words of text
func leadingWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
