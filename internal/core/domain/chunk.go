package domain

// ChunkType classifies the kind of content a segment holds
type ChunkType string

const (
	ChunkTypeProcedure   ChunkType = "procedure"
	ChunkTypeExplanation ChunkType = "explanation"
	ChunkTypeExample     ChunkType = "example"
	ChunkTypeDefinition  ChunkType = "definition"
	ChunkTypeList        ChunkType = "list"
	ChunkTypeNarrative   ChunkType = "narrative"
	ChunkTypeMixed       ChunkType = "mixed"
	ChunkTypeFragment    ChunkType = "fragment"
)

// IsValid returns true if this is a known chunk type
func (t ChunkType) IsValid() bool {
	switch t {
	case ChunkTypeProcedure, ChunkTypeExplanation, ChunkTypeExample, ChunkTypeDefinition,
		ChunkTypeList, ChunkTypeNarrative, ChunkTypeMixed, ChunkTypeFragment:
		return true
	default:
		return false
	}
}

// ParseChunkType maps an analyzer-reported type string to a ChunkType.
// Unknown values normalize to ChunkTypeMixed rather than failing the call.
func ParseChunkType(s string) ChunkType {
	t := ChunkType(s)
	if t.IsValid() {
		return t
	}
	return ChunkTypeMixed
}

// CandidateSegment is a single segment proposed by an analyzer.
// Offsets are byte offsets relative to the span that was analyzed,
// not to the full document.
type CandidateSegment struct {
	StartChar   int       `json:"start_char"`
	EndChar     int       `json:"end_char"`
	ContentType ChunkType `json:"content_type"`
	Topic       string    `json:"topic"`
	Confidence  float64   `json:"confidence"`
	Keywords    []string  `json:"keywords,omitempty"`
}

// Length returns the segment's span length in bytes
func (s CandidateSegment) Length() int {
	return s.EndChar - s.StartChar
}

// Overlap returns the number of bytes this segment shares with other,
// or 0 when the spans are disjoint.
func (s CandidateSegment) Overlap(other CandidateSegment) int {
	lo := max(s.StartChar, other.StartChar)
	hi := min(s.EndChar, other.EndChar)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Clamp bounds the segment to [0, limit) offsets. Segments that become
// empty after clamping are reported via the second return value.
func (s CandidateSegment) Clamp(limit int) (CandidateSegment, bool) {
	if s.StartChar < 0 {
		s.StartChar = 0
	}
	if s.EndChar > limit {
		s.EndChar = limit
	}
	if s.Confidence < 0 {
		s.Confidence = 0
	}
	if s.Confidence > 1 {
		s.Confidence = 1
	}
	return s, s.EndChar > s.StartChar
}

// Rebase shifts the segment's offsets by the origin of the span it was
// produced from, yielding document-absolute offsets.
func (s CandidateSegment) Rebase(origin int) CandidateSegment {
	s.StartChar += origin
	s.EndChar += origin
	return s
}

// DocumentChunk is a final, materialized chunk of a document.
// Offsets are byte offsets into the original document and Content is
// exactly the document slice at [StartPosition, EndPosition).
type DocumentChunk struct {
	Content       string    `json:"content"`
	StartPosition int       `json:"start_position"`
	EndPosition   int       `json:"end_position"`
	ChunkType     ChunkType `json:"chunk_type"`
	Topic         string    `json:"topic"`
	Confidence    float64   `json:"confidence"`
	Keywords      []string  `json:"keywords,omitempty"`
}

// Length returns the chunk's span length in bytes
func (c DocumentChunk) Length() int {
	return c.EndPosition - c.StartPosition
}

// SegmentOptions controls a single segmentation request
type SegmentOptions struct {
	// MaxChunkSize is the upper bound on chunk content length in bytes.
	// Chunks over the bound are split; an atomic unit that cannot be
	// split any further is emitted oversized rather than rejected.
	MaxChunkSize int `json:"max_chunk_size"`

	// MinConfidence drops chunks below the threshold after
	// materialization. Zero keeps everything.
	MinConfidence float64 `json:"min_confidence"`
}

// DefaultSegmentOptions returns the options used when a caller passes
// zero values
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		MaxChunkSize:  1000,
		MinConfidence: 0,
	}
}
