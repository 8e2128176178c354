package splitter

import (
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// Strategy splits one oversized chunk into ordered sub-chunks.
// Implementations may return the chunk unchanged when it has no internal
// structure to cut at; an oversized result is accepted, never an error.
type Strategy interface {
	// Split breaks chunk into sub-chunks within maxSize where possible.
	// Sub-chunks inherit the parent's type, topic and keywords and carry
	// absolute document offsets.
	Split(chunk domain.DocumentChunk, maxSize int) []domain.DocumentChunk

	// Name returns the strategy name for logging/debugging.
	Name() string
}

// Registry dispatches chunks to a splitting strategy by chunk type.
// Types without a registered strategy use the fallback.
type Registry struct {
	mu         sync.RWMutex
	strategies map[domain.ChunkType]Strategy
	fallback   Strategy
}

// NewRegistry creates an empty registry with the given fallback strategy.
func NewRegistry(fallback Strategy) *Registry {
	return &Registry{
		strategies: make(map[domain.ChunkType]Strategy),
		fallback:   fallback,
	}
}

// Register binds a strategy to a chunk type, replacing any previous one.
func (r *Registry) Register(chunkType domain.ChunkType, strategy Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[chunkType] = strategy
}

// Get retrieves the strategy for a chunk type, or the fallback when none
// is registered.
func (r *Registry) Get(chunkType domain.ChunkType) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.strategies[chunkType]; ok {
		return s
	}
	return r.fallback
}

// Apply enforces the size bound over a chunk list, preserving order.
// Chunks at or under maxSize pass through untouched. maxSize <= 0 means
// no bound.
func (r *Registry) Apply(chunks []domain.DocumentChunk, maxSize int) []domain.DocumentChunk {
	if maxSize <= 0 {
		return chunks
	}

	out := make([]domain.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Content) <= maxSize {
			out = append(out, chunk)
			continue
		}

		subs := r.Get(chunk.ChunkType).Split(chunk, maxSize)
		if len(subs) == 0 {
			out = append(out, chunk)
			continue
		}
		out = append(out, subs...)
	}
	return out
}

// DefaultRegistry creates a registry with the built-in strategies:
// marker-based splitting for procedures, item accumulation for lists,
// sentence accumulation for everything else.
func DefaultRegistry() *Registry {
	sentence := NewSentenceStrategy()
	r := NewRegistry(sentence)
	r.Register(domain.ChunkTypeProcedure, NewProcedureStrategy(sentence))
	r.Register(domain.ChunkTypeList, NewListStrategy(sentence))
	return r
}

// subChunk materializes a sub-chunk from a relative span of the parent's
// content. Offsets are tightened to the trimmed extent so the sub-chunk
// content is exactly the document slice at its span. Returns false for
// whitespace-only spans.
func subChunk(parent domain.DocumentChunk, relStart, relEnd int, confidence float64) (domain.DocumentChunk, bool) {
	text := parent.Content[relStart:relEnd]
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.DocumentChunk{}, false
	}

	leftTrim := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	rightTrim := len(text) - len(strings.TrimRightFunc(text, unicode.IsSpace))

	return domain.DocumentChunk{
		Content:       trimmed,
		StartPosition: parent.StartPosition + relStart + leftTrim,
		EndPosition:   parent.StartPosition + relEnd - rightTrim,
		ChunkType:     parent.ChunkType,
		Topic:         parent.Topic,
		Confidence:    confidence,
		Keywords:      parent.Keywords,
	}, true
}
