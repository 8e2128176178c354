package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Verify interface compliance
var _ driven.AnalysisCache = (*AnalysisCache)(nil)

// AnalysisCache implements driven.AnalysisCache with an in-process LRU.
// Entries expire on the configured TTL and the oldest entries are
// evicted once the size bound is hit. Suitable for single binaries; use
// the Redis adapter when several processes share analyses.
type AnalysisCache struct {
	lru *expirable.LRU[string, []domain.CandidateSegment]
}

// NewAnalysisCache creates a new in-memory AnalysisCache.
// Non-positive settings fields fall back to the defaults.
func NewAnalysisCache(settings domain.CacheSettings) *AnalysisCache {
	defaults := domain.DefaultCacheSettings()
	if settings.TTL <= 0 {
		settings.TTL = defaults.TTL
	}
	if settings.MaxEntries <= 0 {
		settings.MaxEntries = defaults.MaxEntries
	}

	return &AnalysisCache{
		lru: expirable.NewLRU[string, []domain.CandidateSegment](settings.MaxEntries, nil, settings.TTL),
	}
}

// Get retrieves cached segments for a span
func (c *AnalysisCache) Get(ctx context.Context, span string) ([]domain.CandidateSegment, bool, error) {
	segments, ok := c.lru.Get(spanKey(span))
	if !ok {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached slice
	out := make([]domain.CandidateSegment, len(segments))
	copy(out, segments)
	return out, true, nil
}

// Set stores segments for a span
func (c *AnalysisCache) Set(ctx context.Context, span string, segments []domain.CandidateSegment) error {
	stored := make([]domain.CandidateSegment, len(segments))
	copy(stored, segments)
	c.lru.Add(spanKey(span), stored)
	return nil
}

// Ping verifies the cache is available. An in-process cache always is.
func (c *AnalysisCache) Ping(ctx context.Context) error {
	return nil
}

// Close drops all entries
func (c *AnalysisCache) Close() error {
	c.lru.Purge()
	return nil
}

// Len returns the number of cached spans
func (c *AnalysisCache) Len() int {
	return c.lru.Len()
}

// spanKey derives the cache key for a span's content
func spanKey(span string) string {
	sum := sha256.Sum256([]byte(span))
	return hex.EncodeToString(sum[:])
}
