package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.AnalysisCache = (*AnalysisCache)(nil)

// Key prefix for cached analyzer results
const analysisPrefix = "analysis:"

// AnalysisCache implements driven.AnalysisCache using Redis.
// Entries are keyed by a hash of the span text and expire via Redis TTL,
// so identical windows at different document offsets share one entry.
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a new Redis-backed AnalysisCache.
// A non-positive ttl falls back to the default cache settings.
func NewAnalysisCache(client *redis.Client, ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheSettings().TTL
	}
	return &AnalysisCache{client: client, ttl: ttl}
}

// Get retrieves cached segments for a span
func (c *AnalysisCache) Get(ctx context.Context, span string) ([]domain.CandidateSegment, bool, error) {
	data, err := c.client.Get(ctx, spanKey(span)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	var segments []domain.CandidateSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		// A corrupt entry counts as a miss; the analyzer rewrites it
		return nil, false, nil
	}

	return segments, true, nil
}

// Set stores segments for a span with the configured TTL
func (c *AnalysisCache) Set(ctx context.Context, span string, segments []domain.CandidateSegment) error {
	data, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("failed to marshal segments: %w", err)
	}

	if err := c.client.Set(ctx, spanKey(span), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	return nil
}

// Ping verifies the cache is available
func (c *AnalysisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Close releases the underlying client
func (c *AnalysisCache) Close() error {
	return c.client.Close()
}

// spanKey derives the cache key for a span's content
func spanKey(span string) string {
	sum := sha256.Sum256([]byte(span))
	return analysisPrefix + hex.EncodeToString(sum[:])
}
