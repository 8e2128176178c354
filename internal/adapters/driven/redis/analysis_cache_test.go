package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// setupTestCache creates a test Redis client and AnalysisCache
func setupTestCache(t *testing.T, ttl time.Duration) (*AnalysisCache, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewAnalysisCache(client, ttl)

	return cache, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testSegments() []domain.CandidateSegment {
	return []domain.CandidateSegment{
		{
			StartChar:   0,
			EndChar:     120,
			ContentType: domain.ChunkTypeExplanation,
			Topic:       "Cache behavior",
			Confidence:  0.85,
			Keywords:    []string{"cache", "ttl"},
		},
		{
			StartChar:   120,
			EndChar:     200,
			ContentType: domain.ChunkTypeList,
			Topic:       "Tuning knobs",
			Confidence:  0.7,
		},
	}
}

func TestNewAnalysisCache(t *testing.T) {
	cache, _, cleanup := setupTestCache(t, time.Hour)
	defer cleanup()

	if cache == nil {
		t.Fatal("expected non-nil AnalysisCache")
	}
	if cache.ttl != time.Hour {
		t.Errorf("expected ttl 1h, got %v", cache.ttl)
	}
}

func TestNewAnalysisCacheDefaultTTL(t *testing.T) {
	cache, _, cleanup := setupTestCache(t, 0)
	defer cleanup()

	if cache.ttl != domain.DefaultCacheSettings().TTL {
		t.Errorf("expected default ttl, got %v", cache.ttl)
	}
}

func TestAnalysisCacheSetAndGet(t *testing.T) {
	cache, _, cleanup := setupTestCache(t, time.Hour)
	defer cleanup()

	ctx := context.Background()
	span := "Some analyzed span of document text."
	want := testSegments()

	if err := cache.Set(ctx, span, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.Get(ctx, span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].StartChar != want[i].StartChar || got[i].Topic != want[i].Topic {
			t.Errorf("segment %d roundtrip mismatch: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestAnalysisCacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestCache(t, time.Hour)
	defer cleanup()

	_, ok, err := cache.Get(context.Background(), "never cached")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected a cache miss")
	}
}

func TestAnalysisCacheExpiry(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t, time.Minute)
	defer cleanup()

	ctx := context.Background()
	span := "expiring span"
	if err := cache.Set(ctx, span, testSegments()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected entry to expire")
	}
}

func TestAnalysisCacheCorruptEntryIsMiss(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t, time.Hour)
	defer cleanup()

	span := "corrupted span"
	mr.Set(spanKey(span), "not json at all")

	_, ok, err := cache.Get(context.Background(), span)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected corrupt entry to read as a miss")
	}
}

func TestAnalysisCacheUnavailable(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t, time.Hour)
	defer cleanup()

	mr.Close()

	_, _, err := cache.Get(context.Background(), "span")
	if !errors.Is(err, domain.ErrCacheUnavailable) {
		t.Errorf("expected ErrCacheUnavailable, got %v", err)
	}

	if err := cache.Set(context.Background(), "span", testSegments()); !errors.Is(err, domain.ErrCacheUnavailable) {
		t.Errorf("expected ErrCacheUnavailable, got %v", err)
	}

	if err := cache.Ping(context.Background()); !errors.Is(err, domain.ErrCacheUnavailable) {
		t.Errorf("expected ErrCacheUnavailable, got %v", err)
	}
}

func TestAnalysisCachePing(t *testing.T) {
	cache, _, cleanup := setupTestCache(t, time.Hour)
	defer cleanup()

	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSpanKeyStable(t *testing.T) {
	if spanKey("abc") != spanKey("abc") {
		t.Error("expected identical spans to share a key")
	}
	if spanKey("abc") == spanKey("abd") {
		t.Error("expected different spans to get different keys")
	}
}
