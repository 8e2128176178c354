package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// MockAnalysisCache is a mock implementation of AnalysisCache for testing
type MockAnalysisCache struct {
	mu       sync.RWMutex
	entries  map[string][]domain.CandidateSegment
	failNext bool
	hits     int
	misses   int
}

// NewMockAnalysisCache creates a new MockAnalysisCache
func NewMockAnalysisCache() *MockAnalysisCache {
	return &MockAnalysisCache{
		entries: make(map[string][]domain.CandidateSegment),
	}
}

func (m *MockAnalysisCache) Get(ctx context.Context, span string) ([]domain.CandidateSegment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext {
		m.failNext = false
		return nil, false, fmt.Errorf("mock cache: %w", domain.ErrCacheUnavailable)
	}

	segs, ok := m.entries[span]
	if !ok {
		m.misses++
		return nil, false, nil
	}
	m.hits++
	out := make([]domain.CandidateSegment, len(segs))
	copy(out, segs)
	return out, true, nil
}

func (m *MockAnalysisCache) Set(ctx context.Context, span string, segments []domain.CandidateSegment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext {
		m.failNext = false
		return fmt.Errorf("mock cache: %w", domain.ErrCacheUnavailable)
	}

	stored := make([]domain.CandidateSegment, len(segments))
	copy(stored, segments)
	m.entries[span] = stored
	return nil
}

func (m *MockAnalysisCache) Ping(ctx context.Context) error {
	return nil
}

func (m *MockAnalysisCache) Close() error {
	return nil
}

// Helper methods for testing

// SetFailNext makes the next Get or Set fail
func (m *MockAnalysisCache) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}

// Hits returns the number of cache hits so far
func (m *MockAnalysisCache) Hits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}

// Misses returns the number of cache misses so far
func (m *MockAnalysisCache) Misses() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.misses
}

// Len returns the number of cached spans
func (m *MockAnalysisCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
