package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// MockSegmentAnalyzer is a mock implementation of SegmentAnalyzer for testing.
// Unscripted spans get a single whole-span segment so pipeline tests have
// full coverage by default.
type MockSegmentAnalyzer struct {
	mu        sync.Mutex
	model     string
	scripted  map[string][]domain.CandidateSegment
	failures  int
	failWith  error
	pingErr   error
	calls     []string
	closed    bool
}

// NewMockSegmentAnalyzer creates a new MockSegmentAnalyzer
func NewMockSegmentAnalyzer() *MockSegmentAnalyzer {
	return &MockSegmentAnalyzer{
		model:    "mock-analyzer",
		scripted: make(map[string][]domain.CandidateSegment),
	}
}

func (m *MockSegmentAnalyzer) Analyze(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, span)

	if m.failures > 0 {
		m.failures--
		if m.failWith != nil {
			return nil, m.failWith
		}
		return nil, fmt.Errorf("mock analyzer: %w", domain.ErrAnalyzerTransport)
	}

	if segs, ok := m.scripted[span]; ok {
		out := make([]domain.CandidateSegment, len(segs))
		copy(out, segs)
		return out, nil
	}

	// Default: one segment covering the whole span. The constant topic
	// makes overlapping window results merge downstream.
	return []domain.CandidateSegment{
		{
			StartChar:   0,
			EndChar:     len(span),
			ContentType: domain.ChunkTypeExplanation,
			Topic:       "mock analysis",
			Confidence:  0.75,
		},
	}, nil
}

func (m *MockSegmentAnalyzer) Model() string {
	return m.model
}

func (m *MockSegmentAnalyzer) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingErr
}

func (m *MockSegmentAnalyzer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Helper methods for testing

// Script registers a canned response for an exact span
func (m *MockSegmentAnalyzer) Script(span string, segments []domain.CandidateSegment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted[span] = segments
}

// FailNext makes the next n calls fail with a transport error
func (m *MockSegmentAnalyzer) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
	m.failWith = nil
}

// FailNextWith makes the next n calls fail with err
func (m *MockSegmentAnalyzer) FailNextWith(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
	m.failWith = err
}

// SetPingError makes Ping return err
func (m *MockSegmentAnalyzer) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

// Calls returns the spans received so far
func (m *MockSegmentAnalyzer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Analyze calls so far
func (m *MockSegmentAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Closed reports whether Close was called
func (m *MockSegmentAnalyzer) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
