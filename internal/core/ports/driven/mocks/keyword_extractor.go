package mocks

import (
	"sync"
)

// MockKeywordExtractor is a mock implementation of KeywordExtractor for
// testing. Scripted texts return their canned keywords; everything else
// returns Default.
type MockKeywordExtractor struct {
	mu       sync.Mutex
	scripted map[string][]string
	calls    []string

	// Default is returned for unscripted texts
	Default []string
}

// NewMockKeywordExtractor creates a new MockKeywordExtractor
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{
		scripted: make(map[string][]string),
	}
}

func (m *MockKeywordExtractor) Extract(text string, topN int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, text)

	keywords, ok := m.scripted[text]
	if !ok {
		keywords = m.Default
	}
	if topN > 0 && len(keywords) > topN {
		keywords = keywords[:topN]
	}
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// Helper methods for testing

// Script registers canned keywords for an exact text
func (m *MockKeywordExtractor) Script(text string, keywords []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted[text] = keywords
}

// Calls returns the texts received so far
func (m *MockKeywordExtractor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
