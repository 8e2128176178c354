package runtime

import (
	"context"
	"sync"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// The segment analyzer and the analysis cache can be swapped at runtime
// without rebuilding the pipeline. Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Dynamic services (can be nil, updated at runtime)
	analyzer driven.SegmentAnalyzer
	cache    driven.AnalysisCache
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// Analyzer returns the current segment analyzer (may be nil)
func (s *Services) Analyzer() driven.SegmentAnalyzer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer
}

// Cache returns the current analysis cache (may be nil)
func (s *Services) Cache() driven.AnalysisCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache
}

// SetAnalyzer updates the segment analyzer.
// Closes the old analyzer if present. Updates config flags.
func (s *Services) SetAnalyzer(analyzer driven.SegmentAnalyzer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Close old analyzer
	if s.analyzer != nil {
		_ = s.analyzer.Close()
	}

	s.analyzer = analyzer
	s.config.SetAnalyzerAvailable(analyzer != nil)
}

// SetCache updates the analysis cache.
// Closes the old cache if present. Updates config flags.
func (s *Services) SetCache(cache driven.AnalysisCache) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Close old cache
	if s.cache != nil {
		_ = s.cache.Close()
	}

	s.cache = cache
	s.config.SetCacheAvailable(cache != nil)
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analyzer != nil {
		_ = s.analyzer.Close()
		s.analyzer = nil
	}
	if s.cache != nil {
		_ = s.cache.Close()
		s.cache = nil
	}

	s.config.SetAnalyzerAvailable(false)
	s.config.SetCacheAvailable(false)

	return nil
}

// ValidateAndSetAnalyzer validates connectivity before setting the analyzer
func (s *Services) ValidateAndSetAnalyzer(ctx context.Context, analyzer driven.SegmentAnalyzer) error {
	if analyzer == nil {
		s.SetAnalyzer(nil)
		return nil
	}

	// Validate connectivity
	if err := analyzer.Ping(ctx); err != nil {
		_ = analyzer.Close()
		return err
	}

	s.SetAnalyzer(analyzer)
	return nil
}

// ValidateAndSetCache validates connectivity before setting the cache
func (s *Services) ValidateAndSetCache(ctx context.Context, cache driven.AnalysisCache) error {
	if cache == nil {
		s.SetCache(nil)
		return nil
	}

	// Validate connectivity
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return err
	}

	s.SetCache(cache)
	return nil
}
