package domain

import "sync"

// RuntimeConfig tracks which capabilities are available at runtime.
// This is determined at startup and can be updated dynamically when the
// analyzer or cache is swapped. Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	CacheBackend string // "memory" or "redis"

	// Dynamic capability flags (updated when services change)
	analyzerAvailable bool
	cacheAvailable    bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(cacheBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		CacheBackend: cacheBackend,
	}
}

// AnalyzerAvailable returns whether a segment analyzer is available
func (c *RuntimeConfig) AnalyzerAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.analyzerAvailable
}

// CacheAvailable returns whether the analysis cache is available
func (c *RuntimeConfig) CacheAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cacheAvailable
}

// SetAnalyzerAvailable updates the analyzer availability flag
func (c *RuntimeConfig) SetAnalyzerAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyzerAvailable = available
}

// SetCacheAvailable updates the cache availability flag
func (c *RuntimeConfig) SetCacheAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheAvailable = available
}

// CanSegment returns true if segmentation requests can be served
func (c *RuntimeConfig) CanSegment() bool {
	return c.AnalyzerAvailable()
}

// CanReuseAnalyses returns true if analyzer results can be cached
func (c *RuntimeConfig) CanReuseAnalyses() bool {
	return c.CacheAvailable()
}
