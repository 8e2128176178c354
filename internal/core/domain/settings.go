package domain

import "time"

// AnalyzerProvider identifies the segment analyzer backend
type AnalyzerProvider string

const (
	AnalyzerProviderOpenAI     AnalyzerProvider = "openai"
	AnalyzerProviderAnthropic  AnalyzerProvider = "anthropic"
	AnalyzerProviderOllama     AnalyzerProvider = "ollama"
	AnalyzerProviderStructural AnalyzerProvider = "structural"
)

// RequiresAPIKey returns true if this provider requires an API key
func (p AnalyzerProvider) RequiresAPIKey() bool {
	switch p {
	case AnalyzerProviderOllama, AnalyzerProviderStructural:
		return false // Local, no API key needed
	default:
		return true
	}
}

// IsValid returns true if this is a known provider
func (p AnalyzerProvider) IsValid() bool {
	switch p {
	case AnalyzerProviderOpenAI, AnalyzerProviderAnthropic, AnalyzerProviderOllama, AnalyzerProviderStructural:
		return true
	default:
		return false
	}
}

// AnalyzerSettings configures the segment analyzer.
// This can be swapped at runtime via the service holder.
type AnalyzerSettings struct {
	Provider AnalyzerProvider `json:"provider"`
	Model    string           `json:"model"`
	APIKey   string           `json:"-"` // Never serialize to JSON
	BaseURL  string           `json:"base_url,omitempty"`

	// ContextBudget caps the number of tokens sent per analyzer call.
	// Zero means the adapter's default.
	ContextBudget int `json:"context_budget,omitempty"`
}

// IsConfigured returns true if analyzer settings are properly configured
func (a *AnalyzerSettings) IsConfigured() bool {
	if a.Provider == "" {
		return false
	}
	if a.Provider.RequiresAPIKey() && a.APIKey == "" {
		return false
	}
	return true
}

// Validate checks if AnalyzerSettings are valid
func (a *AnalyzerSettings) Validate() error {
	if a.Provider != "" && !a.Provider.IsValid() {
		return ErrInvalidProvider
	}
	return nil
}

// CacheSettings configures the analysis cache
type CacheSettings struct {
	// TTL bounds how long cached candidate lists stay valid
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the in-process cache size. Ignored by the
	// Redis adapter.
	MaxEntries int `json:"max_entries"`
}

// DefaultCacheSettings returns default cache configuration
func DefaultCacheSettings() CacheSettings {
	return CacheSettings{
		TTL:        24 * time.Hour,
		MaxEntries: 4096,
	}
}

// SegmenterSettings holds pipeline tuning knobs
type SegmenterSettings struct {
	// WindowSize is the target analysis window length in bytes
	WindowSize int `json:"window_size"`

	// WindowOverlap is the fraction of a window shared with its
	// successor, in [0, 1)
	WindowOverlap float64 `json:"window_overlap"`

	// MinWindowLength discards windows whose trimmed text is shorter
	MinWindowLength int `json:"min_window_length"`

	// LargeDocThreshold switches from whole-document analysis to
	// windowed analysis
	LargeDocThreshold int `json:"large_doc_threshold"`

	// Concurrency bounds parallel analyzer calls for windowed documents
	Concurrency int `json:"concurrency"`
}

// DefaultSegmenterSettings returns sensible pipeline defaults
func DefaultSegmenterSettings() SegmenterSettings {
	return SegmenterSettings{
		WindowSize:        800,
		WindowOverlap:     0.5,
		MinWindowLength:   100,
		LargeDocThreshold: 4000,
		Concurrency:       4,
	}
}
