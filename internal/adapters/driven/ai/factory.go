package ai

import (
	"fmt"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/custodia-labs/segmenta-core/internal/keywords"
)

// defaultOllamaBaseURL is the OpenAI-compatible endpoint of a local
// Ollama instance
const defaultOllamaBaseURL = "http://localhost:11434/v1"

// Ensure Factory implements AnalyzerFactory
var _ driven.AnalyzerFactory = (*Factory)(nil)

// Factory creates segment analyzers based on configuration
type Factory struct{}

// NewFactory creates a new analyzer factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateAnalyzer creates a segment analyzer from settings
func (f *Factory) CreateAnalyzer(settings *domain.AnalyzerSettings) (driven.SegmentAnalyzer, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AnalyzerProviderOpenAI:
		return NewOpenAIAnalyzer(settings.APIKey, settings.Model, settings.BaseURL, settings.ContextBudget)
	case domain.AnalyzerProviderOllama:
		baseURL := settings.BaseURL
		if baseURL == "" {
			baseURL = defaultOllamaBaseURL
		}
		// Ollama speaks the OpenAI chat API and needs no key
		return NewOpenAIAnalyzer("", settings.Model, baseURL, settings.ContextBudget)
	case domain.AnalyzerProviderStructural:
		return NewStructuralAnalyzer(keywords.NewExtractor()), nil
	case domain.AnalyzerProviderAnthropic:
		return NewAnthropicAnalyzer(settings.APIKey, settings.Model)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// Placeholder constructor - will be replaced with an actual implementation

func NewAnthropicAnalyzer(apiKey, model string) (driven.SegmentAnalyzer, error) {
	// TODO: Implement Anthropic analyzer adapter
	return nil, fmt.Errorf("Anthropic analyzer adapter not yet implemented")
}
