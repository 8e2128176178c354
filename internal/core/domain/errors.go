package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidProvider indicates an unknown analyzer provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrAnalyzerNotConfigured indicates no segment analyzer is available
	ErrAnalyzerNotConfigured = errors.New("analyzer not configured")

	// ErrAnalyzerFormat indicates the analyzer response could not be parsed
	// into the expected segment structure
	ErrAnalyzerFormat = errors.New("analyzer response malformed")

	// ErrAnalyzerTransport indicates the analyzer could not be reached or
	// timed out
	ErrAnalyzerTransport = errors.New("analyzer transport failure")

	// ErrCacheUnavailable indicates the analysis cache could not be reached
	ErrCacheUnavailable = errors.New("analysis cache unavailable")

	// ErrServiceUnavailable indicates a required service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
