package window

import (
	"strings"
)

// Config configures window generation.
type Config struct {
	// Size is the target window length in bytes
	Size int

	// Overlap is the fraction of a window shared with its successor,
	// in [0, 1)
	Overlap float64

	// MinLength discards windows whose trimmed text is shorter
	MinLength int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Size:      800,
		Overlap:   0.5,
		MinLength: 100,
	}
}

// Window is a contiguous slice of a document handed to the analyzer.
// Text shares the document's backing array; generating windows copies
// nothing.
type Window struct {
	// Text is the window content
	Text string

	// Start is the byte offset of the window in the document
	Start int

	// End is the byte offset one past the window's last byte
	End int
}

// Generator produces overlapping analysis windows over a document.
type Generator struct {
	config Config
}

// NewGenerator creates a window generator. Zero-value config fields
// fall back to defaults.
func NewGenerator(config Config) *Generator {
	defaults := DefaultConfig()
	if config.Size <= 0 {
		config.Size = defaults.Size
	}
	if config.Overlap <= 0 || config.Overlap >= 1 {
		config.Overlap = defaults.Overlap
	}
	if config.MinLength <= 0 {
		config.MinLength = defaults.MinLength
	}
	return &Generator{config: config}
}

// Windows returns the analysis windows for document in order of start
// offset. Windows whose trimmed text is shorter than the configured
// minimum are dropped; a mostly-whitespace document can yield none.
func (g *Generator) Windows(document string) []Window {
	if len(document) == 0 {
		return nil
	}

	step := int(float64(g.config.Size) * (1 - g.config.Overlap))
	if step < 1 {
		step = 1
	}

	var windows []Window
	for start := 0; start < len(document); start += step {
		end := start + g.config.Size
		if end > len(document) {
			end = len(document)
		}

		text := document[start:end]
		if len(strings.TrimSpace(text)) >= g.config.MinLength {
			windows = append(windows, Window{Text: text, Start: start, End: end})
		}

		if end >= len(document) {
			break
		}
	}
	return windows
}
