package window

import (
	"strings"
	"testing"
)

func TestWindowsEmptyDocument(t *testing.T) {
	g := NewGenerator(DefaultConfig())

	if got := g.Windows(""); got != nil {
		t.Errorf("expected nil for empty document, got %v", got)
	}
}

func TestWindowsSingleWindow(t *testing.T) {
	g := NewGenerator(DefaultConfig())

	doc := strings.Repeat("a", 500)
	windows := g.Windows(doc)

	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0].Start != 0 || windows[0].End != 500 {
		t.Errorf("expected span [0,500), got [%d,%d)", windows[0].Start, windows[0].End)
	}
	if windows[0].Text != doc {
		t.Error("expected window text to equal document")
	}
}

func TestWindowsOverlapAndStep(t *testing.T) {
	g := NewGenerator(Config{Size: 800, Overlap: 0.5, MinLength: 100})

	doc := strings.Repeat("b", 2000)
	windows := g.Windows(doc)

	// Starts at 0, 400, 800, 1200, 1600
	if len(windows) != 5 {
		t.Fatalf("expected 5 windows, got %d", len(windows))
	}
	for i, w := range windows {
		wantStart := i * 400
		if w.Start != wantStart {
			t.Errorf("window %d: expected start %d, got %d", i, wantStart, w.Start)
		}
		wantEnd := wantStart + 800
		if wantEnd > 2000 {
			wantEnd = 2000
		}
		if w.End != wantEnd {
			t.Errorf("window %d: expected end %d, got %d", i, wantEnd, w.End)
		}
		if w.Text != doc[w.Start:w.End] {
			t.Errorf("window %d: text does not match span", i)
		}
	}

	// Consecutive windows share half their length
	if windows[0].End-windows[1].Start != 400 {
		t.Errorf("expected 400 bytes of overlap, got %d", windows[0].End-windows[1].Start)
	}
}

func TestWindowsDropsLowSignalWindows(t *testing.T) {
	g := NewGenerator(Config{Size: 100, Overlap: 0.5, MinLength: 40})

	// 100 bytes of text, then 300 bytes of whitespace, then 100 of text
	doc := strings.Repeat("x", 100) + strings.Repeat(" ", 300) + strings.Repeat("y", 100)
	windows := g.Windows(doc)

	for _, w := range windows {
		if len(strings.TrimSpace(w.Text)) < 40 {
			t.Errorf("window [%d,%d) should have been dropped", w.Start, w.End)
		}
	}

	// The all-whitespace middle must not produce windows
	for _, w := range windows {
		if w.Start >= 150 && w.End <= 350 {
			t.Errorf("expected no window inside the whitespace run, got [%d,%d)", w.Start, w.End)
		}
	}
}

func TestWindowsWhitespaceOnlyDocument(t *testing.T) {
	g := NewGenerator(DefaultConfig())

	if got := g.Windows(strings.Repeat(" \n\t", 500)); got != nil {
		t.Errorf("expected no windows for whitespace document, got %d", len(got))
	}
}

func TestWindowsRestartable(t *testing.T) {
	g := NewGenerator(DefaultConfig())

	doc := strings.Repeat("c", 1200)
	first := g.Windows(doc)
	second := g.Windows(doc)

	if len(first) != len(second) {
		t.Fatalf("expected same window count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("window %d differs between runs", i)
		}
	}
}

func TestNewGeneratorAppliesDefaults(t *testing.T) {
	g := NewGenerator(Config{})

	if g.config.Size != 800 {
		t.Errorf("expected default size 800, got %d", g.config.Size)
	}
	if g.config.Overlap != 0.5 {
		t.Errorf("expected default overlap 0.5, got %f", g.config.Overlap)
	}
	if g.config.MinLength != 100 {
		t.Errorf("expected default min length 100, got %d", g.config.MinLength)
	}
}
