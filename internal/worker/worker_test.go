package worker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/window"
)

func makeWindows(n, size int) []window.Window {
	windows := make([]window.Window, n)
	for i := range windows {
		start := i * size
		windows[i] = window.Window{
			Text:  fmt.Sprintf("window-%d", i),
			Start: start,
			End:   start + size,
		}
	}
	return windows
}

func TestPoolAnalyzeRebasesOffsets(t *testing.T) {
	pool := NewPool(PoolConfig{Concurrency: 4})
	windows := makeWindows(8, 100)

	analyze := func(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
		return []domain.CandidateSegment{
			{StartChar: 10, EndChar: 90, ContentType: domain.ChunkTypeExplanation, Confidence: 0.8},
		}, nil
	}

	results := pool.Analyze(context.Background(), windows, analyze)

	if len(results) != len(windows) {
		t.Fatalf("expected %d candidates, got %d", len(windows), len(results))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].StartChar < results[j].StartChar })
	for i, seg := range results {
		wantStart := i*100 + 10
		wantEnd := i*100 + 90
		if seg.StartChar != wantStart || seg.EndChar != wantEnd {
			t.Errorf("candidate %d: got [%d,%d), want [%d,%d)", i, seg.StartChar, seg.EndChar, wantStart, wantEnd)
		}
	}
}

func TestPoolAnalyzeSkipsFailedWindows(t *testing.T) {
	pool := NewPool(PoolConfig{Concurrency: 2})
	windows := makeWindows(6, 100)

	var mu sync.Mutex
	calls := 0
	analyze := func(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
		mu.Lock()
		calls++
		mu.Unlock()

		if span == "window-2" || span == "window-4" {
			return nil, errors.New("analysis failed")
		}
		return []domain.CandidateSegment{{StartChar: 0, EndChar: 100}}, nil
	}

	results := pool.Analyze(context.Background(), windows, analyze)

	if calls != len(windows) {
		t.Errorf("expected %d calls, got %d", len(windows), calls)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 candidates after 2 failures, got %d", len(results))
	}
}

func TestPoolAnalyzeEmptyWindows(t *testing.T) {
	pool := NewPool(PoolConfig{Concurrency: 2})

	results := pool.Analyze(context.Background(), nil, func(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
		t.Error("analyze should not be called with no windows")
		return nil, nil
	})

	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestPoolAnalyzeCancelledContext(t *testing.T) {
	pool := NewPool(PoolConfig{Concurrency: 1})
	windows := makeWindows(100, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	calls := 0
	results := pool.Analyze(ctx, windows, func(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return []domain.CandidateSegment{{StartChar: 0, EndChar: 100}}, nil
	})

	// With a cancelled context dispatch stops early; at most a handful
	// of windows already picked up by workers get processed.
	if calls == len(windows) {
		t.Error("expected dispatch to stop after cancellation")
	}
	if len(results) != calls {
		t.Errorf("expected %d results for %d completed windows", calls, calls)
	}
}

func TestPoolDefaultsConcurrency(t *testing.T) {
	pool := NewPool(PoolConfig{})
	if pool.concurrency != 1 {
		t.Errorf("expected concurrency 1, got %d", pool.concurrency)
	}
}

func TestPoolAnalyzeDeterministicAfterSort(t *testing.T) {
	analyze := func(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
		return []domain.CandidateSegment{
			{StartChar: 0, EndChar: 100, Topic: span, Confidence: 0.7},
		}, nil
	}

	windows := makeWindows(12, 100)

	var first []domain.CandidateSegment
	for run := 0; run < 5; run++ {
		pool := NewPool(PoolConfig{Concurrency: 6})
		results := pool.Analyze(context.Background(), windows, analyze)
		sort.Slice(results, func(i, j int) bool { return results[i].StartChar < results[j].StartChar })

		if run == 0 {
			first = results
			continue
		}
		if len(results) != len(first) {
			t.Fatalf("run %d: got %d candidates, want %d", run, len(results), len(first))
		}
		if !reflect.DeepEqual(results, first) {
			t.Fatalf("run %d: candidates differ from first run", run)
		}
	}
}
