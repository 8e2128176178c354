package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/window"
)

// AnalyzeFunc analyzes one window's text and returns candidates with
// offsets relative to the window. The pool rebases them to the document.
type AnalyzeFunc func(ctx context.Context, span string) ([]domain.CandidateSegment, error)

// Pool fans window analyses out over a bounded set of goroutines.
// Windows are independent, so completion order is arbitrary; callers
// must re-sort the collected candidates before merging.
type Pool struct {
	concurrency int
	logger      *slog.Logger
}

// PoolConfig holds configuration for the pool.
type PoolConfig struct {
	Concurrency int // Number of concurrent analyzer calls
	Logger      *slog.Logger
}

// NewPool creates a window-analysis pool.
func NewPool(cfg PoolConfig) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Pool{
		concurrency: concurrency,
		logger:      logger,
	}
}

// Analyze runs analyze over every window and returns all candidates
// rebased to document-absolute offsets. A window whose analysis fails
// contributes nothing; partial segmentation is preferred over total
// failure. Cancelling ctx stops dispatching pending windows but never
// interrupts an analysis already underway.
func (p *Pool) Analyze(ctx context.Context, windows []window.Window, analyze AnalyzeFunc) []domain.CandidateSegment {
	if len(windows) == 0 {
		return nil
	}

	jobs := make(chan window.Window)

	var mu sync.Mutex
	var results []domain.CandidateSegment

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			logger := p.logger.With("worker_id", workerID)

			for w := range jobs {
				segments, err := analyze(ctx, w.Text)
				if err != nil {
					logger.Warn("window analysis failed, skipping window",
						"window_start", w.Start,
						"window_end", w.End,
						"error", err,
					)
					continue
				}

				rebased := make([]domain.CandidateSegment, 0, len(segments))
				for _, seg := range segments {
					rebased = append(rebased, seg.Rebase(w.Start))
				}

				mu.Lock()
				results = append(results, rebased...)
				mu.Unlock()
			}
		}(i)
	}

	for _, w := range windows {
		select {
		case <-ctx.Done():
			p.logger.Info("window dispatch cancelled", "remaining_windows", len(windows))
		case jobs <- w:
			continue
		}
		break
	}
	close(jobs)

	wg.Wait()
	return results
}
