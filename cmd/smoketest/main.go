// smoketest runs the segmentation pipeline over embedded sample
// documents and prints the resulting chunks. It is a development tool
// for eyeballing pipeline behavior, not a product CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/custodia-labs/segmenta-core/internal/adapters/driven/ai"
	"github.com/custodia-labs/segmenta-core/internal/adapters/driven/memory"
	redisadapter "github.com/custodia-labs/segmenta-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/segmenta-core/internal/config"
	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/custodia-labs/segmenta-core/internal/core/services"
	"github.com/custodia-labs/segmenta-core/internal/keywords"
	"github.com/custodia-labs/segmenta-core/internal/runtime"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var version = "dev"

const sampleGuide = `# Restoring a node

A node restore brings a failed member back into the cluster without
losing acknowledged writes. The restore replays the replication log
from the last snapshot.

1. Stop the segmenta service on the failed node.
2. Copy the latest snapshot from the backup host.
3. Start the service with the restore flag set.
4. Watch the log until the node reports a healthy state.

Keep these limits in mind while the restore runs:

- replication lag above five minutes pauses reads
- snapshots older than a week are rejected
- only one restore may run per cluster at a time
`

const samplePlainText = `Connection pooling is the reuse of established database sessions across
requests. Opening a session costs a network round trip and an
authentication handshake, so busy services recycle them instead.

The pool has a hard cap. When every session is busy, new requests wait
in a queue rather than opening more connections, which protects the
database from connection storms during traffic spikes. Idle sessions
close after a configurable timeout to free server memory.
`

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("smoketest starting", "version", version, "provider", cfg.AnalyzerProvider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, stopping")
		cancel()
	}()

	// ===== Analyzer =====
	analyzer, err := ai.NewFactory().CreateAnalyzer(cfg.AnalyzerSettings())
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}
	if analyzer == nil {
		log.Fatalf("Analyzer not configured: set ANALYZER_PROVIDER (and ANALYZER_API_KEY where needed)")
	}

	// ===== Cache =====
	cache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	// ===== Wire services =====
	runtimeConfig := domain.NewRuntimeConfig(cfg.CacheBackend)
	svcHolder := runtime.NewServices(runtimeConfig)
	defer svcHolder.Close()

	if err := svcHolder.ValidateAndSetAnalyzer(ctx, analyzer); err != nil {
		log.Fatalf("Analyzer unavailable: %v", err)
	}
	if cache != nil {
		if err := svcHolder.ValidateAndSetCache(ctx, cache); err != nil {
			logger.Warn("cache unavailable, continuing without one", "error", err)
		}
	}

	segmenter := services.NewSegmentationService(svcHolder, keywords.NewExtractor(), cfg.SegmenterSettings(), logger)

	// ===== Run samples =====
	samples := []struct {
		name string
		text string
	}{
		{"markdown guide", sampleGuide},
		{"plain text", samplePlainText},
		{"large document", strings.Repeat(samplePlainText+"\n", 12)},
	}

	for _, sample := range samples {
		chunks, err := segmenter.Segment(ctx, sample.text, cfg.SegmentOptions())
		if err != nil {
			logger.Error("segmentation failed", "sample", sample.name, "error", err)
			continue
		}
		printChunks(sample.name, chunks)
	}
}

// buildCache constructs the configured cache backend, or nil for none
func buildCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.AnalysisCache, error) {
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("redis cache connected", "addr", cfg.RedisAddr)
		return redisadapter.NewAnalysisCache(client, cfg.CacheTTL), nil
	case "memory":
		return memory.NewAnalysisCache(cfg.CacheSettings()), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// printChunks renders a chunk table for one sample document
func printChunks(name string, chunks []domain.DocumentChunk) {
	fmt.Printf("\n=== %s: %d chunks ===\n", name, len(chunks))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SPAN\tTYPE\tCONF\tTOPIC\tCONTENT")
	for _, chunk := range chunks {
		fmt.Fprintf(w, "[%d,%d)\t%s\t%.2f\t%s\t%s\n",
			chunk.StartPosition, chunk.EndPosition,
			chunk.ChunkType, chunk.Confidence,
			truncateForDisplay(chunk.Topic, 30),
			truncateForDisplay(chunk.Content, 60),
		)
	}
	w.Flush()
}

// truncateForDisplay shortens s to at most n runes for table output
func truncateForDisplay(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// newLogger builds the process logger at the configured level
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
