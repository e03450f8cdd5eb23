// Package cluster partitions records into similarity clusters.
//
// The Engine evaluates an Oracle over every unordered record pair on a bounded
// worker pool. Clustering starts only after every pair has been judged: the
// accepted-edge set is complete and frozen before Build computes connected
// components, because transitive closure needs the full edge set.
package cluster

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/steveyegge/simclust/internal/pairs"
)

// DefaultBatchSize is the number of pairs handed to a worker at once.
const DefaultBatchSize = 4096

// progressInterval bounds how often evaluation progress is logged.
const progressInterval = 2 * time.Second

// Oracle decides whether two records are similar enough to share a cluster.
//
// Implementations must be pure, deterministic and symmetric:
// Accept(a, b) == Accept(b, a) for every a and b, from any goroutine.
type Oracle interface {
	Accept(a, b string) bool
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(a, b string) bool

// Accept calls f(a, b).
func (f OracleFunc) Accept(a, b string) bool {
	return f(a, b)
}

// Stats describes one clustering run.
type Stats struct {
	Records        int           `json:"records"`
	PairsEvaluated int           `json:"pairs_evaluated"`
	Accepted       int           `json:"accepted"`
	Clusters       int           `json:"clusters"`
	Singletons     int           `json:"singletons"`
	Workers        int           `json:"workers"`
	Duration       time.Duration `json:"duration"`
}

// Result is the outcome of Engine.Cluster.
type Result struct {
	Partition Partition
	Accepted  []pairs.Pair
	Stats     Stats
}

// Engine runs the parallel pair evaluation and the clustering that follows it.
type Engine struct {
	oracle    Oracle
	workers   int
	batchSize int
	logger    *zap.Logger
	progress  *rate.Sometimes
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of concurrent evaluation workers.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		e.workers = n
	}
}

// WithBatchSize sets how many pairs a worker evaluates per task.
// Values below 1 select DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = DefaultBatchSize
		}
		e.batchSize = n
	}
}

// WithLogger sets the logger used for progress and summary messages.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine returns an Engine that judges pairs with oracle.
func NewEngine(oracle Oracle, opts ...Option) *Engine {
	e := &Engine{
		oracle:    oracle,
		workers:   runtime.NumCPU(),
		batchSize: DefaultBatchSize,
		logger:    zap.NewNop(),
		progress:  &rate.Sometimes{Interval: progressInterval},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// batch is one unit of work. It is owned by exactly one worker until the pool
// drains; the candidate pairs are dropped as soon as they are judged.
type batch struct {
	pairs    []pairs.Pair
	accepted []pairs.Pair
}

// Evaluate judges every pair of records and returns the accepted ones in
// lexicographic pair order. It returns only after all workers have finished.
func (e *Engine) Evaluate(ctx context.Context, records []string) ([]pairs.Pair, error) {
	if e.oracle == nil {
		return nil, fmt.Errorf("cluster engine has no oracle")
	}

	total := pairs.Count(len(records))
	gen := pairs.New(len(records))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	var batches []*batch
	for {
		if err := gctx.Err(); err != nil {
			break
		}
		chunk := gen.NextBatch(make([]pairs.Pair, 0, e.batchSize))
		if len(chunk) == 0 {
			break
		}

		b := &batch{pairs: chunk}
		batches = append(batches, b)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, p := range b.pairs {
				if e.oracle.Accept(records[p.I], records[p.J]) {
					b.accepted = append(b.accepted, p)
				}
			}

			n := done.Add(int64(len(b.pairs)))
			b.pairs = nil
			e.progress.Do(func() {
				e.logger.Debug("evaluating pairs",
					zap.Int64("done", n),
					zap.Int("total", total))
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating pairs: %w", err)
	}
	// The loop above stops early without a worker error when ctx is
	// cancelled between batches.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluating pairs: %w", err)
	}

	count := 0
	for _, b := range batches {
		count += len(b.accepted)
	}
	accepted := make([]pairs.Pair, 0, count)
	for _, b := range batches {
		accepted = append(accepted, b.accepted...)
	}
	return accepted, nil
}

// Cluster evaluates every pair of records and partitions them into clusters.
func (e *Engine) Cluster(ctx context.Context, records []string) (*Result, error) {
	start := time.Now()

	e.logger.Debug("clustering records",
		zap.Int("records", len(records)),
		zap.Int("pairs", pairs.Count(len(records))),
		zap.Int("workers", e.workers),
		zap.Int("batch_size", e.batchSize))

	accepted, err := e.Evaluate(ctx, records)
	if err != nil {
		return nil, err
	}

	partition := Build(len(records), accepted)

	result := &Result{
		Partition: partition,
		Accepted:  accepted,
		Stats: Stats{
			Records:        len(records),
			PairsEvaluated: pairs.Count(len(records)),
			Accepted:       len(accepted),
			Clusters:       partition.Len(),
			Singletons:     partition.Singletons(),
			Workers:        e.workers,
			Duration:       time.Since(start),
		},
	}

	e.logger.Info("clustering completed",
		zap.Int("records", result.Stats.Records),
		zap.Int("accepted", result.Stats.Accepted),
		zap.Int("clusters", result.Stats.Clusters),
		zap.Int("singletons", result.Stats.Singletons),
		zap.Duration("duration", result.Stats.Duration))

	return result, nil
}
