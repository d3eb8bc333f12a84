package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/orbitgraph/internal/analytics"
	"github.com/vk/orbitgraph/internal/builder"
	"github.com/vk/orbitgraph/internal/ctxlog"
	"github.com/vk/orbitgraph/internal/graph"
	"github.com/vk/orbitgraph/internal/orbit"
	"github.com/vk/orbitgraph/internal/registry"
	"github.com/vk/orbitgraph/internal/source"
	"github.com/vk/orbitgraph/internal/telemetry"
)

// Option customises an Engine.
type Option func(*Engine)

// WithWorkers bounds the ancestor-count worker pool. Zero selects the
// analytics default.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithTransfer sets the identifiers of the transfer query. Empty values keep
// the defaults, analytics.You and analytics.Santa.
func WithTransfer(from, to string) Option {
	return func(e *Engine) {
		if from != "" {
			e.from = from
		}
		if to != "" {
			e.to = to
		}
	}
}

// WithMetrics records pipeline and query metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine holds the settings shared by every run. It keeps no per-run state,
// so one Engine may serve concurrent runs.
type Engine struct {
	workers int
	from    string
	to      string
	metrics *telemetry.Metrics
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		from: analytics.You,
		to:   analytics.Santa,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a successful build. Each query carries its own
// error.
type Result struct {
	Nodes int
	Edges int

	AncestorCount int
	AncestorErr   error

	From         string
	To           string
	Transfers    int
	TransferPath []string
	TransfersErr error
}

// Run builds the graph from src and answers both queries. The returned error
// is non-nil only when the build fails, in which case no query runs.
func (e *Engine) Run(ctx context.Context, src source.Source) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Pipeline starting.", "from", e.from, "to", e.to, "workers", e.workers)

	reg := registry.New(registry.WithMetrics(e.metrics))
	bc := graph.NewBroadcast()
	b := builder.New(reg, builder.WithBroadcast(bc), builder.WithMetrics(e.metrics))

	res := &Result{From: e.from, To: e.to}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.AncestorCount, res.AncestorErr = e.ancestors(ctx, bc)
	}()
	go func() {
		defer wg.Done()
		res.TransferPath, res.TransfersErr = e.transfers(ctx, bc)
		if res.TransfersErr == nil {
			res.Transfers = len(res.TransferPath) - 1
		}
	}()

	records := make(chan orbit.Orbit)
	parser := orbit.NewParser()
	var snap *graph.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return builder.Produce(gctx, src, parser, records)
	})
	g.Go(func() error {
		s, err := b.Build(gctx, records)
		snap = s
		return err
	})
	if err := g.Wait(); err != nil {
		bc.Fail(err)
		wg.Wait()
		logger.Error("Pipeline failed during build.", "lines", parser.Lines(), "error", err)
		return nil, err
	}

	for _, id := range snap.Conflicts() {
		logger.Warn("Object orbits more than one body; the first recorded orbit is used.", "object", id)
	}
	res.Nodes = snap.NodeCount()
	res.Edges = snap.EdgeCount()

	wg.Wait()
	logger.Info("Pipeline finished.",
		"lines", parser.Lines(),
		"nodes", res.Nodes,
		"edges", res.Edges,
		"ancestor_count", res.AncestorCount,
		"transfers", res.Transfers,
		"ancestor_error", errString(res.AncestorErr),
		"transfers_error", errString(res.TransfersErr),
	)
	return res, nil
}

func (e *Engine) ancestors(ctx context.Context, bc *graph.Broadcast) (int, error) {
	ctx = ctxlog.With(ctx, "stage", "ancestors")
	snap, err := bc.Wait(ctx)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	n, err := analytics.AncestorCount(ctx, snap, analytics.WithWorkers(e.workers))
	e.metrics.QueryFinished(telemetry.QueryAncestorCount, time.Since(start), err)
	return n, err
}

func (e *Engine) transfers(ctx context.Context, bc *graph.Broadcast) ([]string, error) {
	ctx = ctxlog.With(ctx, "stage", "transfers")
	snap, err := bc.Wait(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	path, err := analytics.TransferPath(ctx, snap, e.from, e.to)
	e.metrics.QueryFinished(telemetry.QueryTransfers, time.Since(start), err)
	if err != nil {
		var nf *analytics.NotFoundError
		if errors.As(err, &nf) {
			ctxlog.FromContext(ctx).Debug("Transfer query skipped.", "identifier", nf.Identifier, "error", err)
		}
	}
	return path, err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
