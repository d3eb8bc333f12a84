package analytics

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/vk/orbitgraph/internal/ctxlog"
	"github.com/vk/orbitgraph/internal/graph"
	"github.com/vk/orbitgraph/internal/nodeid"
)

var tracer = otel.Tracer("github.com/vk/orbitgraph/internal/analytics")

// Option customises AncestorCount.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers bounds the number of goroutines that walk the graph. Values
// below 1 select the default, runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// AncestorCount returns the total number of direct and indirect orbits: for
// every node, the number of distinct other nodes reachable from it along
// orbit edges, summed over all nodes. A node never counts itself, even when
// a cycle leads back to it.
func AncestorCount(ctx context.Context, snap *graph.Snapshot, opts ...Option) (int, error) {
	ctx, span := tracer.Start(ctx, "analytics.AncestorCount")
	defer span.End()

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	nodes := snap.NodeCount()
	workers := o.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, nodes))
	span.SetAttributes(attribute.Int("nodes", nodes), attribute.Int("workers", workers))

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Counting ancestors.", "nodes", nodes, "workers", workers)

	var total atomic.Int64
	jobs := make(chan nodeid.Handle)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < nodes; i++ {
			select {
			case jobs <- nodeid.Handle(i):
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			walk := newWalker(snap)
			for h := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				n, err := walk.reachable(h)
				if err != nil {
					return fmt.Errorf("walking from %q: %w", snap.Name(h), err)
				}
				total.Add(int64(n))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	sum := int(total.Load())
	span.SetAttributes(attribute.Int("ancestors", sum))
	logger.Debug("Ancestor count finished.", "total", sum)
	return sum, nil
}

// walker is a per-goroutine depth-first traversal. Visited marks are stamped
// with an epoch so that the mark slice is reused across start nodes without
// clearing.
type walker struct {
	snap  *graph.Snapshot
	mark  []uint32
	epoch uint32
	stack []nodeid.Handle
}

func newWalker(snap *graph.Snapshot) *walker {
	return &walker{
		snap: snap,
		mark: make([]uint32, snap.NodeCount()),
	}
}

// reachable counts the nodes reachable from start, excluding start.
func (w *walker) reachable(start nodeid.Handle) (int, error) {
	w.epoch++
	w.mark[start] = w.epoch
	w.stack = append(w.stack[:0], start)

	count := 0
	for len(w.stack) > 0 {
		h := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		out, err := w.snap.Outgoing(h)
		if err != nil {
			return 0, err
		}
		for _, e := range out {
			if w.mark[e.To] == w.epoch {
				continue
			}
			w.mark[e.To] = w.epoch
			count++
			w.stack = append(w.stack, e.To)
		}
	}
	return count, nil
}
