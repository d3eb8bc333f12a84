package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vk/orbitgraph/internal/ctxlog"
	"github.com/vk/orbitgraph/internal/graph"
	"github.com/vk/orbitgraph/internal/nodeid"
	"github.com/vk/orbitgraph/internal/orbit"
	"github.com/vk/orbitgraph/internal/registry"
	"github.com/vk/orbitgraph/internal/telemetry"
)

// EdgeWeight is the weight of every orbit edge.
const EdgeWeight = 1

var tracer = otel.Tracer("github.com/vk/orbitgraph/internal/builder")

// Option customises a Builder.
type Option func(*Builder)

// WithBroadcast publishes the finished snapshot to b.
func WithBroadcast(b *graph.Broadcast) Option {
	return func(bu *Builder) {
		bu.broadcast = b
	}
}

// WithMetrics records consumed records and the build duration.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(bu *Builder) {
		bu.metrics = m
	}
}

// Builder turns a record stream into a snapshot. A Builder is single-use:
// the registry it writes to is frozen at the end of Build.
type Builder struct {
	registry  *registry.Registry
	broadcast *graph.Broadcast
	metrics   *telemetry.Metrics
}

// New creates a builder that writes into reg.
func New(reg *registry.Registry, opts ...Option) *Builder {
	b := &Builder{registry: reg}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build consumes records until the channel is closed, then freezes the
// registry and publishes the snapshot.
func (b *Builder) Build(ctx context.Context, records <-chan orbit.Orbit) (*graph.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "builder.Build")
	defer span.End()

	ctx = ctxlog.With(ctx, "stage", "build")
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Graph build started.")
	start := time.Now()
	consumed := 0

	for {
		var (
			rec orbit.Orbit
			ok  bool
		)
		select {
		case <-ctx.Done():
			return nil, b.abort(ctx, span, cause(ctx, ctx.Err()))
		case rec, ok = <-records:
		}
		if !ok {
			break
		}

		consumed++
		b.metrics.RecordConsumed()
		if err := b.commit(ctx, rec); err != nil {
			if ctx.Err() != nil {
				return nil, b.abort(ctx, span, cause(ctx, ctx.Err()))
			}
			return nil, b.abort(ctx, span, fmt.Errorf("record %d (%s): %w", consumed, rec, err))
		}
	}

	snap, err := b.registry.Freeze()
	if err != nil {
		return nil, b.abort(ctx, span, err)
	}
	elapsed := time.Since(start)
	b.metrics.BuildFinished(elapsed)

	span.SetAttributes(
		attribute.Int("records", consumed),
		attribute.Int("nodes", snap.NodeCount()),
		attribute.Int("edges", snap.EdgeCount()),
	)
	if b.broadcast != nil {
		b.broadcast.Publish(snap)
	}
	logger.Info("Graph build finished.", "records", consumed, "nodes", snap.NodeCount(), "edges", snap.EdgeCount(), "duration", elapsed)
	return snap, nil
}

// commit resolves both endpoints of rec concurrently and links them.
func (b *Builder) commit(ctx context.Context, rec orbit.Orbit) error {
	logger := ctxlog.FromContext(ctx)

	// Each task gets its own copy of the record.
	objectRec, targetRec := rec, rec
	var objectH, targetH nodeid.Handle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := b.registry.Resolve(gctx, objectRec.Object)
		if err != nil {
			return fmt.Errorf("resolving object %q: %w", objectRec.Object, err)
		}
		objectH = h
		return nil
	})
	g.Go(func() error {
		h, err := b.registry.Resolve(gctx, targetRec.Target)
		if err != nil {
			return fmt.Errorf("resolving target %q: %w", targetRec.Target, err)
		}
		targetH = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := b.registry.Link(ctx, objectH, targetH, EdgeWeight); err != nil {
		return err
	}
	logger.Debug("Orbit committed.", "object", rec.Object, "target", rec.Target, "from", objectH, "to", targetH)
	return nil
}

func (b *Builder) abort(ctx context.Context, span trace.Span, err error) error {
	ctxlog.FromContext(ctx).Debug("Graph build aborted.", "error", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if b.broadcast != nil {
		b.broadcast.Fail(err)
	}
	return err
}

// cause replaces a bare cancellation error with the reason the context was
// cancelled, so that a parse error reported by the producer is not masked by
// the context.Canceled it caused downstream.
func cause(ctx context.Context, err error) error {
	if !errors.Is(err, context.Canceled) {
		return err
	}
	if c := context.Cause(ctx); c != nil && !errors.Is(c, context.Canceled) {
		return c
	}
	return err
}
