package analytics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vk/orbitgraph/internal/ctxlog"
	"github.com/vk/orbitgraph/internal/graph"
	"github.com/vk/orbitgraph/internal/nodeid"
)

// Well-known identifiers of the transfer query.
const (
	You   = "YOU"
	Santa = "SAN"
)

// OrbitalTransfers returns the minimum number of orbital transfers needed to
// move from the body `from` orbits to the body `to` orbits.
func OrbitalTransfers(ctx context.Context, snap *graph.Snapshot, from, to string) (int, error) {
	path, err := TransferPath(ctx, snap, from, to)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// TransferPath returns the identifiers on one shortest route between the
// orbit targets of from and to, both ends included. Edges are walked in
// either direction.
func TransferPath(ctx context.Context, snap *graph.Snapshot, from, to string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "analytics.TransferPath")
	defer span.End()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	path, err := transferPath(ctx, snap, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("transfers", len(path)-1))
	ctxlog.FromContext(ctx).Debug("Transfer path found.", "from", from, "to", to, "path", path)
	return path, nil
}

func transferPath(ctx context.Context, snap *graph.Snapshot, from, to string) ([]string, error) {
	src, err := orbitTarget(snap, from)
	if err != nil {
		return nil, err
	}
	dst, err := orbitTarget(snap, to)
	if err != nil {
		return nil, err
	}
	if src == dst {
		return []string{snap.Name(src)}, nil
	}

	handles, err := shortestUndirected(ctx, snap, src, dst)
	if err != nil {
		return nil, err
	}
	if handles == nil {
		return nil, &NoPathError{From: snap.Name(src), To: snap.Name(dst)}
	}

	names := make([]string, len(handles))
	for i, h := range handles {
		names[i] = snap.Name(h)
	}
	return names, nil
}

// orbitTarget resolves identifier and takes one step along its first orbit
// edge, i.e. the earliest record naming identifier as the object.
func orbitTarget(snap *graph.Snapshot, identifier string) (nodeid.Handle, error) {
	h, ok := snap.Lookup(identifier)
	if !ok {
		return nodeid.Invalid, &NotFoundError{Identifier: identifier}
	}
	out, err := snap.Outgoing(h)
	if err != nil {
		return nodeid.Invalid, fmt.Errorf("reading orbit of %q: %w", identifier, err)
	}
	if len(out) == 0 {
		return nodeid.Invalid, &NotFoundError{Identifier: identifier, OrbitTarget: true}
	}
	return out[0].To, nil
}

// shortestUndirected runs a breadth-first search from src to dst ignoring
// edge direction. Every orbit edge has unit weight, so BFS order is distance
// order. It returns nil when dst is unreachable.
func shortestUndirected(ctx context.Context, snap *graph.Snapshot, src, dst nodeid.Handle) ([]nodeid.Handle, error) {
	parent := make([]nodeid.Handle, snap.NodeCount())
	for i := range parent {
		parent[i] = nodeid.Invalid
	}
	parent[src] = src
	queue := []nodeid.Handle{src}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue[0]
		queue = queue[1:]

		edges, err := snap.Neighbours(current)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			next := e.Other(current)
			if parent[next].Valid() {
				continue
			}
			parent[next] = current
			if next == dst {
				return unwind(parent, src, dst), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, nil
}

func unwind(parent []nodeid.Handle, src, dst nodeid.Handle) []nodeid.Handle {
	var path []nodeid.Handle
	for h := dst; h != src; h = parent[h] {
		path = append(path, h)
	}
	path = append(path, src)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
