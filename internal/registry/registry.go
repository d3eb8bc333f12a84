package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/orbitgraph/internal/graph"
	"github.com/vk/orbitgraph/internal/inmemorytopology"
	"github.com/vk/orbitgraph/internal/nodeid"
	"github.com/vk/orbitgraph/internal/telemetry"
	"github.com/vk/orbitgraph/internal/topologystore"
)

var (
	// ErrRegistryFrozen is returned by Resolve and Link after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrEmptyIdentifier is returned when resolving "".
	ErrEmptyIdentifier = errors.New("object identifier cannot be empty")
)

// Option customises a Registry.
type Option func(*Registry)

// WithStore replaces the default in-memory topology store. The store must be
// empty and must not be written to by anyone else.
func WithStore(s topologystore.Store) Option {
	return func(r *Registry) {
		r.topology = s
	}
}

// WithMetrics counts resolutions and committed edges.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// Registry maps identifiers to handles and owns the topology store.
type Registry struct {
	mu       sync.Mutex
	topology topologystore.Store
	ids      map[string]nodeid.Handle
	names    []string // names[h] is the identifier of handle h
	snapshot *graph.Snapshot
	metrics  *telemetry.Metrics
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		ids: make(map[string]nodeid.Handle),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.topology == nil {
		r.topology = inmemorytopology.New()
	}
	return r
}

// Resolve returns the handle of identifier, allocating the next free one on
// first sighting. Concurrent calls for the same new identifier all observe the
// single handle allocated by whichever call took the lock first.
func (r *Registry) Resolve(ctx context.Context, identifier string) (nodeid.Handle, error) {
	if identifier == "" {
		return nodeid.Invalid, ErrEmptyIdentifier
	}
	if err := ctx.Err(); err != nil {
		return nodeid.Invalid, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot != nil {
		return nodeid.Invalid, ErrRegistryFrozen
	}
	if h, ok := r.ids[identifier]; ok {
		r.metrics.NodeResolved(false)
		return h, nil
	}

	h, err := r.topology.AddNode(ctx)
	if err != nil {
		return nodeid.Invalid, fmt.Errorf("allocating node for %q: %w", identifier, err)
	}
	if h.Index() != len(r.names) {
		// The store handed out a handle we did not expect; the table would
		// no longer be dense.
		return nodeid.Invalid, fmt.Errorf("store allocated %s, expected #%d: topology was written outside the registry", h, len(r.names))
	}
	r.ids[identifier] = h
	r.names = append(r.names, identifier)
	r.metrics.NodeResolved(true)
	return h, nil
}

// Link commits the edge from -> to.
func (r *Registry) Link(ctx context.Context, from, to nodeid.Handle, weight int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot != nil {
		return ErrRegistryFrozen
	}
	if err := r.topology.AddEdge(ctx, from, to, weight); err != nil {
		return fmt.Errorf("linking %s -> %s: %w", from, to, err)
	}
	r.metrics.EdgeCommitted()
	return nil
}

// Len returns the number of distinct identifiers seen so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

// Freeze ends the build phase and returns the snapshot. Further calls return
// the same snapshot.
func (r *Registry) Freeze() (*graph.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot != nil {
		return r.snapshot, nil
	}

	r.topology.Freeze()
	snap, err := graph.NewSnapshot(r.topology, r.names)
	if err != nil {
		return nil, fmt.Errorf("snapshotting registry: %w", err)
	}
	r.snapshot = snap
	return snap, nil
}
