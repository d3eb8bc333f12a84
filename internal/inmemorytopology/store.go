package inmemorytopology

import (
	"context"
	"fmt"

	"github.com/vk/orbitgraph/internal/nodeid"
	"github.com/vk/orbitgraph/internal/topologystore"
)

// Store implements topologystore.Store with per-node adjacency slices.
// Writes are expected to be serialised by the caller.
type Store struct {
	out    [][]topologystore.Edge // Key: source handle
	in     [][]topologystore.Edge // Key: destination handle
	edges  int
	frozen bool
}

// New creates a new, empty in-memory topology store.
func New() *Store {
	return &Store{}
}

var _ topologystore.Store = (*Store)(nil)

// AddNode allocates the next handle.
func (s *Store) AddNode(ctx context.Context) (nodeid.Handle, error) {
	if s.frozen {
		return nodeid.Invalid, topologystore.ErrFrozen
	}
	h := nodeid.Handle(len(s.out))
	s.out = append(s.out, nil)
	s.in = append(s.in, nil)
	return h, nil
}

// AddEdge records a directed edge between two known nodes.
func (s *Store) AddEdge(ctx context.Context, from, to nodeid.Handle, weight int) error {
	if s.frozen {
		return topologystore.ErrFrozen
	}
	if !s.has(from) {
		return fmt.Errorf("edge source %s: %w", from, topologystore.ErrUnknownNode)
	}
	if !s.has(to) {
		return fmt.Errorf("edge destination %s: %w", to, topologystore.ErrUnknownNode)
	}

	e := topologystore.Edge{From: from, To: to, Weight: weight}
	s.out[from] = append(s.out[from], e)
	s.in[to] = append(s.in[to], e)
	s.edges++
	return nil
}

// Freeze makes the store read-only.
func (s *Store) Freeze() {
	s.frozen = true
}

// Frozen reports whether the store is read-only.
func (s *Store) Frozen() bool {
	return s.frozen
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int {
	return len(s.out)
}

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int {
	return s.edges
}

// Outgoing returns the edges leaving h.
func (s *Store) Outgoing(h nodeid.Handle) ([]topologystore.Edge, error) {
	if !s.has(h) {
		return nil, fmt.Errorf("node %s: %w", h, topologystore.ErrUnknownNode)
	}
	edges := s.out[h]
	return edges[:len(edges):len(edges)], nil
}

// Incoming returns the edges arriving at h.
func (s *Store) Incoming(h nodeid.Handle) ([]topologystore.Edge, error) {
	if !s.has(h) {
		return nil, fmt.Errorf("node %s: %w", h, topologystore.ErrUnknownNode)
	}
	edges := s.in[h]
	return edges[:len(edges):len(edges)], nil
}

func (s *Store) has(h nodeid.Handle) bool {
	return h.Valid() && h.Index() < len(s.out)
}
