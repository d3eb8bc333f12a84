// Package topologystore defines the interface for storing and retrieving the
// structure of the orbit graph: its nodes and the weighted, directed edges
// between them.
//
// # Why Topology Store Exists
//
// The topology store isolates the **graph structure** (which bodies exist and
// which body orbits which) from the **identity mapping** (which object
// identifier owns which handle) managed by the node registry.
//
// This separation provides several architectural benefits:
//   - **Clarity:** Traversals (analytics) only ever see handles and edges
//   - **Single writer:** All mutation is funnelled through the registry, which owns the lock
//   - **Testability:** Structure can be validated independently of identifiers
//   - **Flexibility:** A different backend can be swapped in behind the same interface
//
// # Lifecycle and Usage
//
// The topology store is:
//  1. **Created** empty once per pipeline run
//  2. **Populated** by the registry during the build phase (one node per new identifier, one edge per record)
//  3. **Frozen** when the input is exhausted
//  4. **Read-only** while analytics traverse it
//  5. **Discarded** when the run ends
package topologystore

import (
	"context"
	"errors"

	"github.com/vk/orbitgraph/internal/nodeid"
)

var (
	// ErrFrozen is returned by mutating calls after Freeze.
	ErrFrozen = errors.New("topology is frozen")

	// ErrUnknownNode is returned when a handle was never allocated by the store.
	ErrUnknownNode = errors.New("node not found in topology")
)

// Edge is a directed, weighted link between two nodes.
type Edge struct {
	From   nodeid.Handle
	To     nodeid.Handle
	Weight int
}

// Other returns the endpoint of e that is not h. It is used when edges are
// walked without regard to direction.
func (e Edge) Other(h nodeid.Handle) nodeid.Handle {
	if e.From == h {
		return e.To
	}
	return e.From
}

// Store is the interface for managing the topology of the orbit graph.
//
// # Thread-Safety Requirements
//
// Implementations are NOT required to synchronise writes: the node registry
// is the single writer and serialises every call under its own lock. Once
// Freeze has returned, all read methods MUST be safe to call from any number
// of goroutines without further coordination.
type Store interface {
	// AddNode allocates the next dense handle.
	//
	// Returns ErrFrozen after Freeze.
	AddNode(ctx context.Context) (nodeid.Handle, error)

	// AddEdge records the directed edge from -> to.
	//
	// Both handles must have been returned by AddNode, otherwise
	// ErrUnknownNode is returned. Parallel edges are kept; every call adds
	// exactly one edge.
	AddEdge(ctx context.Context, from, to nodeid.Handle, weight int) error

	// Freeze makes the store read-only. It is idempotent.
	Freeze()

	// Frozen reports whether Freeze has been called.
	Frozen() bool

	// NodeCount returns the number of allocated handles. Handles are
	// 0..NodeCount()-1.
	NodeCount() int

	// EdgeCount returns the number of edges.
	EdgeCount() int

	// Outgoing returns the edges leaving h in insertion order.
	//
	// The returned slice is owned by the store and MUST NOT be modified.
	Outgoing(h nodeid.Handle) ([]Edge, error)

	// Incoming returns the edges arriving at h in insertion order.
	//
	// The returned slice is owned by the store and MUST NOT be modified.
	Incoming(h nodeid.Handle) ([]Edge, error)
}
