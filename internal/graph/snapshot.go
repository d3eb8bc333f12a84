package graph

import (
	"errors"
	"fmt"

	"github.com/vk/orbitgraph/internal/nodeid"
	"github.com/vk/orbitgraph/internal/topologystore"
)

// ErrNotFrozen is returned when a Snapshot is requested over a topology that
// can still be written.
var ErrNotFrozen = errors.New("topology must be frozen before it can be snapshotted")

// Snapshot is the immutable, fully built orbit graph.
type Snapshot struct {
	topology topologystore.Store
	ids      map[string]nodeid.Handle
	names    []string
}

// NewSnapshot wraps a frozen topology and its identifier table. names[h] is
// the identifier of handle h. names is copied, so the caller may keep
// appending to its own slice.
func NewSnapshot(topology topologystore.Store, names []string) (*Snapshot, error) {
	if !topology.Frozen() {
		return nil, ErrNotFrozen
	}
	if len(names) != topology.NodeCount() {
		return nil, fmt.Errorf("identifier table has %d entries for %d nodes", len(names), topology.NodeCount())
	}

	s := &Snapshot{
		topology: topology,
		ids:      make(map[string]nodeid.Handle, len(names)),
		names:    make([]string, len(names)),
	}
	copy(s.names, names)
	for i, name := range s.names {
		if _, dup := s.ids[name]; dup {
			return nil, fmt.Errorf("identifier %q is mapped to more than one node", name)
		}
		s.ids[name] = nodeid.Handle(i)
	}
	return s, nil
}

// Lookup returns the handle of an identifier.
func (s *Snapshot) Lookup(identifier string) (nodeid.Handle, bool) {
	h, ok := s.ids[identifier]
	return h, ok
}

// Name returns the identifier of a handle, or "" if the handle is unknown.
func (s *Snapshot) Name(h nodeid.Handle) string {
	if !h.Valid() || h.Index() >= len(s.names) {
		return ""
	}
	return s.names[h]
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int {
	return s.topology.NodeCount()
}

// EdgeCount returns the number of edges.
func (s *Snapshot) EdgeCount() int {
	return s.topology.EdgeCount()
}

// Outgoing returns the directed edges leaving h, in input order.
func (s *Snapshot) Outgoing(h nodeid.Handle) ([]topologystore.Edge, error) {
	return s.topology.Outgoing(h)
}

// Neighbours returns every edge touching h, regardless of direction:
// outgoing edges first, then incoming ones. Use Edge.Other to step across.
func (s *Snapshot) Neighbours(h nodeid.Handle) ([]topologystore.Edge, error) {
	out, err := s.topology.Outgoing(h)
	if err != nil {
		return nil, err
	}
	in, err := s.topology.Incoming(h)
	if err != nil {
		return nil, err
	}
	all := make([]topologystore.Edge, 0, len(out)+len(in))
	all = append(all, out...)
	return append(all, in...), nil
}

// Conflicts lists the identifiers that orbit more than one distinct target.
// Such input is outside the forest shape the analytics assume but is not
// rejected.
func (s *Snapshot) Conflicts() []string {
	var conflicts []string
	for i := range s.names {
		out, _ := s.topology.Outgoing(nodeid.Handle(i))
		if len(out) < 2 {
			continue
		}
		for _, e := range out[1:] {
			if e.To != out[0].To {
				conflicts = append(conflicts, s.names[i])
				break
			}
		}
	}
	return conflicts
}
