package inmemorytopology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/orbitgraph/internal/nodeid"
	"github.com/vk/orbitgraph/internal/topologystore"
)

func TestAddNode_DenseHandles(t *testing.T) {
	s := New()
	ctx := context.Background()

	for want := 0; want < 5; want++ {
		h, err := s.AddNode(ctx)
		require.NoError(t, err)
		assert.Equal(t, nodeid.Handle(want), h)
	}
	assert.Equal(t, 5, s.NodeCount())
}

func TestAddEdge(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.AddNode(ctx)
	b, _ := s.AddNode(ctx)

	// b orbits a
	err := s.AddEdge(ctx, b, a, 1)
	require.NoError(t, err)

	out, err := s.Outgoing(b)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, topologystore.Edge{From: b, To: a, Weight: 1}, out[0])

	in, err := s.Incoming(a)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, b, in[0].Other(a))

	none, err := s.Outgoing(a)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Equal(t, 1, s.EdgeCount())
}

func TestAddEdge_KeepsParallelEdges(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.AddNode(ctx)
	b, _ := s.AddNode(ctx)

	require.NoError(t, s.AddEdge(ctx, b, a, 1))
	require.NoError(t, s.AddEdge(ctx, b, a, 1))

	out, err := s.Outgoing(b)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 2, s.EdgeCount())
}

func TestAddEdge_UnknownNode(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.AddNode(ctx)

	err := s.AddEdge(ctx, a, nodeid.Handle(7), 1)
	require.ErrorIs(t, err, topologystore.ErrUnknownNode)

	err = s.AddEdge(ctx, nodeid.Invalid, a, 1)
	require.ErrorIs(t, err, topologystore.ErrUnknownNode)

	_, err = s.Outgoing(nodeid.Handle(3))
	require.ErrorIs(t, err, topologystore.ErrUnknownNode)
	assert.Zero(t, s.EdgeCount())
}

func TestFreeze_RejectsWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.AddNode(ctx)
	b, _ := s.AddNode(ctx)

	s.Freeze()
	s.Freeze() // idempotent
	assert.True(t, s.Frozen())

	_, err := s.AddNode(ctx)
	require.ErrorIs(t, err, topologystore.ErrFrozen)
	err = s.AddEdge(ctx, a, b, 1)
	require.ErrorIs(t, err, topologystore.ErrFrozen)
	assert.Equal(t, 2, s.NodeCount())
}

func TestOutgoing_ReturnedSliceCannotGrowIntoStore(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.AddNode(ctx)
	b, _ := s.AddNode(ctx)
	c, _ := s.AddNode(ctx)
	require.NoError(t, s.AddEdge(ctx, b, a, 1))

	out, err := s.Outgoing(b)
	require.NoError(t, err)
	_ = append(out, topologystore.Edge{From: b, To: c, Weight: 1})

	require.NoError(t, s.AddEdge(ctx, b, c, 1))
	out, err = s.Outgoing(b)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, c, out[1].To)
}
