package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/orbitgraph/internal/inmemorytopology"
	"github.com/vk/orbitgraph/internal/nodeid"
	"github.com/vk/orbitgraph/internal/telemetry"
	"github.com/vk/orbitgraph/internal/topologystore"
)

func TestResolve_IsIdempotent(t *testing.T) {
	r := New()
	ctx := context.Background()

	first, err := r.Resolve(ctx, "COM")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.Resolve(ctx, "COM")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	other, err := r.Resolve(ctx, "B")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, r.Len())
}

func TestResolve_DenseHandlesInFirstSightingOrder(t *testing.T) {
	r := New()
	ctx := context.Background()

	for i, id := range []string{"COM", "B", "C", "B", "COM", "D"} {
		_, err := r.Resolve(ctx, id)
		require.NoError(t, err, "resolve #%d", i)
	}

	snap, err := r.Freeze()
	require.NoError(t, err)
	for want, id := range []string{"COM", "B", "C", "D"} {
		h, ok := snap.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, nodeid.Handle(want), h)
	}
}

func TestResolve_Errors(t *testing.T) {
	r := New()

	_, err := r.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyIdentifier)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Resolve(ctx, "COM")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, r.Len())
}

// TestResolve_ConcurrentSameNewIdentifier verifies that M goroutines racing to
// resolve one never-before-seen identifier all observe a single allocation.
func TestResolve_ConcurrentSameNewIdentifier(t *testing.T) {
	const callers = 64
	m := telemetry.New()
	r := New(WithMetrics(m))
	ctx := context.Background()

	handles := make([]nodeid.Handle, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			h, err := r.Resolve(ctx, "SAN")
			assert.NoError(t, err)
			handles[i] = h
		}(i)
	}
	close(start)
	wg.Wait()

	for i := range handles {
		assert.Equal(t, handles[0], handles[i], "caller %d saw a different handle", i)
	}
	assert.Equal(t, 1, r.Len())

	series, err := testutil.GatherAndCount(m.Gatherer(), "orbitgraph_nodes_resolved_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series, "both outcomes should have been observed")
}

// TestResolve_ConcurrentManyIdentifiers checks that interleaved resolutions of
// overlapping identifier sets never duplicate a handle.
func TestResolve_ConcurrentManyIdentifiers(t *testing.T) {
	const (
		workers     = 16
		identifiers = 200
	)
	r := New()
	ctx := context.Background()

	seen := make([]map[string]nodeid.Handle, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			seen[w] = make(map[string]nodeid.Handle, identifiers)
			for i := 0; i < identifiers; i++ {
				// Each worker walks the identifiers in a different order.
				id := fmt.Sprintf("body-%d", (i*(w+1))%identifiers)
				h, err := r.Resolve(ctx, id)
				if !assert.NoError(t, err) {
					return
				}
				seen[w][id] = h
			}
		}(w)
	}
	wg.Wait()

	snap, err := r.Freeze()
	require.NoError(t, err)
	distinct := make(map[nodeid.Handle]string)
	for _, m := range seen {
		for id, h := range m {
			want, ok := snap.Lookup(id)
			require.True(t, ok)
			assert.Equal(t, want, h, "identifier %s", id)
			if prev, dup := distinct[h]; dup {
				assert.Equal(t, prev, id, "handle %s shared by two identifiers", h)
			}
			distinct[h] = id
		}
	}
	assert.Equal(t, r.Len(), len(distinct))
	assert.Equal(t, snap.NodeCount(), r.Len())
}

func TestLink(t *testing.T) {
	r := New()
	ctx := context.Background()
	com, _ := r.Resolve(ctx, "COM")
	b, _ := r.Resolve(ctx, "B")

	require.NoError(t, r.Link(ctx, b, com, 1))

	err := r.Link(ctx, b, nodeid.Handle(99), 1)
	require.ErrorIs(t, err, topologystore.ErrUnknownNode)

	snap, err := r.Freeze()
	require.NoError(t, err)
	out, err := snap.Outgoing(b)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, com, out[0].To)
	assert.Equal(t, 1, snap.EdgeCount())
}

func TestFreeze(t *testing.T) {
	r := New()
	ctx := context.Background()
	com, _ := r.Resolve(ctx, "COM")

	snap, err := r.Freeze()
	require.NoError(t, err)
	again, err := r.Freeze()
	require.NoError(t, err)
	assert.Same(t, snap, again)

	_, err = r.Resolve(ctx, "B")
	require.ErrorIs(t, err, ErrRegistryFrozen)
	_, err = r.Resolve(ctx, "COM")
	require.ErrorIs(t, err, ErrRegistryFrozen)
	err = r.Link(ctx, com, com, 1)
	require.ErrorIs(t, err, ErrRegistryFrozen)
}

func TestResolve_StoreWrittenElsewhere(t *testing.T) {
	ctx := context.Background()
	store := inmemorytopology.New()
	_, err := store.AddNode(ctx)
	require.NoError(t, err)

	r := New(WithStore(store))
	_, err = r.Resolve(ctx, "COM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the registry")
}
