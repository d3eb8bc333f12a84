package graph

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast_PublishReachesAllReaders(t *testing.T) {
	// --- Arrange ---
	names := []string{"COM"}
	snap, err := NewSnapshot(buildTopology(t, names, nil), names)
	require.NoError(t, err)

	b := NewBroadcast()
	const readers = 8
	got := make([]*Snapshot, readers)
	var wg sync.WaitGroup
	wg.Add(readers)

	// --- Act ---
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := b.Wait(context.Background())
			assert.NoError(t, err)
			got[i] = s
		}(i)
	}
	require.True(t, b.Publish(snap))
	wg.Wait()

	// --- Assert ---
	for i := range got {
		assert.Same(t, snap, got[i], "reader %d saw a different snapshot", i)
	}

	// Late readers see the same value.
	late, err := b.Wait(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, late)
}

func TestBroadcast_FirstOutcomeWins(t *testing.T) {
	names := []string{"COM"}
	snap, err := NewSnapshot(buildTopology(t, names, nil), names)
	require.NoError(t, err)

	b := NewBroadcast()
	boom := errors.New("boom")
	require.True(t, b.Fail(boom))
	assert.False(t, b.Publish(snap))
	assert.False(t, b.Fail(errors.New("second")))

	s, err := b.Wait(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, s)
}

func TestBroadcast_FailWithNil(t *testing.T) {
	b := NewBroadcast()
	b.Fail(nil)

	_, err := b.Wait(context.Background())
	require.ErrorIs(t, err, ErrNothingPublished)
}

func TestBroadcast_WaitHonoursContext(t *testing.T) {
	b := NewBroadcast()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-b.Done():
		t.Fatal("broadcast must stay unsettled")
	default:
	}
}
