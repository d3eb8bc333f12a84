package graph

import (
	"context"
	"errors"
	"sync"
)

// ErrNothingPublished is returned by Wait when the broadcast was failed with
// a nil error.
var ErrNothingPublished = errors.New("no snapshot was published")

// Broadcast is a one-shot, multi-reader hand-off of a Snapshot. The first call
// to Publish or Fail wins; later calls are ignored. Any number of goroutines
// may Wait, before or after the outcome is settled.
type Broadcast struct {
	once sync.Once
	done chan struct{}
	snap *Snapshot
	err  error
}

// NewBroadcast returns an unsettled broadcast.
func NewBroadcast() *Broadcast {
	return &Broadcast{done: make(chan struct{})}
}

// Publish settles the broadcast with a snapshot. It reports whether this call
// settled it.
func (b *Broadcast) Publish(s *Snapshot) bool {
	return b.settle(s, nil)
}

// Fail settles the broadcast with an error so that every reader gives up.
func (b *Broadcast) Fail(err error) bool {
	if err == nil {
		err = ErrNothingPublished
	}
	return b.settle(nil, err)
}

func (b *Broadcast) settle(s *Snapshot, err error) bool {
	settled := false
	b.once.Do(func() {
		b.snap, b.err = s, err
		settled = true
		close(b.done)
	})
	return settled
}

// Done is closed once the broadcast is settled.
func (b *Broadcast) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the broadcast is settled or ctx is done.
func (b *Broadcast) Wait(ctx context.Context) (*Snapshot, error) {
	select {
	case <-b.done:
		return b.snap, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
