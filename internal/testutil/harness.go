package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/orbitgraph/internal/graph"
	"github.com/vk/orbitgraph/internal/orbit"
	"github.com/vk/orbitgraph/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates files (relative path to content) under a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// SnapshotOf builds a frozen snapshot from orbit records without the
// concurrent builder, one record at a time.
func SnapshotOf(t *testing.T, lines ...string) *graph.Snapshot {
	t.Helper()

	ctx := context.Background()
	reg := registry.New()
	for _, line := range lines {
		o, err := orbit.Parse(line)
		require.NoError(t, err)
		object, err := reg.Resolve(ctx, o.Object)
		require.NoError(t, err)
		target, err := reg.Resolve(ctx, o.Target)
		require.NoError(t, err)
		require.NoError(t, reg.Link(ctx, object, target, 1))
	}
	snap, err := reg.Freeze()
	require.NoError(t, err)
	return snap
}
