package app

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/orbitgraph/internal/analytics"
	"github.com/vk/orbitgraph/internal/testutil"
)

func writeMap(t *testing.T, content string) string {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"orbits.txt": content})
	return filepath.Join(dir, "orbits.txt")
}

func TestRun_Report(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := validConfig()
	cfg.InputPath = writeMap(t, testutil.Text(testutil.TransferMap()))
	testApp, out, logs := SetupAppTest(t, &cfg)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Total orbits: 54\nOrbital transfers: 4\n", out.String())
	assert.Regexp(t, regexp.MustCompile(`run_id=[0-9a-f-]{36}`), logs.String())
}

func TestRun_QueryFailureIsReturned(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := validConfig()
	cfg.InputPath = writeMap(t, "COM)B\nB)C\n")
	testApp, out, logs := SetupAppTest(t, &cfg)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	var nf *analytics.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "YOU", nf.Identifier)
	assert.Contains(t, err.Error(), "orbital transfer query")

	// The ancestor count still reaches the report; the failure goes to the log.
	assert.Equal(t, "Total orbits: 3\n", out.String())
	assert.Contains(t, logs.String(), "Orbital transfer query failed.")
}

func TestRun_BuildFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := validConfig()
	cfg.InputPath = writeMap(t, "COM)B\nABC\n")
	testApp, out, _ := SetupAppTest(t, &cfg)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build orbit graph")
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, out.String())
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.InputPath = filepath.Join(t.TempDir(), "absent.txt")
	testApp, _, _ := SetupAppTest(t, &cfg)

	err := testApp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open orbit map")
}
