package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/vk/orbitgraph/internal/testutil"
)

// SetupAppTest creates a new app instance with debug logging captured in a
// SafeBuffer. The report goes to the returned bytes.Buffer.
func SetupAppTest(t *testing.T, cfg *Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	out := &bytes.Buffer{}
	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logBuffer, cfg)

	t.Cleanup(func() {
		if os.Getenv("ORBITGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
