package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s Source) []string {
	t.Helper()
	var got []string
	for {
		line, ok := s.Next()
		if !ok {
			return got
		}
		got = append(got, line)
	}
}

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader("COM)B\r\nB)C\n\nC)D"))

	assert.Equal(t, []string{"COM)B", "B)C", "", "C)D"}, drain(t, r))
	require.NoError(t, r.Err())
}

func TestReader_Error(t *testing.T) {
	boom := errors.New("disk on fire")
	r := NewReader(iotest.ErrReader(boom))

	assert.Empty(t, drain(t, r))
	require.ErrorIs(t, r.Err(), boom)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbits.txt")
	require.NoError(t, os.WriteFile(path, []byte("COM)B\nB)C\n"), 0600))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"COM)B", "B)C"}, drain(t, f))
	require.NoError(t, f.Err())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromLines(t *testing.T) {
	l := FromLines("a", "b")
	assert.Equal(t, []string{"a", "b"}, drain(t, l))
	assert.NoError(t, l.Err())
}
