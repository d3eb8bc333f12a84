// Package source provides line producers that feed the orbit parser.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Source is a lazy, finite sequence of lines, consumed with the same
// Next/Err protocol as bufio.Scanner.
type Source interface {
	// Next advances to the next line. It returns false when the source is
	// exhausted or has failed; Err tells the two apart.
	Next() (string, bool)

	// Err returns the first non-EOF error encountered.
	Err() error
}

// Reader reads newline-separated lines from an io.Reader. A trailing "\r" is
// stripped from each line.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next line.
func (r *Reader) Next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return r.scanner.Text(), true
}

// Err reports read errors.
func (r *Reader) Err() error {
	return r.scanner.Err()
}

// File is a Reader over an opened file that must be closed by the caller.
type File struct {
	*Reader
	f *os.File
}

// Open opens the file at path for line reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening orbit input: %w", err)
	}
	return &File{Reader: NewReader(f), f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Lines is an in-memory Source.
type Lines struct {
	lines []string
	next  int
}

// FromLines returns a Source that yields lines in order.
func FromLines(lines ...string) *Lines {
	return &Lines{lines: lines}
}

// Next returns the next line.
func (l *Lines) Next() (string, bool) {
	if l.next >= len(l.lines) {
		return "", false
	}
	line := l.lines[l.next]
	l.next++
	return line, true
}

// Err always returns nil.
func (l *Lines) Err() error {
	return nil
}
