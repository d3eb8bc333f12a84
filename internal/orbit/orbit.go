package orbit

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits the target from the object in a record line.
const Separator = ')'

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed orbit record")

// Orbit states that Object orbits Target, i.e. the directed edge Object -> Target.
type Orbit struct {
	Object string
	Target string
}

// String renders the record back in its line form.
func (o Orbit) String() string {
	return o.Target + string(Separator) + o.Object
}

// ParseError describes a rejected line. Line is 0 when the caller did not
// track positions.
type ParseError struct {
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q: %s", e.Line, ErrMalformed, e.Input, e.Reason)
	}
	return fmt.Sprintf("%s: %q: %s", ErrMalformed, e.Input, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Parse converts one line into an Orbit. The target is the text before the
// first `)` and the object is everything after it; anything the object
// grammar cannot consume is reported as residual text.
func Parse(line string) (Orbit, error) {
	if line == "" {
		return Orbit{}, &ParseError{Input: line, Reason: "empty line"}
	}

	target, rest, found := strings.Cut(line, string(Separator))
	if !found {
		return Orbit{}, &ParseError{Input: line, Reason: "missing ')' separator"}
	}
	if target == "" || strings.ContainsRune(target, '\n') {
		return Orbit{}, &ParseError{Input: line, Reason: "missing target identifier"}
	}

	object, residual := splitIdentifier(rest)
	if object == "" {
		return Orbit{}, &ParseError{Input: line, Reason: "missing object identifier"}
	}
	if residual != "" {
		return Orbit{}, &ParseError{Input: line, Reason: fmt.Sprintf("unparsed data %q", residual)}
	}

	return Orbit{Object: object, Target: target}, nil
}

// splitIdentifier consumes the longest identifier prefix of s.
func splitIdentifier(s string) (ident, residual string) {
	end := strings.IndexAny(s, ")\n")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
