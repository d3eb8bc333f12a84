package orbit

import "errors"

// LineParser turns a raw line into a record.
type LineParser interface {
	ParseLine(line string) (Orbit, error)
}

// Parser is a LineParser that numbers the lines it sees, so that errors
// point at the offending input line. It is not safe for concurrent use;
// the pipeline has a single producer.
type Parser struct {
	line int
}

// NewParser returns a parser positioned before line 1.
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine parses the next line.
func (p *Parser) ParseLine(line string) (Orbit, error) {
	p.line++
	o, err := Parse(line)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = p.line
		}
		return Orbit{}, err
	}
	return o, nil
}

// Lines reports how many lines have been parsed so far.
func (p *Parser) Lines() int {
	return p.line
}
