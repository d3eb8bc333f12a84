package builder

import (
	"context"
	"fmt"

	"github.com/vk/orbitgraph/internal/ctxlog"
	"github.com/vk/orbitgraph/internal/orbit"
	"github.com/vk/orbitgraph/internal/source"
)

// Produce parses every line of src and sends the records on out, in order.
//
// out is closed only when the source is exhausted cleanly, which is what
// tells Build to finalize. On a parse or read failure out is left open and
// the error is returned; the caller must then cancel the context Build runs
// under (errgroup.WithContext does this) so that no partial graph is
// published.
func Produce(ctx context.Context, src source.Source, parser orbit.LineParser, out chan<- orbit.Orbit) error {
	ctx = ctxlog.With(ctx, "stage", "parse")
	logger := ctxlog.FromContext(ctx)
	produced := 0

	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		rec, err := parser.ParseLine(line)
		if err != nil {
			logger.Debug("Rejected input line.", "error", err)
			return err
		}

		select {
		case out <- rec:
			produced++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("reading orbit input: %w", err)
	}

	close(out)
	logger.Debug("Record stream exhausted.", "records", produced)
	return nil
}
