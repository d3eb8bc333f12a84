package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/vk/orbitgraph/internal/ctxlog"
	"github.com/vk/orbitgraph/internal/engine"
	"github.com/vk/orbitgraph/internal/source"
)

// Run executes one pipeline over the configured input and writes the report.
// A failed query leaves its line out of the report, is logged, and is
// returned once the lines of the successful queries have been written.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.", "input", a.config.InputPath)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	src, err := source.Open(a.config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to open orbit map: %w", err)
	}
	defer src.Close()

	res, err := a.engine.Run(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to build orbit graph from %s: %w", a.config.InputPath, err)
	}

	if err := writeReport(a.outW, res); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	var queryErrs []error
	if res.AncestorErr != nil {
		logger.Error("Ancestor count query failed.", "error", res.AncestorErr)
		queryErrs = append(queryErrs, fmt.Errorf("ancestor count query: %w", res.AncestorErr))
	}
	if res.TransfersErr != nil {
		logger.Error("Orbital transfer query failed.", "from", res.From, "to", res.To, "error", res.TransfersErr)
		queryErrs = append(queryErrs, fmt.Errorf("orbital transfer query: %w", res.TransfersErr))
	}
	if len(queryErrs) > 0 {
		return errors.Join(queryErrs...)
	}
	logger.Debug("App.Run method finished.")
	return nil
}

// writeReport prints one line per successful query.
func writeReport(w io.Writer, res *engine.Result) error {
	if res.AncestorErr == nil {
		if _, err := fmt.Fprintf(w, "Total orbits: %d\n", res.AncestorCount); err != nil {
			return err
		}
	}
	if res.TransfersErr == nil {
		if _, err := fmt.Fprintf(w, "Orbital transfers: %d\n", res.Transfers); err != nil {
			return err
		}
	}
	return nil
}
