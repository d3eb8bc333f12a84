package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/orbitgraph/internal/app"
	"github.com/vk/orbitgraph/internal/cli"
	"github.com/vk/orbitgraph/internal/hcl_adapter"
)

// main is the entrypoint for the orbitgraph application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		code, message := exitStatus(err)
		fmt.Fprintln(os.Stderr, message)
		os.Exit(code)
	}
}

// exitStatus maps a run error to the process exit code and the message
// printed on stderr. Usage errors carry their own code; everything else,
// including a failed query, exits 1.
func exitStatus(err error) (int, string) {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Message
	}
	return 1, err.Error()
}

// run encapsulates the main application logic for easier testing and error
// handling. The report goes to outW and logs to logW.
func run(outW, logW io.Writer, args []string) error {
	ctx := context.Background()

	appConfig, shouldExit, err := cli.Parse(ctx, args, outW, hcl_adapter.NewLoader())
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	return app.NewApp(outW, logW, appConfig).Run(ctx)
}
