package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/orbitgraph/internal/analytics"
	"github.com/vk/orbitgraph/internal/app"
	"github.com/vk/orbitgraph/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// loader reads the file named by -config; it may be nil when no file is used.
func Parse(ctx context.Context, args []string, output io.Writer, loader config.Loader) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("orbitgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
orbitgraph - Builds an orbit map concurrently and answers questions about it.

Usage:
  orbitgraph [options] [INPUT_PATH]

Arguments:
  INPUT_PATH
    Path to an orbit map, one "TARGET)OBJECT" record per line.

Output:
  Total orbits: the number of direct and indirect orbits.
  Orbital transfers: the transfers between the bodies -from and -to orbit.

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Path to the orbit map.")
	iFlag := flagSet.String("i", "", "Path to the orbit map (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Goroutines counting orbits. 0 uses one per CPU.")
	fromFlag := flagSet.String("from", analytics.You, "Object whose orbit the transfer starts from.")
	toFlag := flagSet.String("to", analytics.Santa, "Object whose orbit the transfer ends at.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	path := ""
	if *inputFlag != "" {
		path = *inputFlag
	} else if *iFlag != "" {
		path = *iFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	cfg := app.Config{
		InputPath:       path,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       *logFormatFlag,
		LogLevel:        *logLevelFlag,
		WorkerCount:     *workersFlag,
		From:            *fromFlag,
		To:              *toFlag,
	}

	if *configFlag != "" {
		if loader == nil {
			return nil, false, &ExitError{Code: 2, Message: "-config given but no configuration loader is available"}
		}
		file, err := loader.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		applyFile(&cfg, file, explicit)
		slog.Debug("Configuration file merged.", "path", *configFlag)
	}

	if cfg.InputPath == "" {
		slog.Debug("No input path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	slog.Debug("Input path determined.", "path", cfg.InputPath)

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}

// applyFile copies file values into cfg for every setting the command line
// left at its default.
func applyFile(cfg *app.Config, file *config.File, explicit map[string]bool) {
	if file.Input != nil && cfg.InputPath == "" {
		cfg.InputPath = *file.Input
	}
	if file.LogLevel != nil && !explicit["log-level"] {
		cfg.LogLevel = *file.LogLevel
	}
	if file.LogFormat != nil && !explicit["log-format"] {
		cfg.LogFormat = *file.LogFormat
	}
	if file.Workers != nil && !explicit["workers"] {
		cfg.WorkerCount = *file.Workers
	}
	if t := file.Transfer; t != nil {
		if t.From != nil && !explicit["from"] {
			cfg.From = *t.From
		}
		if t.To != nil && !explicit["to"] {
			cfg.To = *t.To
		}
	}
	if file.Healthcheck != nil && !explicit["healthcheck-port"] {
		cfg.HealthcheckPort = file.Healthcheck.Port
	}
}
