package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/orbitgraph/internal/engine"
	"github.com/vk/orbitgraph/internal/telemetry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	metrics *telemetry.Metrics
	engine  *engine.Engine

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. Each App owns an isolated logger and metrics registry.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	metrics := telemetry.New()
	eng := engine.New(
		engine.WithWorkers(cfg.WorkerCount),
		engine.WithTransfer(cfg.From, cfg.To),
		engine.WithMetrics(metrics),
	)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		engine:  eng,
	}
}

// Metrics returns the application's collectors. This is primarily for testing.
func (a *App) Metrics() *telemetry.Metrics {
	return a.metrics
}
