package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath string // orbit map, one record per line

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int // 0 selects runtime.GOMAXPROCS

	From string
	To   string
}

// NewConfig validates cfg and returns a copy with normalised values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("invalid workers: %d, must not be negative", cfg.WorkerCount)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port: %d, must be between 0 and 65535", cfg.HealthcheckPort)
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, errors.New("transfer endpoints cannot be empty")
	}

	return &cfg, nil
}
