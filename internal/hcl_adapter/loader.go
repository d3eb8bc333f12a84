package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/orbitgraph/internal/config"
	"github.com/vk/orbitgraph/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	environ func() []string
}

// Option customises a Loader.
type Option func(*Loader)

// WithEnviron replaces os.Environ as the source of the env variable.
func WithEnviron(environ func() []string) Option {
	return func(l *Loader) {
		l.environ = environ
	}
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{environ: os.Environ}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// fileRoot mirrors the accepted top-level attributes and blocks.
type fileRoot struct {
	Input       *string           `hcl:"input,optional"`
	LogLevel    *string           `hcl:"log_level,optional"`
	LogFormat   *string           `hcl:"log_format,optional"`
	Workers     *int              `hcl:"workers,optional"`
	Transfer    *transferBlock    `hcl:"transfer,block"`
	Healthcheck *healthcheckBlock `hcl:"healthcheck,block"`
}

type transferBlock struct {
	From *string `hcl:"from,optional"`
	To   *string `hcl:"to,optional"`
}

type healthcheckBlock struct {
	Port int `hcl:"port"`
}

// Load parses and decodes a single HCL file.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	file := translate(path, &root)
	logger.Debug("HCL loading complete.", "path", path, "has_transfer", file.Transfer != nil, "has_healthcheck", file.Healthcheck != nil)
	return file, nil
}

// evalContext exposes the environment as env.NAME.
func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

func translate(path string, root *fileRoot) *config.File {
	file := &config.File{
		Path:      path,
		Input:     root.Input,
		LogLevel:  root.LogLevel,
		LogFormat: root.LogFormat,
		Workers:   root.Workers,
	}
	if file.Input != nil && *file.Input != "" && !filepath.IsAbs(*file.Input) {
		resolved := filepath.Join(filepath.Dir(path), *file.Input)
		file.Input = &resolved
	}
	if root.Transfer != nil {
		file.Transfer = &config.Transfer{From: root.Transfer.From, To: root.Transfer.To}
	}
	if root.Healthcheck != nil {
		file.Healthcheck = &config.Healthcheck{Port: root.Healthcheck.Port}
	}
	return file
}
