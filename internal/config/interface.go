package config

import "context"

// Loader reads a configuration file into the format-agnostic model.
type Loader interface {
	Load(ctx context.Context, path string) (*File, error)
}
