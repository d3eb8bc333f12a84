package config

// File is one decoded configuration file.
type File struct {
	// Path is the file the values were loaded from.
	Path string

	Input       *string
	LogLevel    *string
	LogFormat   *string
	Workers     *int
	Transfer    *Transfer
	Healthcheck *Healthcheck
}

// Transfer selects the two objects of the orbital-transfer query.
type Transfer struct {
	From *string
	To   *string
}

// Healthcheck configures the HTTP server exposing /health and /metrics.
type Healthcheck struct {
	Port int
}
