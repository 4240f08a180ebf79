package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Tools      []string // tool names to resolve, in request order
	Platform   string   // windows, linux or darwin
	SearchPath []string // directories searched for definition files

	Run     string   // program to locate and launch; empty means print
	RunArgs []string // arguments passed to the launched program
	Output  string   // print format: 'env' or 'json'
	List    bool     // list available definitions instead of resolving

	AllowCycles   bool
	AllowKeyClash bool
	NoDynamicKeys bool
	NoNormalize   bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it, rejecting combinations the
// rest of the application cannot act on.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SearchPath) == 0 {
		return nil, errors.New("definition search path is empty")
	}
	if !cfg.List && len(cfg.Tools) == 0 {
		return nil, errors.New("at least one tool name is required")
	}
	return &cfg, nil
}
