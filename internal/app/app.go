package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/toolenvgo/internal/tooldef"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *tooldef.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger writing to logW.
// Results are printed to outW, so tests can capture output and logs
// separately.
func NewApp(outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
		loader: tooldef.NewLoader(config.SearchPath, string(os.PathListSeparator)),
	}
}
