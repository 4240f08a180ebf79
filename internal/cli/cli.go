package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/toolenvgo/internal/app"
	"github.com/vk/toolenvgo/internal/tooldef"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("toolenv", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
toolenv - resolve dynamic tool environments and launch programs in them.

Usage:
  toolenv [options] TOOL [TOOL...] [-- PROGRAM_ARGS...]

Arguments:
  TOOL
    Name of a tool definition file (without extension) found on the
    search path (the TOOLENV_PATH environment variable, or -search-path).

Options:
`)
		flagSet.PrintDefaults()
	}

	platformFlag := flagSet.String("platform", tooldef.CurrentPlatform(), "Platform to flatten definitions for: 'windows', 'linux' or 'darwin'.")
	searchPathFlag := flagSet.String("search-path", "", "List-separated definition directories, overriding "+tooldef.EnvSearchPath+".")
	runFlag := flagSet.String("run", "", "Program to locate on the resolved PATH and launch. Empty prints the environment instead.")
	outputFlag := flagSet.String("output", "env", "Print format for the resolved environment. Options: 'env' or 'json'.")
	listFlag := flagSet.Bool("list", false, "List every tool definition found on the search path and exit.")
	allowCyclesFlag := flagSet.Bool("allow-cycles", false, "Tolerate dependency cycles instead of failing.")
	allowKeyClashFlag := flagSet.Bool("allow-key-clash", false, "Tolerate dynamic key collisions, keeping the first value.")
	noDynamicKeysFlag := flagSet.Bool("no-dynamic-keys", false, "Skip resolving placeholders inside key names.")
	noNormalizeFlag := flagSet.Bool("no-normalize", false, "Skip path de-duplication of resolved values.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Everything before a literal "--" names tools; everything after is
	// handed to the launched program untouched.
	tools := flagSet.Args()
	var runArgs []string
	for i, arg := range tools {
		if arg == "--" {
			runArgs = tools[i+1:]
			tools = tools[:i]
			break
		}
	}

	if len(tools) == 0 && !*listFlag {
		slog.Debug("No tools requested, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	outputFormat := strings.ToLower(*outputFlag)
	if outputFormat != "env" && outputFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'env' or 'json'"}
	}

	searchPath, err := searchPath(*searchPathFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Tools:         tools,
		Platform:      strings.ToLower(*platformFlag),
		SearchPath:    searchPath,
		Run:           *runFlag,
		RunArgs:       runArgs,
		Output:        outputFormat,
		List:          *listFlag,
		AllowCycles:   *allowCyclesFlag,
		AllowKeyClash: *allowKeyClashFlag,
		NoDynamicKeys: *noDynamicKeysFlag,
		NoNormalize:   *noNormalizeFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

// searchPath resolves the definition directories from the flag override or
// the TOOLENV_PATH environment variable.
func searchPath(override string) ([]string, error) {
	if override == "" {
		return tooldef.SearchPath()
	}
	var dirs []string
	for _, dir := range strings.Split(override, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("search-path contains no directories")
	}
	return dirs, nil
}
