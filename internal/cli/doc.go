// Package cli translates command-line arguments into a validated
// app.Config, reporting usage problems through ExitError so the
// entrypoint can map them to exit codes.
package cli
