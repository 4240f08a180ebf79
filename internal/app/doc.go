// Package app wires the tool-definition loader, the environment resolver
// and the launcher into the application lifecycle driven by the CLI.
package app
