package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/toolenvgo/internal/ctxlog"
	"github.com/vk/toolenvgo/internal/environ"
	"github.com/vk/toolenvgo/internal/fsutil"
	"github.com/vk/toolenvgo/internal/launcher"
	"github.com/vk/toolenvgo/internal/tooldef"
)

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.List {
		return a.listDefinitions()
	}

	env, err := a.loader.Discover(ctx, a.config.Tools, a.config.Platform)
	if err != nil {
		return fmt.Errorf("loading tool definitions: %w", err)
	}
	a.logger.Debug("Tool environments combined.", "tools", a.config.Tools, "variables", env.Len())
	if env.Len() == 0 {
		a.logger.Warn("No environment variables found for the requested tools.", "tools", a.config.Tools)
	}

	opts := environ.DefaultOptions()
	opts.ResolveDynamicKeys = !a.config.NoDynamicKeys
	opts.AllowCycles = a.config.AllowCycles
	opts.AllowKeyClash = a.config.AllowKeyClash
	opts.NormalizePaths = !a.config.NoNormalize

	resolved, err := environ.Resolve(ctx, env, opts)
	if err != nil {
		return fmt.Errorf("resolving environment: %w", err)
	}
	a.logger.Debug("Environment resolved.", "variables", resolved.Len())

	if a.config.Run == "" {
		return a.print(resolved)
	}
	return a.launch(ctx, resolved)
}

// launch merges the resolved environment into the live one, locates the
// requested program on the merged PATH and runs it to completion.
func (a *App) launch(ctx context.Context, resolved *environ.Environment) error {
	merged := environ.Merge(resolved, environ.FromOS(os.Environ()))

	executable, err := launcher.Locate(a.config.Run, merged)
	if err != nil {
		return err
	}
	a.logger.Debug("Executable located.", "program", a.config.Run, "path", executable)

	cmd, err := launcher.Launch(ctx, executable, a.config.RunArgs, merged, "", a.outW)
	if err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", a.config.Run, err)
	}
	return nil
}

// print writes the resolved environment to the output writer in the
// configured format.
func (a *App) print(env *environ.Environment) error {
	if a.config.Output == "json" {
		var buf bytes.Buffer
		buf.WriteString("{\n")
		keys := env.Keys()
		for i, key := range keys {
			value, _ := env.Get(key)
			// Marshal key and value separately so insertion order survives.
			k, err := json.Marshal(key)
			if err != nil {
				return err
			}
			v, err := json.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Fprintf(&buf, "  %s: %s", k, v)
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString("}\n")
		_, err := a.outW.Write(buf.Bytes())
		return err
	}

	for _, pair := range env.Environ() {
		if _, err := fmt.Fprintln(a.outW, pair); err != nil {
			return err
		}
	}
	return nil
}

// listDefinitions enumerates every tool definition file reachable from the
// search path.
func (a *App) listDefinitions() error {
	for _, dir := range a.config.SearchPath {
		files, err := fsutil.FindFilesByExtensions(dir, tooldef.Extensions())
		if err != nil {
			return fmt.Errorf("scanning %s: %w", dir, err)
		}
		for _, file := range files {
			base := filepath.Base(file)
			tool := strings.TrimSuffix(base, filepath.Ext(base))
			if _, err := fmt.Fprintf(a.outW, "%s\t%s\n", tool, file); err != nil {
				return err
			}
		}
	}
	return nil
}
