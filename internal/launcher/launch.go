package launcher

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/vk/toolenvgo/internal/ctxlog"
	"github.com/vk/toolenvgo/internal/environ"
)

// Launch starts executable with args inside the given environment, with
// the child's stdout and stderr wired to outW. The started command is
// returned so the caller can wait on it.
func Launch(ctx context.Context, executable string, args []string, env *environ.Environment, dir string, outW io.Writer) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Env = env.Environ()
	cmd.Dir = dir
	cmd.Stdout = outW
	cmd.Stderr = outW

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launching %s: %w", executable, err)
	}
	ctxlog.FromContext(ctx).Debug("Child process started.", "executable", executable, "pid", cmd.Process.Pid)
	return cmd, nil
}
