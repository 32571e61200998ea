package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long output pipes are drained after the process is
// killed on cancellation.
const waitDelay = 5 * time.Second

// ProcessRunnerAdapter abstracts running the external dictionary tools.
type ProcessRunnerAdapter interface {
	// Run executes name with args and waits for it. A process that starts and
	// exits nonzero is reported through exitCode with a nil error; err is
	// reserved for failures to locate, start or wait on the process.
	Run(ctx context.Context, name string, args ...string) (exitCode int, stdout string, err error)
}

// LocalProcessRunnerAdapter provides a concrete implementation using os/exec.
type LocalProcessRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalProcessRunnerAdapter constructs a runner. A zero timeout waits for
// the process indefinitely.
func NewLocalProcessRunnerAdapter(timeout time.Duration) *LocalProcessRunnerAdapter {
	return &LocalProcessRunnerAdapter{timeout: timeout}
}

// Run executes the command and captures its standard output.
func (a *LocalProcessRunnerAdapter) Run(ctx context.Context, name string, args ...string) (int, string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	bin, err := exec.LookPath(name)
	if err != nil {
		return -1, "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running external command", "bin", bin, "args", strings.Join(args, " "))

	err = cmd.Run()
	if stderr.Len() > 0 {
		slog.Info("external command stderr", "bin", name, "stderr", stderr.String())
	}

	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return -1, stdout.String(), fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), stdout.String(), nil
	}

	if err != nil {
		return -1, stdout.String(), err
	}

	return 0, stdout.String(), nil
}
