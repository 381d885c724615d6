// Package shell provides the process invoker adapter.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Invoker implements ports.Invoker using os/exec.
type Invoker struct {
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewInvoker creates a new Invoker.
func NewInvoker(logger ports.Logger, telemetry ports.Telemetry) *Invoker {
	return &Invoker{
		logger:    logger,
		telemetry: telemetry,
	}
}

// Capture runs the invocation and returns its stdout. A non-zero exit
// surfaces as domain.ErrCommandFailed carrying the exit code and the
// tool's own stderr, unmodified.
func (i *Invoker) Capture(ctx context.Context, inv domain.Invocation) (string, error) {
	cmd := i.command(ctx, inv)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(err, stderr.String())
	}
	return stdout.String(), nil
}

// Stream runs the invocation with output wired to the logger and a telemetry
// vertex. The process runs to completion or failure under its own lifetime.
func (i *Invoker) Stream(ctx context.Context, inv domain.Invocation) error {
	vertex := i.telemetry.Record(ctx, inv.CommandLine())

	cmd := i.command(ctx, inv)
	cmd.Stdout = io.MultiWriter(vertex.Stdout(), &logWriter{logger: i.logger, errs: false})
	cmd.Stderr = io.MultiWriter(vertex.Stderr(), &logWriter{logger: i.logger, errs: true})

	if err := cmd.Run(); err != nil {
		rerr := commandError(err, "")
		vertex.Complete(rerr)
		return rerr
	}
	vertex.Complete(nil)
	return nil
}

func (i *Invoker) command(ctx context.Context, inv domain.Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...) //nolint:gosec // user configured command
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	cmd.Env = mergeEnvironment(os.Environ(), inv.Env)
	return cmd
}

// commandError folds an exec failure into the structured invocation-failure
// error the UI layer presents.
func commandError(err error, stderr string) error {
	exitCode := -1 // unknown or signal
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	rerr := zerr.With(domain.ErrCommandFailed, "exit_code", exitCode)
	rerr = zerr.With(rerr, "cause", err.Error())
	if stderr != "" {
		rerr = zerr.With(rerr, "stderr", stderr)
	}
	return rerr
}

// logWriter forwards process output to the logger, one line per entry.
type logWriter struct {
	logger ports.Logger
	errs   bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.errs {
			w.logger.Error(zerr.New(line))
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

// mergeEnvironment overlays the invocation environment on the system
// environment, later wins on key collision.
func mergeEnvironment(sysEnv []string, overlay map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overlay))
	order := make([]string, 0, len(sysEnv)+len(overlay))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overlay {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

var _ ports.Invoker = (*Invoker)(nil)
