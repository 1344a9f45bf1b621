package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tristendillon/create-common-app/core/logger"
)

// ErrToolNotFound means the executable is not installed or not on PATH.
// Callers treat it as a degraded, non-fatal outcome.
var ErrToolNotFound = errors.New("tool not found")

type Command struct {
	// Dir is the absolute working directory. Empty means the process's own.
	Dir    string
	Name   string
	Args   []string
	// Env is appended to the current environment.
	Env    []string
	// Stream copies output to Stdout/Stderr instead of capturing it.
	Stream bool
	Stdout io.Writer
	Stderr io.Writer
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	logger.Debug("Running %s (dir=%s)", c.String(), c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	if c.Stream {
		cmd.Stdin = os.Stdin
		cmd.Stdout = writerOr(c.Stdout, os.Stdout)
		cmd.Stderr = writerOr(c.Stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return result, fmt.Errorf("%w: %s", ErrToolNotFound, c.Name)
		}
		return result, fmt.Errorf("%s failed: %w", c.String(), err)
	}

	return result, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
