// Package invoker wraps external CLI invocations (docker, helm, terraform, ...)
// behind a uniform, capturing interface.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	deployerrors "github.com/deployctl/deployctl/internal/errors"
)

// Invocation describes a single external command execution.
type Invocation struct {
	Name string            // Executable name (e.g., "docker", "helm")
	Args []string          // Arguments
	Dir  string            // Working directory ("" = inherit)
	Env  map[string]string // Additional environment variables on top of os.Environ
}

// CommandLine returns the invocation formatted as a shell-style command line.
// Used for error messages and verbose echo, not for execution.
func (inv Invocation) CommandLine() string {
	if len(inv.Args) == 0 {
		return inv.Name
	}
	return inv.Name + " " + strings.Join(inv.Args, " ")
}

// Result holds the outcome of one external command.
// Immutable once produced.
type Result struct {
	ExitCode int
	Stdout   string // Captured stdout (combined output for Stream)
	Stderr   string
	Duration time.Duration
}

// Invoker executes external commands. The zero value is not usable; use New.
type Invoker struct {
	stdout io.Writer
	stderr io.Writer
}

// New creates an Invoker that streams to the process stdout/stderr.
func New() *Invoker {
	return &Invoker{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewWithWriters creates an Invoker with custom stream destinations (for testing).
func NewWithWriters(stdout, stderr io.Writer) *Invoker {
	return &Invoker{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes the invocation, capturing stdout and stderr.
// A non-zero exit code is not an error: the caller inspects Result.ExitCode.
// Errors are returned only when the command cannot be started or the context
// is canceled.
func (iv *Invoker) Run(ctx context.Context, inv Invocation) (*Result, error) {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = buildEnv(inv.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	return iv.finish(ctx, inv, res, err)
}

// Stream executes the invocation, streaming output to the invoker's writers
// while capturing the combined output in Result.Stdout.
func (iv *Invoker) Stream(ctx context.Context, inv Invocation) (*Result, error) {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = buildEnv(inv.Env)

	// Capture while streaming (both streams share one buffer so the captured
	// output keeps its interleaved order).
	var captured bytes.Buffer
	cmd.Stdout = io.MultiWriter(iv.stdout, &captured)
	cmd.Stderr = io.MultiWriter(iv.stderr, &captured)

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   captured.String(),
		Duration: time.Since(start),
	}

	return iv.finish(ctx, inv, res, err)
}

// RunStrict executes the invocation with captured output and converts a
// non-zero exit into a tool-failure error for callers that treat any failure
// as fatal.
func (iv *Invoker) RunStrict(ctx context.Context, inv Invocation) (*Result, error) {
	res, err := iv.Run(ctx, inv)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, deployerrors.ToolFailure(inv.CommandLine(), res.ExitCode, strings.TrimSpace(res.Stdout+res.Stderr))
	}
	return res, nil
}

// finish normalizes the outcome of cmd.Run into (Result, error).
func (iv *Invoker) finish(ctx context.Context, inv Invocation, res *Result, err error) (*Result, error) {
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		// A cancellation kills the child; report the cancellation, not the
		// resulting exit code.
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, nil
	}

	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, fmt.Errorf("start %s: %w", inv.Name, err)
}

// Available checks if an executable is available in PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ShellStep builds an invocation that runs a shell command string.
// On Windows: powershell -Command cmd (full path, to avoid shim interception).
// On Unix:    sh -c cmd
func ShellStep(cmdStr, dir string, env map[string]string) Invocation {
	if runtime.GOOS == "windows" {
		systemRoot := os.Getenv("SYSTEMROOT")
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}
		powershellPath := filepath.Join(systemRoot, "System32", "WindowsPowerShell", "v1.0", "powershell.exe")
		return Invocation{
			Name: powershellPath,
			Args: []string{"-NoProfile", "-NonInteractive", "-Command", cmdStr},
			Dir:  dir,
			Env:  env,
		}
	}
	return Invocation{
		Name: "sh",
		Args: []string{"-c", cmdStr},
		Dir:  dir,
		Env:  env,
	}
}

// buildEnv merges extra variables on top of the inherited environment.
// Later entries override earlier ones when the same key appears twice.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
