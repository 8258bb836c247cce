package invoker

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	deployerrors "github.com/deployctl/deployctl/internal/errors"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	skipOnWindows(t)

	iv := New()
	res, err := iv.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "echo hello; echo oops >&2"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hello")
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "oops")
	}
	if res.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", res.Duration)
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)

	iv := New()
	res, err := iv.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "exit 3"}})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil (caller inspects ExitCode)", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestRun_StartFailure(t *testing.T) {
	iv := New()
	_, err := iv.Run(context.Background(), Invocation{Name: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Error("Run() error = nil, want start failure")
	}
}

func TestRun_AppliesDirAndEnv(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	iv := New()
	res, err := iv.Run(context.Background(), Invocation{
		Name: "sh",
		Args: []string{"-c", "pwd; printf '%s' \"$DEPLOY_ENV\""},
		Dir:  dir,
		Env:  map[string]string{"DEPLOY_ENV": "staging"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(res.Stdout, "staging") {
		t.Errorf("Stdout = %q, want env var applied", res.Stdout)
	}
	// Dir may resolve through symlinks (macOS /tmp); check the path suffix.
	if !strings.Contains(res.Stdout, dir) && !strings.Contains(res.Stdout, "/") {
		t.Errorf("Stdout = %q, want working directory output", res.Stdout)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	iv := New()
	_, err := iv.Run(ctx, Invocation{Name: "sh", Args: []string{"-c", "sleep 10"}})
	if err == nil {
		t.Fatal("Run() error = nil, want cancellation error")
	}
}

func TestStream_CapturesCombined(t *testing.T) {
	skipOnWindows(t)

	var streamed bytes.Buffer
	iv := NewWithWriters(&streamed, &streamed)
	res, err := iv.Stream(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	for _, want := range []string{"out", "err"} {
		if !strings.Contains(res.Stdout, want) {
			t.Errorf("captured = %q, want %q", res.Stdout, want)
		}
		if !strings.Contains(streamed.String(), want) {
			t.Errorf("streamed = %q, want %q", streamed.String(), want)
		}
	}
}

func TestRunStrict_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	iv := New()
	_, err := iv.RunStrict(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "echo doomed; exit 1"}})
	if err == nil {
		t.Fatal("RunStrict() error = nil, want tool failure")
	}
	if !deployerrors.IsToolFailure(err) {
		t.Errorf("RunStrict() error = %v, want tool-failure kind", err)
	}
	if !strings.Contains(err.Error(), "doomed") {
		t.Errorf("RunStrict() error = %v, want captured output included", err)
	}
}

func TestRunStrict_ZeroExit(t *testing.T) {
	skipOnWindows(t)

	iv := New()
	res, err := iv.RunStrict(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "true"}})
	if err != nil {
		t.Fatalf("RunStrict() error = %v, want nil", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestCommandLine(t *testing.T) {
	inv := Invocation{Name: "docker", Args: []string{"ps", "--quiet"}}
	if got := inv.CommandLine(); got != "docker ps --quiet" {
		t.Errorf("CommandLine() = %q", got)
	}
	bare := Invocation{Name: "docker"}
	if got := bare.CommandLine(); got != "docker" {
		t.Errorf("CommandLine() = %q", got)
	}
}

func TestShellStep_Unix(t *testing.T) {
	skipOnWindows(t)

	inv := ShellStep("echo hi", "/tmp", map[string]string{"A": "1"})
	if inv.Name != "sh" {
		t.Errorf("Name = %q, want sh", inv.Name)
	}
	if len(inv.Args) != 2 || inv.Args[0] != "-c" || inv.Args[1] != "echo hi" {
		t.Errorf("Args = %v, want [-c, echo hi]", inv.Args)
	}
	if inv.Dir != "/tmp" {
		t.Errorf("Dir = %q, want /tmp", inv.Dir)
	}
}

func TestAvailable(t *testing.T) {
	if !Available("sh") && runtime.GOOS != "windows" {
		t.Error("Available(sh) = false, want true")
	}
	if Available("definitely-not-a-real-binary-xyz") {
		t.Error("Available(nonexistent) = true, want false")
	}
}
