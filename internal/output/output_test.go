package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestWriter(color bool) (*Writer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWithWriters(&out, &errOut, color), &out, &errOut
}

func TestInfo_QuietSuppresses(t *testing.T) {
	w, out, _ := newTestWriter(false)
	w.SetQuiet(true)
	w.Info("should not appear")
	if out.Len() != 0 {
		t.Errorf("Info() in quiet mode wrote %q, want nothing", out.String())
	}
}

func TestVerbose_OnlyWhenEnabled(t *testing.T) {
	w, out, _ := newTestWriter(false)
	w.Verbose("hidden")
	if out.Len() != 0 {
		t.Errorf("Verbose() without verbose mode wrote %q", out.String())
	}
	w.SetVerbose(true)
	w.Verbose("shown")
	if !strings.Contains(out.String(), "shown") {
		t.Errorf("Verbose() in verbose mode wrote %q, want %q", out.String(), "shown")
	}
}

func TestWarning_GoesToStderr(t *testing.T) {
	w, out, errOut := newTestWriter(false)
	w.Warning("disk almost full")
	if out.Len() != 0 {
		t.Errorf("Warning() wrote to stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "warning: disk almost full") {
		t.Errorf("Warning() = %q, want warning prefix", errOut.String())
	}
}

func TestErrorPrefix(t *testing.T) {
	w, _, errOut := newTestWriter(false)
	w.ErrorPrefix("no config found")
	if !strings.Contains(errOut.String(), "deployctl: no config found") {
		t.Errorf("ErrorPrefix() = %q, want deployctl prefix", errOut.String())
	}
}

func TestTargetLifecycleMessages(t *testing.T) {
	w, out, errOut := newTestWriter(false)
	w.TargetStart("deploy")
	w.TargetSuccess("deploy", "1.2s")
	if !strings.Contains(out.String(), "[deploy]") {
		t.Errorf("TargetStart/Success output = %q, want [deploy]", out.String())
	}
	if !strings.Contains(out.String(), "1.2s") {
		t.Errorf("TargetSuccess output = %q, want duration", out.String())
	}

	w.TargetFailed("deploy", errors.New("exit 1"))
	if !strings.Contains(errOut.String(), "[deploy] failed: exit 1") {
		t.Errorf("TargetFailed() = %q, want failure line on stderr", errOut.String())
	}
}

func TestSummaryAction_Plain(t *testing.T) {
	w, out, _ := newTestWriter(false)
	w.SummaryAction("build", true, "3.4s", "")
	w.SummaryAction("deploy", false, "0.1s", "exit 1")
	got := out.String()
	if !strings.Contains(got, "+ build") {
		t.Errorf("SummaryAction() = %q, want success marker", got)
	}
	if !strings.Contains(got, "x deploy") || !strings.Contains(got, "(exit 1)") {
		t.Errorf("SummaryAction() = %q, want failure marker with error", got)
	}
}

func TestColorPlaceholders(t *testing.T) {
	w, _, _ := newTestWriter(true)
	got := w.colorPlaceholders("run <target>")
	if !strings.Contains(got, "<target>") {
		t.Errorf("colorPlaceholders() = %q, want placeholder preserved", got)
	}
	if !strings.Contains(got, colorPlaceholder) {
		t.Errorf("colorPlaceholders() = %q, want color code inserted", got)
	}
}

func TestHelpCommand_NoColorAlignment(t *testing.T) {
	w, out, _ := newTestWriter(false)
	w.HelpCommand("run", "Execute a target", 8)
	if !strings.Contains(out.String(), "run       Execute a target") {
		t.Errorf("HelpCommand() = %q, want padded alignment", out.String())
	}
}
