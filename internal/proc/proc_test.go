package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
)

func TestOutput_Success(t *testing.T) {
	out, err := Output(context.Background(), "", "git", "--version")
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.HasPrefix(string(out), "git version") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestOutput_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	_, err := Output(context.Background(), dir, "git", "rev-parse", "HEAD")
	if err == nil {
		t.Fatal("expected error outside a repository")
	}

	var ee *ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("error %T is not *ExitError", err)
	}
	if ee.Code == 0 {
		t.Error("exit code should be non-zero")
	}
	if ee.Stderr == "" {
		t.Error("stderr should be captured")
	}
	if !strings.Contains(err.Error(), "git rev-parse HEAD") {
		t.Errorf("error should name the command: %q", err.Error())
	}

	var xe *exec.ExitError
	if !errors.As(err, &xe) {
		t.Error("underlying *exec.ExitError should be reachable via errors.As")
	}
}

func TestOutput_NotFound(t *testing.T) {
	_, err := Output(context.Background(), "", "branchdiff-no-such-binary")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if _, ok := ExitCode(err); ok {
		t.Error("a command that never started has no exit code")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("errors.Is(err, exec.ErrNotFound) = false for %v", err)
	}
}

func TestRun_ExitCode(t *testing.T) {
	cmd := exec.Command("sh", "-c", "exit 3")
	err := Run(cmd)
	code, ok := ExitCode(err)
	if !ok || code != 3 {
		t.Errorf("ExitCode = %d, %v; want 3, true", code, ok)
	}
}

func TestExitCode_Wrapped(t *testing.T) {
	base := &ExitError{Name: "git", Args: []string{"fetch"}, Code: 128}
	wrapped := fmt.Errorf("fetching main: %w", base)
	code, ok := ExitCode(wrapped)
	if !ok || code != 128 {
		t.Errorf("ExitCode = %d, %v; want 128, true", code, ok)
	}
	if _, ok := ExitCode(errors.New("plain")); ok {
		t.Error("plain error should carry no exit code")
	}
}
