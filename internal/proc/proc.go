package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ExitError is returned when an external command exits non-zero or cannot
// be started.
type ExitError struct {
	Name   string
	Args   []string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Name, strings.Join(e.Args, " "))
	if e.Code > 0 {
		fmt.Fprintf(&b, ": exit status %d", e.Code)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	return b.String()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode reports the exit status carried by err, if any.
func ExitCode(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Code > 0 {
		return ee.Code, true
	}
	return 0, false
}

// Output runs name with args in dir and returns stdout. Stderr is captured
// into the returned error.
func Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, wrap(name, args, err, stderr.String())
	}
	return out, nil
}

// Run starts cmd, waits for it, and wraps a failure in an ExitError. The
// caller owns cmd's stdio wiring.
func Run(cmd *exec.Cmd) error {
	if err := cmd.Run(); err != nil {
		return wrap(cmd.Path, cmd.Args[1:], err, "")
	}
	return nil
}

func wrap(name string, args []string, err error, stderr string) error {
	ee := &ExitError{
		Name:   name,
		Args:   args,
		Stderr: stderr,
		Err:    err,
	}
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		ee.Code = xe.ExitCode()
	}
	return ee
}
