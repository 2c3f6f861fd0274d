package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/dshills/branchdiff/internal/proc"
)

const (
	localPlaceholder  = "{local}"
	remotePlaceholder = "{remote}"
)

// ErrEmptySpec is returned when no editor command was configured.
var ErrEmptySpec = errors.New("editor command is empty")

// presets maps short names to diff-view command lines.
var presets = map[string]string{
	"code":   "code --diff {local} {remote}",
	"codium": "codium --diff {local} {remote}",
	"cursor": "cursor --diff {local} {remote}",
	"nvim":   "nvim -d {local} {remote}",
	"vim":    "vim -d {local} {remote}",
	"meld":   "meld {local} {remote}",
}

// Presets returns the known preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Viewer opens a diff between a local and a remote snapshot.
type Viewer interface {
	Diff(ctx context.Context, local, remote string) error
}

// Command is a Viewer backed by an external program.
type Command struct {
	Name string
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Parse builds a Command from a preset name or a command line. Command
// lines are split with shell quoting rules and may use {local} and
// {remote}; without placeholders the two paths are appended in that order.
func Parse(spec string) (*Command, error) {
	spec = strings.TrimSpace(spec)
	if p, ok := presets[spec]; ok {
		spec = p
	}
	fields, err := shellwords.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing editor command %q: %w", spec, err)
	}
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	args := fields[1:]
	if !hasPlaceholder(args) {
		args = append(args, localPlaceholder, remotePlaceholder)
	}
	return &Command{
		Name:   fields[0],
		Args:   args,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

func hasPlaceholder(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, localPlaceholder) || strings.Contains(a, remotePlaceholder) {
			return true
		}
	}
	return false
}

// Argv returns the full argument vector for a local/remote pair.
func (c *Command) Argv(local, remote string) []string {
	r := strings.NewReplacer(localPlaceholder, local, remotePlaceholder, remote)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		out[i] = r.Replace(a)
	}
	return out
}

// Diff runs the viewer attached to the terminal and waits for it to exit.
func (c *Command) Diff(ctx context.Context, local, remote string) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Argv(local, remote)...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := proc.Run(cmd); err != nil {
		return fmt.Errorf("opening diff view: %w", err)
	}
	return nil
}
