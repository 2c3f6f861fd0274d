package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/branchdiff/internal/compare"
	"github.com/dshills/branchdiff/internal/config"
	"github.com/dshills/branchdiff/internal/editor"
	"github.com/dshills/branchdiff/internal/output"
	"github.com/dshills/branchdiff/internal/proc"
)

const version = "0.1.0"

// Exit codes. A failing external command's own exit status is passed
// through instead of ExitFailure.
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsageError  = 2
	ExitInterrupted = 130
)

// app holds the I/O and collaborators of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// dir is the checkout to operate on; empty means the working directory.
	dir       string
	newViewer func(spec string) (editor.Viewer, error)

	flagConfig   string
	flagNoBanner bool
}

func newApp() *app {
	return &app{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		newViewer: commandViewer,
	}
}

func commandViewer(spec string) (editor.Viewer, error) {
	c, err := editor.Parse(spec)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Run executes the command line and returns an exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newApp().execute(ctx, os.Args[1:])
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(a.stderr, "%s %v\n", output.ErrorStyle.Render("Error:"), err)
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(a.stderr, "Run 'branchdiff --help' for usage.")
	}
	return exitCodeFor(ctx, err)
}

func (a *app) rootCmd() *cobra.Command {
	d := config.Default()
	root := &cobra.Command{
		Use:   "branchdiff",
		Short: "Open per-file diffs between a local branch and a remote branch",
		Long: "branchdiff fetches a branch from a remote repository, lists the files under a\n" +
			"target folder that differ from a local branch, and opens each pair in an\n" +
			"external diff viewer. Missing values are prompted for interactively.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected arguments: %v", args)}
			}
			return nil
		},
		RunE: a.runCompare,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := root.Flags()
	f.String("repository", "", "URL of the remote repository")
	f.String("main-branch", "", "Remote branch to compare from")
	f.String("local-branch", "", "Local branch to compare to")
	f.String("target-folder", "", "Folder to restrict the comparison to (default: repository root)")
	f.String("remote-name", d.RemoteName, "Name the remote is temporarily registered under")
	f.String("editor", d.Editor, fmt.Sprintf("Diff viewer: a preset %v or a command line with {local} and {remote}", editor.Presets()))
	f.Bool("keep-temp", d.KeepTemp, "Keep snapshot files after the run")
	f.Bool("continue-on-error", d.ContinueOnError, "Keep opening remaining files when the viewer fails on one")
	f.String("format", d.Format, "Summary format (text, json)")
	f.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	f.String("log-format", d.LogFormat, "Log format (text, json)")
	f.BoolVar(&a.flagNoBanner, "no-banner", false, "Do not print the welcome banner")

	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Config file (default: <user config dir>/branchdiff/config.yaml)")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.configCmd())
	return root
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print branchdiff version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "branchdiff version %s\n", version)
		},
	}
}

// usageError marks errors caused by bad command-line input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCodeFor(ctx context.Context, err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue):
		return ExitUsageError
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, compare.ErrFilesFailed):
		return ExitFailure
	}
	if code, ok := proc.ExitCode(err); ok {
		return code
	}
	return ExitFailure
}
