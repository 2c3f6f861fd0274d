package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/branchdiff/internal/editor"
	"github.com/dshills/branchdiff/internal/gitctx"
	"github.com/dshills/branchdiff/internal/logger"
	"github.com/dshills/branchdiff/internal/snapshot"
)

// DefaultRemoteName is the fixed name the remote is registered under.
const DefaultRemoteName = "temp_remote_branch"

var (
	// ErrNoChanges is returned when nothing under the target folder differs.
	ErrNoChanges = errors.New("no changes detected")
	// ErrMissingValue is returned when a required option is blank.
	ErrMissingValue = errors.New("missing required value")
	// ErrFilesFailed wraps the joined per-file failures of a run with
	// ContinueOnError set.
	ErrFilesFailed = errors.New("diff view failed")
)

// Git is the subset of git operations a comparison needs.
type Git interface {
	AddRemote(ctx context.Context, name, url string) error
	SetRemoteURL(ctx context.Context, name, url string) error
	RemoveRemote(ctx context.Context, name string) error
	Fetch(ctx context.Context, remote, branch string) error
	ChangedFiles(ctx context.Context, base, head, folder string) ([]string, error)
	Show(ctx context.Context, rev, path string) ([]byte, error)
}

// Progress receives user-facing status updates.
type Progress interface {
	// Start announces a blocking step; the returned func marks it done.
	Start(msg string) (stop func())
	Printf(format string, args ...any)
}

// Options describe one comparison.
type Options struct {
	Repository   string
	MainBranch   string
	LocalBranch  string
	TargetFolder string
	RemoteName   string

	// KeepTemp leaves the snapshot workspace on disk after the run.
	KeepTemp bool
	// ContinueOnError processes remaining files after a viewer failure.
	ContinueOnError bool
	// TempParent is where the workspace is created; os.TempDir when empty.
	TempParent string
}

func (o Options) validate() error {
	var missing []string
	if o.Repository == "" {
		missing = append(missing, "repository")
	}
	if o.MainBranch == "" {
		missing = append(missing, "main branch")
	}
	if o.LocalBranch == "" {
		missing = append(missing, "local branch")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingValue, strings.Join(missing, ", "))
	}
	return nil
}

// RemoteRef is the ref the fetched branch tip is addressable as.
func (o Options) RemoteRef() string {
	return o.RemoteName + "/" + o.MainBranch
}

// FileResult records what happened to one changed file.
type FileResult struct {
	Path          string `json:"path"`
	Local         string `json:"local"`
	Remote        string `json:"remote"`
	LocalMissing  bool   `json:"localMissing,omitempty"`
	RemoteMissing bool   `json:"remoteMissing,omitempty"`
	Err           error  `json:"-"`
}

// Result summarises a run.
type Result struct {
	RemoteRef   string       `json:"remoteRef"`
	LocalBranch string       `json:"localBranch"`
	Folder      string       `json:"folder"`
	TempDir     string       `json:"tempDir,omitempty"`
	Kept        bool         `json:"kept"`
	Files       []FileResult `json:"files"`
}

// Engine runs comparisons.
type Engine struct {
	git      Git
	viewer   editor.Viewer
	log      logger.Logger
	progress Progress
}

// NewEngine wires an Engine. log and progress may be nil.
func NewEngine(git Git, viewer editor.Viewer, log logger.Logger, progress Progress) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	if progress == nil {
		progress = nopProgress{}
	}
	return &Engine{git: git, viewer: viewer, log: log, progress: progress}
}

// Run performs the comparison. The returned Result is non-nil whenever a
// snapshot workspace was created, even if err is non-nil.
func (e *Engine) Run(ctx context.Context, opts Options) (result *Result, err error) {
	if opts.RemoteName == "" {
		opts.RemoteName = DefaultRemoteName
	}
	if opts.TargetFolder == "" {
		opts.TargetFolder = "."
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := e.log.With("remote", opts.RemoteName)

	owned, err := e.register(ctx, opts, log)
	if err != nil {
		return nil, err
	}
	if owned {
		defer func() {
			// Runs with a fresh context so an interrupt still cleans up.
			if rmErr := e.git.RemoveRemote(context.WithoutCancel(ctx), opts.RemoteName); rmErr != nil {
				log.Debug("removing remote", "error", rmErr)
			}
		}()
	}

	stop := e.progress.Start(fmt.Sprintf("Fetching the %s branch from %s...", opts.MainBranch, opts.Repository))
	err = e.git.Fetch(ctx, opts.RemoteName, opts.MainBranch)
	stop()
	if err != nil {
		return nil, err
	}

	e.progress.Printf("Comparing %s with remote %s...\n", opts.LocalBranch, opts.MainBranch)
	files, err := e.git.ChangedFiles(ctx, opts.RemoteRef(), opts.LocalBranch, opts.TargetFolder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s between %s and %s", ErrNoChanges, opts.TargetFolder, opts.RemoteRef(), opts.LocalBranch)
	}
	log.Debug("changed files", "count", len(files))

	ws, err := snapshot.New(opts.TempParent)
	if err != nil {
		return nil, err
	}
	result = &Result{
		RemoteRef:   opts.RemoteRef(),
		LocalBranch: opts.LocalBranch,
		Folder:      opts.TargetFolder,
		TempDir:     ws.Root(),
		Kept:        opts.KeepTemp,
	}
	if !opts.KeepTemp {
		defer func() {
			if rmErr := ws.Remove(); rmErr != nil {
				log.Warn("removing snapshots", "dir", ws.Root(), "error", rmErr)
			}
		}()
	}

	var failures []error
	for _, path := range files {
		fr, ferr := e.compareFile(ctx, ws, opts, path)
		result.Files = append(result.Files, fr)
		if ferr == nil {
			continue
		}
		if !opts.ContinueOnError || ctx.Err() != nil {
			return result, ferr
		}
		log.Warn("diff failed, continuing", "file", path, "error", ferr)
		failures = append(failures, ferr)
	}
	if len(failures) > 0 {
		return result, fmt.Errorf("%w for %d of %d files: %w", ErrFilesFailed, len(failures), len(files), errors.Join(failures...))
	}
	return result, nil
}

// register adds the remote and reports whether the run owns the
// registration and must remove it afterwards. A registration under the
// default name is a leftover of an earlier run and is reused, re-pointed if
// needed. Under any other name an existing registration belongs to the user:
// it is reused but kept when the URL matches, and refused otherwise.
func (e *Engine) register(ctx context.Context, opts Options, log logger.Logger) (bool, error) {
	err := e.git.AddRemote(ctx, opts.RemoteName, opts.Repository)
	switch {
	case err == nil:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case opts.RemoteName != DefaultRemoteName && errors.Is(err, gitctx.ErrRemoteExists):
		log.Info("using existing remote", "url", opts.Repository)
		return false, nil
	case opts.RemoteName != DefaultRemoteName && errors.Is(err, gitctx.ErrRemoteInUse):
		return false, err
	case errors.Is(err, gitctx.ErrRemoteExists):
		log.Warn("reusing leftover remote")
		return true, nil
	case errors.Is(err, gitctx.ErrRemoteInUse):
		if err := e.git.SetRemoteURL(ctx, opts.RemoteName, opts.Repository); err != nil {
			return false, err
		}
		log.Warn("re-pointed leftover remote", "url", opts.Repository)
		return true, nil
	default:
		log.Warn("registering remote", "error", err)
		return true, nil
	}
}

func (e *Engine) compareFile(ctx context.Context, ws *snapshot.Workspace, opts Options, path string) (FileResult, error) {
	fr := FileResult{Path: path}

	remote, err := e.show(ctx, opts.RemoteRef(), path)
	if err != nil {
		return fr, err
	}
	fr.RemoteMissing = remote == nil
	local, err := e.show(ctx, opts.LocalBranch, path)
	if err != nil {
		return fr, err
	}
	fr.LocalMissing = local == nil

	pair, err := ws.Write(path, local, remote)
	if err != nil {
		fr.Err = err
		return fr, err
	}
	fr.Local, fr.Remote = pair.Local, pair.Remote

	e.progress.Printf("Opening diff for %s...\n", path)
	if err := e.viewer.Diff(ctx, pair.Local, pair.Remote); err != nil {
		fr.Err = fmt.Errorf("%s: %w", path, err)
		return fr, fr.Err
	}
	return fr, nil
}

// show returns nil content, not an error, when the path is absent at rev.
// Only cancellation is fatal.
func (e *Engine) show(ctx context.Context, rev, path string) ([]byte, error) {
	data, err := e.git.Show(ctx, rev, path)
	if err == nil {
		if data == nil {
			data = []byte{}
		}
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	e.log.Warn("revision has no content for file, using empty snapshot", "rev", rev, "file", path, "error", err)
	return nil, nil
}

type nopProgress struct{}

func (nopProgress) Start(string) func()  { return func() {} }
func (nopProgress) Printf(string, ...any) {}

var _ Git = (*gitctx.Repo)(nil)
