package gitctx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/gofrs/flock"

	"github.com/dshills/branchdiff/internal/logger"
	"github.com/dshills/branchdiff/internal/proc"
)

var (
	// ErrNotRepository is returned when the directory has no git metadata.
	ErrNotRepository = errors.New("not a git repository")
	// ErrRemoteExists is returned by AddRemote when the name is already
	// registered with the requested URL.
	ErrRemoteExists = errors.New("remote already exists")
	// ErrRemoteInUse is returned by AddRemote when the name is registered
	// with a different URL. The registration is left untouched.
	ErrRemoteInUse = errors.New("remote name already in use")
	// ErrLocked is returned by Lock when another run holds the lock.
	ErrLocked = errors.New("another branchdiff run is in progress in this repository")
)

// lockFileName lives inside the git directory.
const lockFileName = "branchdiff.lock"

// Repo is a git checkout rooted at Dir.
type Repo struct {
	Dir  string
	repo *git.Repository
	log  logger.Logger
}

// Open opens the checkout whose metadata lives directly in dir. Parent
// directories are not searched.
func Open(dir string, log logger.Logger) (*Repo, error) {
	if log == nil {
		log = logger.Nop()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	r, err := git.PlainOpen(abs)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, abs)
		}
		return nil, fmt.Errorf("opening repository %s: %w", abs, err)
	}
	return &Repo{Dir: abs, repo: r, log: log}, nil
}

// RemoteURL returns the first URL registered for name.
func (r *Repo) RemoteURL(name string) (string, bool) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", false
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", true
	}
	return urls[0], true
}

// AddRemote registers url under name. An existing registration is never
// modified: ErrRemoteExists is returned when it already points at url,
// ErrRemoteInUse when it points elsewhere.
func (r *Repo) AddRemote(ctx context.Context, name, url string) error {
	_, addErr := r.git(ctx, "remote", "add", name, url)
	if addErr == nil {
		return nil
	}

	existing, ok := r.RemoteURL(name)
	if !ok {
		return fmt.Errorf("adding remote %s: %w", name, addErr)
	}
	if existing != url {
		return fmt.Errorf("%w: %s points at %s", ErrRemoteInUse, name, existing)
	}
	return fmt.Errorf("%w: %s", ErrRemoteExists, name)
}

// SetRemoteURL points an existing registration at url.
func (r *Repo) SetRemoteURL(ctx context.Context, name, url string) error {
	if _, err := r.git(ctx, "remote", "set-url", name, url); err != nil {
		return fmt.Errorf("re-pointing remote %s: %w", name, err)
	}
	return nil
}

// RemoveRemote deletes the registration and its remote-tracking refs.
func (r *Repo) RemoveRemote(ctx context.Context, name string) error {
	if _, err := r.git(ctx, "remote", "remove", name); err != nil {
		return fmt.Errorf("removing remote %s: %w", name, err)
	}
	return nil
}

// Fetch fetches branch from remote so it is addressable as remote/branch.
func (r *Repo) Fetch(ctx context.Context, remote, branch string) error {
	if _, err := r.git(ctx, "fetch", remote, branch); err != nil {
		return fmt.Errorf("fetching %s from %s: %w", branch, remote, err)
	}
	return nil
}

// ChangedFiles lists paths under folder that differ between base and head,
// in the order git reports them. Paths are relative to the repository root.
func (r *Repo) ChangedFiles(ctx context.Context, base, head, folder string) ([]string, error) {
	if folder == "" {
		folder = "."
	}
	out, err := r.git(ctx, "diff", "--name-only", "-z", base, head, "--", folder)
	if err != nil {
		return nil, fmt.Errorf("listing changes %s..%s: %w", base, head, err)
	}
	return splitNUL(out), nil
}

// Show returns the content of path as recorded at rev.
func (r *Repo) Show(ctx context.Context, rev, path string) ([]byte, error) {
	spec := rev + ":" + filepath.ToSlash(path)
	out, err := r.git(ctx, "show", spec)
	if err != nil {
		return nil, fmt.Errorf("git show %s: %w", spec, err)
	}
	return out, nil
}

// GitDir returns the absolute path of the git directory.
func (r *Repo) GitDir(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("locating git directory: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Lock takes the per-checkout run lock without blocking. The returned
// function releases it.
func (r *Repo) Lock(ctx context.Context) (func(), error) {
	dir, err := r.GitDir(ctx)
	if err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(dir, lockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			r.log.Debug("releasing run lock", "error", err)
		}
	}, nil
}

func (r *Repo) git(ctx context.Context, args ...string) ([]byte, error) {
	r.log.Debug("git", "args", strings.Join(args, " "))
	return proc.Output(ctx, r.Dir, "git", args...)
}

func splitNUL(out []byte) []string {
	var files []string
	for _, p := range bytes.Split(out, []byte{0}) {
		if len(p) == 0 {
			continue
		}
		files = append(files, string(p))
	}
	return files
}
