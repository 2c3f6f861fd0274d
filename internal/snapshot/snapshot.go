package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	RemoteDir = "remote"
	LocalDir  = "local"
)

// ErrUnsafePath is returned for paths that would land outside the workspace.
var ErrUnsafePath = errors.New("path escapes snapshot workspace")

// Pair holds the on-disk locations of one file's two revisions.
type Pair struct {
	Path   string
	Local  string
	Remote string
}

// Workspace is a temporary directory holding snapshot pairs.
type Workspace struct {
	root string
}

// New creates a fresh workspace under parent (os.TempDir when empty).
func New(parent string) (*Workspace, error) {
	root, err := os.MkdirTemp(parent, "branchdiff-*")
	if err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string { return w.root }

// PairFor computes destination paths for a repository-relative path
// without touching the filesystem.
func (w *Workspace) PairFor(path string) (Pair, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return Pair{}, fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}
	return Pair{
		Path:   path,
		Local:  filepath.Join(w.root, LocalDir, rel),
		Remote: filepath.Join(w.root, RemoteDir, rel),
	}, nil
}

// Write stores both revisions of path and returns their locations. Either
// side may be empty, e.g. when the file does not exist on that branch.
func (w *Workspace) Write(path string, local, remote []byte) (Pair, error) {
	pair, err := w.PairFor(path)
	if err != nil {
		return Pair{}, err
	}
	if err := writeFile(pair.Remote, remote); err != nil {
		return Pair{}, err
	}
	if err := writeFile(pair.Local, local); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// Remove deletes the workspace and everything in it.
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("removing snapshot directory: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}
