package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite_PreservesStructure(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pair, err := ws.Write("a/b.txt", []byte("local\n"), []byte("remote\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if want := filepath.Join(ws.Root(), "local", "a", "b.txt"); pair.Local != want {
		t.Errorf("Local = %q, want %q", pair.Local, want)
	}
	if want := filepath.Join(ws.Root(), "remote", "a", "b.txt"); pair.Remote != want {
		t.Errorf("Remote = %q, want %q", pair.Remote, want)
	}

	got, err := os.ReadFile(pair.Local)
	if err != nil || string(got) != "local\n" {
		t.Errorf("local content = %q, %v", got, err)
	}
	got, err = os.ReadFile(pair.Remote)
	if err != nil || string(got) != "remote\n" {
		t.Errorf("remote content = %q, %v", got, err)
	}
}

func TestWrite_EmptySide(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	pair, err := ws.Write("new.txt", []byte("added\n"), nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(pair.Remote)
	if err != nil {
		t.Fatalf("remote snapshot should exist even when empty: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("remote size = %d, want 0", info.Size())
	}
}

func TestPairFor_RejectsEscapes(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"../evil.txt", "a/../../evil.txt", "/etc/passwd", ""} {
		if _, err := ws.PairFor(p); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("PairFor(%q) error = %v, want ErrUnsafePath", p, err)
		}
	}
}

func TestNew_UniqueRoots(t *testing.T) {
	parent := t.TempDir()
	a, err := New(parent)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(parent)
	if err != nil {
		t.Fatal(err)
	}
	if a.Root() == b.Root() {
		t.Error("workspaces should not share a root")
	}
	if !strings.HasPrefix(filepath.Base(a.Root()), "branchdiff-") {
		t.Errorf("root %q should carry the branchdiff- prefix", a.Root())
	}
}

func TestRemove(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ws.Write("a/b.txt", []byte("x"), []byte("y")); err != nil {
		t.Fatal(err)
	}
	if err := ws.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(ws.Root()); !os.IsNotExist(err) {
		t.Errorf("root still exists after Remove: %v", err)
	}
}
