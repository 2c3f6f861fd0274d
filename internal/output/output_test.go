package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/branchdiff/internal/compare"
)

func sampleResult() *compare.Result {
	return &compare.Result{
		RemoteRef:   "temp_remote_branch/main",
		LocalBranch: "dev",
		Folder:      "a",
		TempDir:     "/tmp/branchdiff-123",
		Kept:        true,
		Files: []compare.FileResult{
			{Path: "a/b.txt", Local: "/tmp/branchdiff-123/local/a/b.txt", Remote: "/tmp/branchdiff-123/remote/a/b.txt"},
			{Path: "a/new.txt", Local: "/tmp/branchdiff-123/local/a/new.txt", Remote: "/tmp/branchdiff-123/remote/a/new.txt", RemoteMissing: true},
			{Path: "a/broken.txt", Err: errors.New("exit status 1")},
		},
	}
}

func TestGetWriter(t *testing.T) {
	for _, f := range []string{"text", "json", ""} {
		if _, err := GetWriter(f); err != nil {
			t.Errorf("GetWriter(%q): %v", f, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("GetWriter(sarif) should fail")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		fr   compare.FileResult
		want string
	}{
		{compare.FileResult{}, StatusOpened},
		{compare.FileResult{RemoteMissing: true}, StatusAdded},
		{compare.FileResult{LocalMissing: true}, StatusDeleted},
		{compare.FileResult{LocalMissing: true, RemoteMissing: true}, StatusNotFound},
		{compare.FileResult{Err: errors.New("x"), RemoteMissing: true}, StatusFailed},
	}
	for _, tt := range tests {
		if got := Status(tt.fr); got != tt.want {
			t.Errorf("Status(%+v) = %q, want %q", tt.fr, got, tt.want)
		}
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"dev ↔ temp_remote_branch/main (a)",
		"File", "Status",
		"a/b.txt", "opened",
		"a/new.txt", "added",
		"a/broken.txt", "failed",
		"3 file(s), snapshots kept in /tmp/branchdiff-123",
		"exit status 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextWriter_Removed(t *testing.T) {
	res := sampleResult()
	res.Kept = false
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "snapshots removed") {
		t.Errorf("output should mention removal:\n%s", buf.String())
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var parsed struct {
		RemoteRef string `json:"remoteRef"`
		Kept      bool   `json:"kept"`
		Files     []struct {
			Path          string `json:"path"`
			Status        string `json:"status"`
			Error         string `json:"error"`
			RemoteMissing bool   `json:"remoteMissing"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if parsed.RemoteRef != "temp_remote_branch/main" || !parsed.Kept {
		t.Errorf("header fields = %+v", parsed)
	}
	if len(parsed.Files) != 3 {
		t.Fatalf("files = %d, want 3", len(parsed.Files))
	}
	if parsed.Files[1].Status != "added" || !parsed.Files[1].RemoteMissing {
		t.Errorf("files[1] = %+v", parsed.Files[1])
	}
	if parsed.Files[2].Status != "failed" || parsed.Files[2].Error != "exit status 1" {
		t.Errorf("files[2] = %+v", parsed.Files[2])
	}
}

func TestProgress_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	stop := p.Start("Fetching the main branch...")
	stop()
	p.Printf("Opening diff for %s...\n", "a/b.txt")

	out := buf.String()
	if strings.Count(out, "Fetching the main branch...") != 1 {
		t.Errorf("fetch message should appear once:\n%q", out)
	}
	if !strings.Contains(out, "Opening diff for a/b.txt...\n") {
		t.Errorf("missing file line:\n%q", out)
	}
}

func TestBanner(t *testing.T) {
	b := Banner("1.2.3")
	if !strings.Contains(b, "Welcome to branchdiff!") || !strings.Contains(b, "Version: 1.2.3") {
		t.Errorf("banner = %q", b)
	}
}
