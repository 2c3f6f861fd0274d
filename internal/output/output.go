package output

import (
	"fmt"
	"io"

	"github.com/dshills/branchdiff/internal/compare"
)

// Writer writes a run result in a specific format.
type Writer interface {
	Write(w io.Writer, result *compare.Result) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// File statuses reported in summaries.
const (
	StatusOpened   = "opened"
	StatusAdded    = "added"
	StatusDeleted  = "deleted"
	StatusFailed   = "failed"
	StatusNotFound = "missing"
)

// Status classifies one file result.
func Status(fr compare.FileResult) string {
	switch {
	case fr.Err != nil:
		return StatusFailed
	case fr.LocalMissing && fr.RemoteMissing:
		return StatusNotFound
	case fr.RemoteMissing:
		return StatusAdded
	case fr.LocalMissing:
		return StatusDeleted
	default:
		return StatusOpened
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
