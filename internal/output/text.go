package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/dshills/branchdiff/internal/compare"
)

// TextWriter outputs a human-readable summary table.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *compare.Result) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n", HeaderStyle.Render(fmt.Sprintf("%s ↔ %s (%s)", result.LocalBranch, result.RemoteRef, result.Folder)))
	ew.printf("%s\n", strings.Repeat("─", 60))
	if ew.err != nil {
		return ew.err
	}

	tbl := table.New("File", "Status", "Local", "Remote").WithWriter(w)
	tbl.WithPadding(2)
	tbl.WithWidthFunc(lipgloss.Width)
	tbl.WithFirstColumnFormatter(func(format string, vals ...any) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})
	for _, fr := range result.Files {
		tbl.AddRow(fr.Path, styledStatus(Status(fr)), orDash(fr.Local), orDash(fr.Remote))
	}
	tbl.Print()

	ew.printf("\n%d file(s)", len(result.Files))
	if result.TempDir != "" {
		if result.Kept {
			ew.printf(", snapshots kept in %s", result.TempDir)
		} else {
			ew.printf(", snapshots removed")
		}
	}
	ew.printf("\n")
	for _, fr := range result.Files {
		if fr.Err != nil {
			ew.printf("%s %s: %v\n", ErrorStyle.Render("error"), fr.Path, fr.Err)
		}
	}
	return ew.err
}

func styledStatus(s string) string {
	switch s {
	case StatusFailed:
		return ErrorStyle.Render(s)
	case StatusAdded, StatusDeleted, StatusNotFound:
		return WarningStyle.Render(s)
	default:
		return SuccessStyle.Render(s)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
