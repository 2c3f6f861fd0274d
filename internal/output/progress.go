package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Progress prints step messages to w and animates blocking steps with a
// spinner when w is a terminal.
type Progress struct {
	w io.Writer
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Start announces msg. On a terminal a spinner runs until the returned
// func is called; elsewhere the message is printed once.
func (p *Progress) Start(msg string) func() {
	f, ok := p.w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		p.Printf("%s", msg)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		p.Printf("%s", msg)
	}
}

// Printf writes one styled status line.
func (p *Progress) Printf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(p.w, InfoStyle.Render(msg))
}
