package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/branchdiff/internal/config"
)

// prompter reads answers line by line.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(r), w: w}
}

// ask prints label and returns the trimmed answer. io.EOF is returned only
// when input ended before anything was typed.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.w, label)
	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// required asks until a non-blank answer is given.
func (p *prompter) required(name, label string) (string, error) {
	for {
		v, err := p.ask(label)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.w)
				return "", fmt.Errorf("no %s provided", name)
			}
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintf(p.w, "A %s is required.\n", name)
	}
}

// resolveRunValues prompts for whichever of the four run values is still
// empty. A blank target folder means the repository root.
func resolveRunValues(cfg *config.Config, p *prompter) error {
	var err error
	if cfg.Repository == "" {
		if cfg.Repository, err = p.required("repository URL", "Enter the repository URL: "); err != nil {
			return err
		}
	}
	if cfg.MainBranch == "" {
		if cfg.MainBranch, err = p.required("main branch", "Enter the main branch (e.g., 'main'): "); err != nil {
			return err
		}
	}
	if cfg.LocalBranch == "" {
		if cfg.LocalBranch, err = p.required("local branch", "Enter the local branch (e.g., 'dev'): "); err != nil {
			return err
		}
	}
	if cfg.TargetFolder == "" {
		v, err := p.ask("Enter the target folder for the diff operation (blank for current directory): ")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading target folder: %w", err)
		}
		if v == "" {
			v = "."
		}
		cfg.TargetFolder = v
	}
	return nil
}
