package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/branchdiff/internal/compare"
	"github.com/dshills/branchdiff/internal/config"
	"github.com/dshills/branchdiff/internal/gitctx"
	"github.com/dshills/branchdiff/internal/logger"
	"github.com/dshills/branchdiff/internal/output"
)

func (a *app) runCompare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(a.flagConfig, cmd.Flags())
	if err != nil {
		return err
	}
	log := newLogger(cfg, a)

	if !a.flagNoBanner {
		fmt.Fprintln(a.stderr, output.Banner(version))
	}

	dir := a.dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	}
	// Checked before prompting and before anything touches the network.
	repo, err := gitctx.Open(dir, log)
	if err != nil {
		return err
	}

	if err := resolveRunValues(&cfg, newPrompter(a.stdin, a.stderr)); err != nil {
		return err
	}
	log.Debug("resolved configuration",
		"repository", cfg.Repository,
		"main", cfg.MainBranch,
		"local", cfg.LocalBranch,
		"folder", cfg.TargetFolder,
		"editor", cfg.Editor,
	)

	viewer, err := a.newViewer(cfg.Editor)
	if err != nil {
		return err
	}
	writer, err := output.GetWriter(cfg.Format)
	if err != nil {
		return err
	}

	unlock, err := repo.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	engine := compare.NewEngine(repo, viewer, log, output.NewProgress(a.stderr))
	result, runErr := engine.Run(ctx, compare.Options{
		Repository:      cfg.Repository,
		MainBranch:      cfg.MainBranch,
		LocalBranch:     cfg.LocalBranch,
		TargetFolder:    cfg.TargetFolder,
		RemoteName:      cfg.RemoteName,
		KeepTemp:        cfg.KeepTemp,
		ContinueOnError: cfg.ContinueOnError,
	})
	if result != nil {
		if err := writer.Write(a.stdout, result); err != nil && runErr == nil {
			runErr = fmt.Errorf("writing summary: %w", err)
		}
	}
	return runErr
}

func newLogger(cfg config.Config, a *app) logger.Logger {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	format, _ := logger.ParseFormat(cfg.LogFormat)
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(a.stderr),
	)
}
