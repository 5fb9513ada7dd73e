package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/fsutil"
	"github.com/Norgate-AV/sgb/internal/logger"
	"github.com/Norgate-AV/sgb/internal/pipeline"
	"github.com/Norgate-AV/sgb/internal/toolchain"
)

// newRunner is swapped out in tests
var newRunner = func(log *logger.Logger) compiler.Runner {
	return compiler.NewExecRunner(log)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	// Variables already set win over .env; a missing file is fine
	_ = godotenv.Load()

	opts := config.NewLoader().LoadForBuild(cmd, args)
	if err := opts.Validate(); err != nil {
		return err
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return codes.Wrap(codes.Config, fmt.Errorf("failed to get working directory: %w", err))
	}

	log := logger.New(opts.Verbose, opts.Quiet)

	if opts.Clean {
		return clean(opts, baseDir, log)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := newRunner(log)

	if err := toolchain.CheckSwift(ctx, runner); err != nil {
		return err
	}

	godot := opts.Godot
	if godot == "" {
		godot = toolchain.ResolveGodotCommand(ctx, runner)
	}

	cfg, err := config.New(opts, baseDir, godot)
	if err != nil {
		return err
	}

	if cfg.RunGodot {
		if err := toolchain.CheckGodot(ctx, runner, cfg.GodotCommand); err != nil {
			return err
		}
	}

	_, err = pipeline.New(cfg, runner, log).Run(ctx)
	return err
}

// clean removes the whole cache root
func clean(opts config.Options, baseDir string, log *logger.Logger) error {
	cacheRoot, err := opts.CacheRoot(baseDir)
	if err != nil {
		return codes.Wrap(codes.Config, err)
	}

	if !fsutil.Exists(cacheRoot) {
		log.Info("No cache directory found at %s", cacheRoot)
		return nil
	}

	log.Info("Removing cached playgrounds at %s...", cacheRoot)

	if err := os.RemoveAll(cacheRoot); err != nil {
		return codes.Wrap(codes.Scaffold, fmt.Errorf("failed to remove %s: %w", cacheRoot, err))
	}

	return nil
}
