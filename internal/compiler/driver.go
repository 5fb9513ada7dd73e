// Package compiler runs the Swift toolchain against a generated package.
package compiler

import (
	"context"
	"errors"
	"strings"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/logger"
)

// ErrNoOutputPath is returned when swift does not report where it built to
var ErrNoOutputPath = errors.New("unable to determine Swift build output path")

// Syncer installs the libraries found in a build output directory
type Syncer interface {
	Sync(ctx context.Context, outputDir string) ([]string, error)
}

// Importer runs the engine's asset import when assets changed
type Importer interface {
	MaybeImport(ctx context.Context) (bool, error)
}

// Result describes a finished build
type Result struct {
	OutputDir string
	Libraries []string
	Imported  bool
}

// Driver builds the package and hands the products on
type Driver struct {
	Runner     Runner
	PackageDir string
	Profile    config.Profile
	Verbose    bool
	Syncer     Syncer
	// Importer is nil when no asset directories are configured
	Importer Importer
	Log      *logger.Logger
}

// Build compiles the package, resolves the output directory, syncs the
// libraries and, with assets configured, runs the import step
func (d *Driver) Build(ctx context.Context) (*Result, error) {
	d.Log.Info("Building Swift package in %s...", d.PackageDir)

	if err := d.Runner.Run(ctx, GetBuildCommand(d.Profile, d.PackageDir, d.Verbose)); err != nil {
		return nil, codes.Wrap(codes.Build, err)
	}

	out, err := d.Runner.Output(ctx, GetBinPathCommand(d.Profile, d.PackageDir))
	if err != nil {
		return nil, codes.Wrap(codes.Build, err)
	}

	outputDir := strings.TrimSpace(out)
	if outputDir == "" {
		return nil, codes.Wrap(codes.Build, ErrNoOutputPath)
	}

	d.Log.Debug("Build output: %s", outputDir)

	libs, err := d.Syncer.Sync(ctx, outputDir)
	if err != nil {
		return nil, codes.Wrap(codes.Sync, err)
	}

	result := &Result{OutputDir: outputDir, Libraries: libs}

	if d.Importer != nil {
		imported, err := d.Importer.MaybeImport(ctx)
		if err != nil {
			return nil, codes.Wrap(codes.Build, err)
		}

		result.Imported = imported
	}

	return result, nil
}
