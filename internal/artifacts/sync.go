// Package artifacts installs freshly built dynamic libraries into the
// Godot project.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/fsutil"
	"github.com/Norgate-AV/sgb/internal/logger"
	"github.com/Norgate-AV/sgb/internal/utils"
)

var (
	// ErrArtifactsMissing is returned when the build output directory does not exist
	ErrArtifactsMissing = errors.New("build artifacts not found")

	// ErrNoLibraries is returned when the build output holds no dynamic library
	ErrNoLibraries = errors.New("no dynamic libraries produced by swift build")
)

// Synchronizer copies the libraries of a build into the project's bin directory
type Synchronizer struct {
	BinDir string

	// Codesign re-signs each copied library ad hoc where supported
	Codesign bool
	Runner   compiler.Runner
	WorkDir  string
	Quiet    bool

	// GOOS selects the library extension and signing support, runtime.GOOS when empty
	GOOS string
	Log  *logger.Logger
}

// Sync replaces the libraries in BinDir with those in outputDir and
// returns the installed paths
func (s *Synchronizer) Sync(ctx context.Context, outputDir string) ([]string, error) {
	goos := s.goos()

	if !fsutil.DirExists(outputDir) {
		return nil, codes.Wrap(codes.Build, fmt.Errorf("%w at %s", ErrArtifactsMissing, outputDir))
	}

	libs, err := CollectLibraries(outputDir, goos)
	if err != nil {
		return nil, codes.Wrap(codes.Sync, err)
	}

	if len(libs) == 0 {
		return nil, codes.Wrap(codes.Build, fmt.Errorf("%w in %s", ErrNoLibraries, outputDir))
	}

	if err := RemoveLibraries(s.BinDir, goos); err != nil {
		return nil, codes.Wrap(codes.Sync, err)
	}

	copied := make([]string, 0, len(libs))
	for _, lib := range libs {
		dst := filepath.Join(s.BinDir, lib)
		if err := fsutil.CopyFile(filepath.Join(outputDir, lib), dst); err != nil {
			return nil, codes.Wrap(codes.Sync, fmt.Errorf("failed to copy %s: %w", lib, err))
		}

		s.Log.Debug("Copied library: %s", lib)
		copied = append(copied, dst)
	}

	if s.Codesign && SupportsCodesign(goos) {
		s.sign(ctx, copied)
	}

	return copied, nil
}

// sign failures are warnings, an unsigned local build may still load
func (s *Synchronizer) sign(ctx context.Context, libs []string) {
	for _, lib := range libs {
		if err := s.Runner.Run(ctx, GetCodesignCommand(lib, s.WorkDir, s.Quiet)); err != nil {
			s.Log.Warn("Failed to codesign %s", filepath.Base(lib))
		}
	}
}

func (s *Synchronizer) goos() string {
	if s.GOOS != "" {
		return s.GOOS
	}

	return runtime.GOOS
}

// CollectLibraries returns the names of the dynamic libraries directly in dir, sorted
func CollectLibraries(dir, goos string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read build output directory: %w", err)
	}

	var libs []string
	for _, entry := range entries {
		if entry.IsDir() || !utils.IsLibrary(entry.Name(), goos) {
			continue
		}

		libs = append(libs, entry.Name())
	}

	sort.Strings(libs)

	return libs, nil
}

// RemoveLibraries deletes every library with goos's extension from dir,
// skipping hidden entries
func RemoveLibraries(dir, goos string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if utils.IsHidden(name) || !utils.IsLibrary(name, goos) {
			continue
		}

		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to remove stale library %s: %w", name, err)
		}
	}

	return nil
}
