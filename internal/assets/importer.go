package assets

import (
	"context"
	"fmt"
	"os"

	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/fsutil"
	"github.com/Norgate-AV/sgb/internal/logger"
)

// Importer runs Godot's headless import when the asset checksum changed
type Importer struct {
	Runner       compiler.Runner
	GodotCommand string
	ProjectDir   string
	WorkDir      string
	AssetDirs    []string

	// ChecksumFile caches the checksum of the last successful import
	ChecksumFile string
	Quiet        bool
	Log          *logger.Logger
}

// MaybeImport imports unless the assets match the cached checksum. It
// reports whether the import ran.
func (i *Importer) MaybeImport(ctx context.Context) (bool, error) {
	current, err := Checksum(i.AssetDirs)
	if err != nil {
		return false, err
	}

	if cached, err := os.ReadFile(i.ChecksumFile); err == nil && string(cached) == current {
		i.Log.Debug("Assets unchanged, skipping import")
		return false, nil
	}

	i.Log.Info("Importing Godot resources (headless)...")

	if err := i.Runner.Run(ctx, GetImportCommand(i.GodotCommand, i.ProjectDir, i.WorkDir, i.Quiet)); err != nil {
		return false, err
	}

	if err := fsutil.WriteAtomic([]byte(current), i.ChecksumFile, 0o644); err != nil {
		return true, fmt.Errorf("failed to record asset checksum: %w", err)
	}

	return true, nil
}

// GetImportCommand re-imports every resource of the project without a window
func GetImportCommand(godot, projectDir, dir string, quiet bool) compiler.Command {
	return compiler.Command{
		Name:  godot,
		Args:  []string{"--headless", "--path", projectDir, "--import"},
		Dir:   dir,
		Quiet: quiet,
	}
}
