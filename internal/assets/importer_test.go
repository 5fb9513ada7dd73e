package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/compiler/compilertest"
	"github.com/Norgate-AV/sgb/internal/logger"
)

func newImporter(t *testing.T, runner compiler.Runner) (*Importer, string) {
	t.Helper()

	root := t.TempDir()
	art := filepath.Join(root, "art")
	writeAsset(t, filepath.Join(art, "player.png"), epoch)

	return &Importer{
		Runner:       runner,
		GodotCommand: "godot",
		ProjectDir:   filepath.Join(root, "GodotProject"),
		WorkDir:      root,
		AssetDirs:    []string{art},
		ChecksumFile: filepath.Join(root, ".asset-checksum"),
		Log:          logger.Discard(),
	}, art
}

func TestImporter_MaybeImport(t *testing.T) {
	runner := &compilertest.Runner{}
	importer, art := newImporter(t, runner)
	ctx := context.Background()

	// First run imports and records the checksum
	imported, err := importer.MaybeImport(ctx)
	require.NoError(t, err)
	assert.True(t, imported)
	assert.Equal(t, 1, runner.Count("--import"))

	first, err := Checksum(importer.AssetDirs)
	require.NoError(t, err)

	cached, err := os.ReadFile(importer.ChecksumFile)
	require.NoError(t, err)
	assert.Equal(t, first, string(cached))

	// Unchanged assets skip the import
	imported, err = importer.MaybeImport(ctx)
	require.NoError(t, err)
	assert.False(t, imported)
	assert.Equal(t, 1, runner.Count("--import"))

	// Touching a file imports again
	later := epoch.Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(art, "player.png"), later, later))

	imported, err = importer.MaybeImport(ctx)
	require.NoError(t, err)
	assert.True(t, imported)
	assert.Equal(t, 2, runner.Count("--import"))

	calls := runner.Calls()
	assert.Equal(t, "godot --headless --path "+importer.ProjectDir+" --import", calls[0].String())
	assert.Equal(t, importer.WorkDir, calls[0].Dir)
}

func TestImporter_FailureKeepsChecksum(t *testing.T) {
	runner := &compilertest.Runner{Handler: func(c compiler.Command) (string, error) {
		return "", &compiler.CommandError{Command: c, ExitCode: 1}
	}}
	importer, _ := newImporter(t, runner)
	require.NoError(t, os.WriteFile(importer.ChecksumFile, []byte("stale"), 0o644))

	imported, err := importer.MaybeImport(context.Background())
	require.Error(t, err)
	assert.False(t, imported)
	assert.Contains(t, err.Error(), "godot --headless")

	var cmdErr *compiler.CommandError
	assert.True(t, errors.As(err, &cmdErr))

	cached, err := os.ReadFile(importer.ChecksumFile)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(cached))
}
