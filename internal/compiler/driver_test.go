package compiler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/compiler/compilertest"
	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/logger"
)

type fakeSyncer struct {
	outputDir string
	libs      []string
	err       error
}

func (s *fakeSyncer) Sync(ctx context.Context, outputDir string) ([]string, error) {
	s.outputDir = outputDir
	return s.libs, s.err
}

type fakeImporter struct {
	calls int
	err   error
}

func (i *fakeImporter) MaybeImport(ctx context.Context) (bool, error) {
	i.calls++
	return i.err == nil, i.err
}

func swiftHandler(binPath string, buildErr error) func(compiler.Command) (string, error) {
	return func(c compiler.Command) (string, error) {
		for _, arg := range c.Args {
			if arg == "--show-bin-path" {
				return binPath, nil
			}
		}

		return "", buildErr
	}
}

func newDriver(runner compiler.Runner, syncer compiler.Syncer, importer compiler.Importer) *compiler.Driver {
	return &compiler.Driver{
		Runner:     runner,
		PackageDir: "/ws/SwiftPackage",
		Profile:    config.Release,
		Syncer:     syncer,
		Importer:   importer,
		Log:        logger.Discard(),
	}
}

func TestDriver_Build_Success(t *testing.T) {
	runner := &compilertest.Runner{Handler: swiftHandler("/ws/SwiftPackage/.build/release\n", nil)}
	syncer := &fakeSyncer{libs: []string{"/ws/GodotProject/bin/libSwiftGodot.so"}}
	importer := &fakeImporter{}

	result, err := newDriver(runner, syncer, importer).Build(context.Background())
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "swift build -c release", calls[0].String())
	assert.Equal(t, "/ws/SwiftPackage", calls[0].Dir)
	assert.True(t, calls[0].Quiet, "build output is suppressed unless verbose")
	assert.Equal(t, "swift build -c release --show-bin-path", calls[1].String())

	assert.Equal(t, "/ws/SwiftPackage/.build/release", syncer.outputDir)
	assert.Equal(t, "/ws/SwiftPackage/.build/release", result.OutputDir)
	assert.Equal(t, syncer.libs, result.Libraries)
	assert.Equal(t, 1, importer.calls)
	assert.True(t, result.Imported)
}

func TestDriver_Build_Verbose(t *testing.T) {
	runner := &compilertest.Runner{Handler: swiftHandler("/out", nil)}
	d := newDriver(runner, &fakeSyncer{}, nil)
	d.Verbose = true

	_, err := d.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, runner.Calls()[0].Quiet)
}

func TestDriver_Build_NoImporter(t *testing.T) {
	runner := &compilertest.Runner{Handler: swiftHandler("/out", nil)}

	result, err := newDriver(runner, &fakeSyncer{}, nil).Build(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Imported)
}

func TestDriver_Build_CompileFailure(t *testing.T) {
	buildErr := &compiler.CommandError{
		Command:  compiler.GetBuildCommand(config.Release, "/ws/SwiftPackage", false),
		ExitCode: 1,
	}
	runner := &compilertest.Runner{Handler: swiftHandler("/out", buildErr)}
	syncer := &fakeSyncer{}

	_, err := newDriver(runner, syncer, nil).Build(context.Background())
	require.Error(t, err)

	assert.Contains(t, err.Error(), "swift build -c release")
	assert.Equal(t, codes.Build, codes.KindOf(err))
	assert.Len(t, runner.Calls(), 1, "no bin path query after a failed build")
	assert.Empty(t, syncer.outputDir)
}

func TestDriver_Build_EmptyOutputPath(t *testing.T) {
	runner := &compilertest.Runner{Handler: swiftHandler("  \n", nil)}
	syncer := &fakeSyncer{}

	_, err := newDriver(runner, syncer, nil).Build(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, compiler.ErrNoOutputPath)
	assert.Equal(t, codes.Build, codes.KindOf(err))
	assert.Empty(t, syncer.outputDir)
}

func TestDriver_Build_SyncFailure(t *testing.T) {
	runner := &compilertest.Runner{Handler: swiftHandler("/out", nil)}
	importer := &fakeImporter{}

	_, err := newDriver(runner, &fakeSyncer{err: errors.New("copy failed")}, importer).Build(context.Background())
	require.Error(t, err)

	assert.Equal(t, codes.Sync, codes.KindOf(err))
	assert.Equal(t, 0, importer.calls)
}

func TestDriver_Build_ImportFailure(t *testing.T) {
	runner := &compilertest.Runner{Handler: swiftHandler("/out", nil)}

	_, err := newDriver(runner, &fakeSyncer{}, &fakeImporter{err: errors.New("import failed")}).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
}
