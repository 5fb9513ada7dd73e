// Package pipeline runs the stages of one invocation in order: scaffold,
// build, sync, asset import, index and launch.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/Norgate-AV/sgb/internal/artifacts"
	"github.com/Norgate-AV/sgb/internal/assets"
	"github.com/Norgate-AV/sgb/internal/cache"
	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/dependency"
	"github.com/Norgate-AV/sgb/internal/launcher"
	"github.com/Norgate-AV/sgb/internal/logger"
	"github.com/Norgate-AV/sgb/internal/scaffold"
)

// Launcher starts the engine and waits for it
type Launcher interface {
	Launch(ctx context.Context) (int, error)
}

// Result describes a completed run
type Result struct {
	Written   []string
	Libraries []string
	Imported  bool
	Launched  bool

	// EngineExitCode is Godot's exit code. It never becomes the tool's exit code.
	EngineExitCode int
}

// Pipeline wires the stages for one Config
type Pipeline struct {
	Config *config.Config
	Runner compiler.Runner
	Log    *logger.Logger

	// GOOS overrides the host platform for library naming and signing
	GOOS string

	// Launcher defaults to running Config.GodotCommand
	Launcher Launcher
}

// New creates a pipeline running commands through runner
func New(cfg *config.Config, runner compiler.Runner, log *logger.Logger) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Runner: runner,
		Log:    log,
	}
}

// Run executes every stage. The first hard failure stops the run; nothing
// is launched after a failed build or sync.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cfg := p.Config

	p.Log.Info("Preparing workspace at %s", cfg.WorkspaceDir)
	p.Log.Debug("Root type: %s (%s)", cfg.ViewType, cfg.ViewKind)
	p.Log.Debug("Builder dependency: %s", dependency.Describe(cfg.Builder))

	sc := scaffold.New(cfg, p.Log)

	report, err := sc.Prepare()
	if err != nil {
		return nil, err
	}

	for _, path := range report.Written {
		p.Log.Debug("Wrote %s", path)
	}

	layout := sc.Layout()
	workDir := cfg.WorkspaceDir

	driver := &compiler.Driver{
		Runner:     p.Runner,
		PackageDir: layout.PackageDir(),
		Profile:    cfg.Profile,
		Verbose:    cfg.Verbose,
		Syncer: &artifacts.Synchronizer{
			BinDir:   layout.BinDir(),
			Codesign: cfg.Codesign,
			Runner:   p.Runner,
			WorkDir:  workDir,
			Quiet:    cfg.Quiet,
			GOOS:     p.GOOS,
			Log:      p.Log,
		},
		Log: p.Log,
	}

	if len(cfg.AssetDirs) > 0 {
		driver.Importer = &assets.Importer{
			Runner:       p.Runner,
			GodotCommand: cfg.GodotCommand,
			ProjectDir:   layout.ProjectDir(),
			WorkDir:      workDir,
			AssetDirs:    cfg.AssetDirs,
			ChecksumFile: layout.ChecksumPath(),
			Quiet:        cfg.Quiet,
			Log:          p.Log,
		}
	}

	built, err := driver.Build(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Written:   report.Written,
		Libraries: built.Libraries,
		Imported:  built.Imported,
	}

	p.record(result)

	if !cfg.RunGodot {
		p.Log.Info("Godot project ready at %s", layout.ProjectDir())
		return result, nil
	}

	code, err := p.launcher(layout.ProjectDir()).Launch(ctx)
	if err != nil {
		return result, codes.Wrap(codes.Toolchain, err)
	}

	result.Launched = true
	result.EngineExitCode = code

	if code != 0 {
		p.Log.Debug("Godot exited with code %d", code)
	}

	return result, nil
}

// record adds the workspace to the cache index. A failure only warns.
func (p *Pipeline) record(result *Result) {
	cfg := p.Config

	index, err := cache.New(cfg.CacheRoot)
	if err != nil {
		p.Log.Warn("Failed to open workspace index: %v", err)
		return
	}

	defer index.Close()

	libs := make([]string, 0, len(result.Libraries))
	for _, lib := range result.Libraries {
		libs = append(libs, filepath.Base(lib))
	}

	err = index.Store(cache.Entry{
		Name:         filepath.Base(cfg.WorkspaceDir),
		WorkspaceDir: cfg.WorkspaceDir,
		ViewFile:     cfg.ViewFile,
		ViewType:     cfg.ViewType,
		ViewKind:     cfg.ViewKind.String(),
		Profile:      string(cfg.Profile),
		Libraries:    libs,
	})
	if err != nil {
		p.Log.Warn("Failed to record workspace: %v", err)
	}
}

func (p *Pipeline) launcher(projectDir string) Launcher {
	if p.Launcher != nil {
		return p.Launcher
	}

	return launcher.New(p.Config.GodotCommand, projectDir, p.Config.WorkspaceDir, p.Log)
}
