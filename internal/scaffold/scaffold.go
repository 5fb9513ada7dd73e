// Package scaffold brings a workspace to the state described by a Config:
// the Swift package around the view file and the Godot project loading it.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/fsutil"
	"github.com/Norgate-AV/sgb/internal/logger"
	"github.com/Norgate-AV/sgb/internal/workspace"
)

// Report lists the files Prepare wrote. Unchanged files are not listed.
type Report struct {
	Written []string
}

// Scaffold prepares the workspace for one Config
type Scaffold struct {
	cfg    *config.Config
	layout workspace.Layout
	log    *logger.Logger
	report *Report
}

// New creates a scaffold for cfg.WorkspaceDir
func New(cfg *config.Config, log *logger.Logger) *Scaffold {
	return &Scaffold{
		cfg:    cfg,
		layout: workspace.NewLayout(cfg.WorkspaceDir),
		log:    log,
	}
}

// Layout returns the workspace paths
func (s *Scaffold) Layout() workspace.Layout {
	return s.layout
}

// RootClassName is the generated Node2D wrapping a GView
func RootClassName(viewType string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}

		return -1
	}, viewType)

	if cleaned == "" {
		cleaned = "View"
	}

	return cleaned + "RootNode"
}

// Prepare creates or updates every generated file. Any failure aborts.
func (s *Scaffold) Prepare() (*Report, error) {
	s.report = &Report{}

	steps := []func() error{
		s.ensureDirectories,
		s.writeSwiftSources,
		s.writePackageManifest,
		s.writeGodotFiles,
		s.linkAssetDirectories,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return s.report, codes.Wrap(codes.Scaffold, err)
		}
	}

	return s.report, nil
}

func (s *Scaffold) ensureDirectories() error {
	l := s.layout

	return fsutil.EnsureDirs(
		s.cfg.CacheRoot,
		l.Root,
		l.PackageDir(),
		l.SourcesDir(),
		l.ProjectDir(),
		l.BinDir(),
		l.HiddenDir(),
	)
}

// source is a file planned for the sources directory
type source struct {
	name    string
	content []byte
}

// writeSwiftSources plans the full set of sources, removes every other
// .swift file from the sources directory, then writes the plan
func (s *Scaffold) writeSwiftSources() error {
	plan, err := s.planSources()
	if err != nil {
		return err
	}

	if err := s.clearStaleSources(plan); err != nil {
		return err
	}

	for _, src := range plan {
		if err := s.write(src.content, filepath.Join(s.layout.SourcesDir(), src.name)); err != nil {
			return err
		}
	}

	return nil
}

// planSources orders the view file first, then include directory files
// whose names are not taken yet, then the generated entry point
func (s *Scaffold) planSources() ([]source, error) {
	plan := []source{{name: filepath.Base(s.cfg.ViewFile), content: []byte(s.cfg.ViewSource)}}
	taken := map[string]bool{plan[0].name: true}

	for _, dir := range s.cfg.IncludeDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read include directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || filepath.Ext(name) != workspace.SourceExtension {
				continue
			}

			if taken[name] {
				s.log.Debug("Skipping %s (already exists)", name)
				continue
			}

			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}

			plan = append(plan, source{name: name, content: content})
			taken[name] = true
			s.log.Debug("Including: %s", name)
		}
	}

	entry, err := EntryPoint(s.cfg)
	if err != nil {
		return nil, err
	}

	for i := range plan {
		if plan[i].name == workspace.EntryPointFile {
			plan[i].content = entry
			return plan, nil
		}
	}

	return append(plan, source{name: workspace.EntryPointFile, content: entry}), nil
}

// clearStaleSources removes .swift files that are not part of plan.
// Nothing else in the directory is touched.
func (s *Scaffold) clearStaleSources(plan []source) error {
	keep := make(map[string]bool, len(plan))
	for _, src := range plan {
		keep[src.name] = true
	}

	entries, err := os.ReadDir(s.layout.SourcesDir())
	if err != nil {
		return fmt.Errorf("failed to read sources directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if keep[name] || filepath.Ext(name) != workspace.SourceExtension {
			continue
		}

		if err := os.RemoveAll(filepath.Join(s.layout.SourcesDir(), name)); err != nil {
			return fmt.Errorf("failed to remove stale source %s: %w", name, err)
		}

		s.log.Debug("Removed stale source: %s", name)
	}

	return nil
}

func (s *Scaffold) writePackageManifest() error {
	manifest, err := Manifest(s.cfg)
	if err != nil {
		return err
	}

	return s.write(manifest, s.layout.ManifestPath())
}

func (s *Scaffold) writeGodotFiles() error {
	if err := s.writeProject(); err != nil {
		return err
	}

	files := []struct {
		render func(*config.Config) ([]byte, error)
		path   string
	}{
		{Scene, s.layout.ScenePath()},
		{Extension, s.layout.ExtensionPath()},
		{ExtensionList, s.layout.ExtensionListPath()},
	}

	for _, f := range files {
		content, err := f.render(s.cfg)
		if err != nil {
			return err
		}

		if err := s.write(content, f.path); err != nil {
			return err
		}
	}

	return nil
}

// writeProject copies a custom project.godot verbatim, replacing whatever
// is there, or writes the default one
func (s *Scaffold) writeProject() error {
	dst := s.layout.ProjectPath()

	if s.cfg.CustomProject == "" {
		content, err := Project(s.cfg)
		if err != nil {
			return err
		}

		return s.write(content, dst)
	}

	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dst, err)
	}

	if err := fsutil.CopyFile(s.cfg.CustomProject, dst); err != nil {
		return fmt.Errorf("failed to copy custom project file: %w", err)
	}

	s.report.Written = append(s.report.Written, dst)
	s.log.Debug("Using custom project.godot from %s", s.cfg.CustomProject)

	return nil
}

// linkAssetDirectories replaces <project>/<base name> with a symlink to each asset directory
func (s *Scaffold) linkAssetDirectories() error {
	for _, dir := range s.cfg.AssetDirs {
		dst := filepath.Join(s.layout.ProjectDir(), filepath.Base(dir))

		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dst, err)
		}

		if err := os.Symlink(dir, dst); err != nil {
			return fmt.Errorf("failed to link assets directory %s: %w", dir, err)
		}

		s.log.Debug("Symlinked assets directory '%s' -> %s", filepath.Base(dir), dir)
	}

	return nil
}

func (s *Scaffold) write(content []byte, path string) error {
	written, err := fsutil.WriteIfChanged(content, path)
	if err != nil {
		return err
	}

	if written {
		s.report.Written = append(s.report.Written, path)
	}

	return nil
}
