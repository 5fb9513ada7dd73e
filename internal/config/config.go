package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/dependency"
	"github.com/Norgate-AV/sgb/internal/workspace"
)

// Default configuration values
const (
	DefaultGodotCommand  = "godot"
	DefaultSwiftGodotRev = "main"
	DefaultRelease       = false
	DefaultCodesign      = false
	DefaultVerbose       = false
	DefaultQuiet         = false
)

// Profile is the swift build configuration
type Profile string

const (
	Debug   Profile = "debug"
	Release Profile = "release"
)

// Options holds the raw, unvalidated settings gathered from flags and config files
type Options struct {
	ViewFile      string
	Root          string
	Assets        []string
	Include       []string
	Godot         string
	Cache         string
	BuilderPath   string
	BuilderRev    string
	SwiftGodotRev string
	Project       string
	Release       bool
	NoRun         bool
	Codesign      bool
	Clean         bool
	Verbose       bool
	Quiet         bool
}

// Config is the validated configuration of one invocation. Every path is
// absolute and was checked to exist when the Config was built.
type Config struct {
	// Swift file containing the view or class
	ViewFile   string
	ViewSource string

	// Root type name and how it is hosted
	ViewType string
	ViewKind ViewKind

	// Directories symlinked into the Godot project
	AssetDirs []string
	// Directories whose .swift files are copied into the sources
	IncludeDirs []string

	// Godot executable
	GodotCommand string
	RunGodot     bool

	// Root of all cached workspaces, and the workspace for this view
	CacheRoot    string
	WorkspaceDir string

	Builder       dependency.Reference
	SwiftGodotRev string
	Profile       Profile

	Verbose  bool
	Quiet    bool
	Codesign bool

	// Optional project.godot copied verbatim into the project
	CustomProject string
}

// Load reads Options from viper
func Load() Options {
	return Options{
		Root:          viper.GetString("root"),
		Assets:        viper.GetStringSlice("assets"),
		Include:       viper.GetStringSlice("include"),
		Godot:         viper.GetString("godot"),
		Cache:         viper.GetString("cache"),
		BuilderPath:   viper.GetString("builder_path"),
		BuilderRev:    viper.GetString("builder_rev"),
		SwiftGodotRev: viper.GetString("swiftgodot_rev"),
		Project:       viper.GetString("project"),
		Release:       viper.GetBool("release"),
		NoRun:         viper.GetBool("no_run"),
		Codesign:      viper.GetBool("codesign"),
		Clean:         viper.GetBool("clean"),
		Verbose:       viper.GetBool("verbose"),
		Quiet:         viper.GetBool("quiet"),
	}
}

// Validate checks option combinations that need no filesystem access
func (o Options) Validate() error {
	if o.Quiet && o.Verbose {
		return codes.Errorf(codes.Config, "cannot enable both --quiet and --verbose")
	}

	if !o.Clean && o.ViewFile == "" {
		return codes.Errorf(codes.Config, "missing expected argument '<view-file>'")
	}

	return nil
}

// CacheRoot resolves the cache root against baseDir, falling back to DefaultCacheRoot
func (o Options) CacheRoot(baseDir string) (string, error) {
	if o.Cache != "" {
		return Absolute(o.Cache, baseDir), nil
	}

	return DefaultCacheRoot()
}

// New validates opts and builds the Config. godotCommand is the already
// resolved engine executable. Nothing on disk is modified.
func New(opts Options, baseDir, godotCommand string) (*Config, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cacheRoot, err := opts.CacheRoot(baseDir)
	if err != nil {
		return nil, codes.Wrap(codes.Config, err)
	}

	viewFile := Absolute(opts.ViewFile, baseDir)
	source, err := os.ReadFile(viewFile)
	if err != nil {
		return nil, codes.Errorf(codes.Config, "view file not found at %s", viewFile)
	}

	assetDirs, err := directories(opts.Assets, baseDir, "Assets")
	if err != nil {
		return nil, err
	}

	includeDirs, err := directories(opts.Include, baseDir, "Include")
	if err != nil {
		return nil, err
	}

	var customProject string
	if opts.Project != "" {
		customProject = Absolute(opts.Project, baseDir)
		if info, err := os.Stat(customProject); err != nil || info.IsDir() {
			return nil, codes.Errorf(codes.Config, "project file not found at %s", customProject)
		}
	}

	viewType, viewKind, err := ResolveView(string(source), opts.Root)
	if err != nil {
		return nil, codes.Wrap(codes.Config, err)
	}

	profile := Debug
	if opts.Release {
		profile = Release
	}

	swiftGodotRev := opts.SwiftGodotRev
	if swiftGodotRev == "" {
		swiftGodotRev = DefaultSwiftGodotRev
	}

	var builderPath string
	if opts.BuilderPath != "" {
		builderPath = Absolute(opts.BuilderPath, baseDir)
	}

	if godotCommand == "" {
		godotCommand = DefaultGodotCommand
	}

	return &Config{
		ViewFile:      viewFile,
		ViewSource:    string(source),
		ViewType:      viewType,
		ViewKind:      viewKind,
		AssetDirs:     assetDirs,
		IncludeDirs:   includeDirs,
		GodotCommand:  godotCommand,
		RunGodot:      !opts.NoRun,
		CacheRoot:     cacheRoot,
		WorkspaceDir:  filepath.Join(cacheRoot, workspace.Name(viewFile, viewType)),
		Builder:       dependency.Resolve(builderPath, opts.BuilderRev, baseDir),
		SwiftGodotRev: swiftGodotRev,
		Profile:       profile,
		Verbose:       opts.Verbose,
		Quiet:         opts.Quiet,
		Codesign:      opts.Codesign,
		CustomProject: customProject,
	}, nil
}

// DefaultCacheRoot is ~/.swiftgodotbuilder/playgrounds
func DefaultCacheRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}

	return filepath.Join(home, ".swiftgodotbuilder", "playgrounds"), nil
}

// Absolute resolves path against baseDir, expanding a leading ~
func Absolute(path, baseDir string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	return filepath.Clean(path)
}

func directories(paths []string, baseDir, label string) ([]string, error) {
	dirs := make([]string, 0, len(paths))

	for _, p := range paths {
		if p == "" {
			continue
		}

		abs := Absolute(p, baseDir)
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return nil, codes.Errorf(codes.Config, "%s directory not found at %s", label, abs)
		}

		dirs = append(dirs, abs)
	}

	return dirs, nil
}
