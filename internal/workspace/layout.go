package workspace

import "path/filepath"

const (
	// TargetName is the name of the generated Swift package, product and target
	TargetName = "SwiftGodotBuilderPlayground"

	// EntrySymbol is the C symbol the engine calls to initialize the extension
	EntrySymbol = "swift_entry_point"

	// SourceExtension is the extension of files compiled into the target
	SourceExtension = ".swift"

	ManifestFile      = "Package.swift"
	EntryPointFile    = "PlaygroundRoot.swift"
	ProjectFile       = "project.godot"
	SceneFile         = "main.tscn"
	ExtensionListFile = "extension_list.cfg"
	ChecksumFile      = ".asset-checksum"
)

// Layout holds every path inside a workspace directory
type Layout struct {
	Root string
}

// NewLayout returns the layout rooted at dir
func NewLayout(dir string) Layout {
	return Layout{Root: dir}
}

// PackageDir is the generated Swift package
func (l Layout) PackageDir() string {
	return filepath.Join(l.Root, "SwiftPackage")
}

// SourcesDir holds every source file compiled into the target
func (l Layout) SourcesDir() string {
	return filepath.Join(l.PackageDir(), "Sources", TargetName)
}

// ManifestPath is the package manifest
func (l Layout) ManifestPath() string {
	return filepath.Join(l.PackageDir(), ManifestFile)
}

// ProjectDir is the generated Godot project
func (l Layout) ProjectDir() string {
	return filepath.Join(l.Root, "GodotProject")
}

// BinDir receives the synced dynamic libraries
func (l Layout) BinDir() string {
	return filepath.Join(l.ProjectDir(), "bin")
}

// HiddenDir is the engine's metadata directory
func (l Layout) HiddenDir() string {
	return filepath.Join(l.ProjectDir(), ".godot")
}

func (l Layout) ProjectPath() string {
	return filepath.Join(l.ProjectDir(), ProjectFile)
}

func (l Layout) ScenePath() string {
	return filepath.Join(l.ProjectDir(), SceneFile)
}

// ExtensionPath is the plugin descriptor
func (l Layout) ExtensionPath() string {
	return filepath.Join(l.ProjectDir(), TargetName+".gdextension")
}

func (l Layout) ExtensionListPath() string {
	return filepath.Join(l.HiddenDir(), ExtensionListFile)
}

// ChecksumPath is the cached asset checksum record
func (l Layout) ChecksumPath() string {
	return filepath.Join(l.Root, ChecksumFile)
}
