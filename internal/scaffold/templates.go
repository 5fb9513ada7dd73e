package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/dependency"
	"github.com/Norgate-AV/sgb/internal/utils"
	"github.com/Norgate-AV/sgb/internal/workspace"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

const (
	// EngineFeatures is the Godot feature version declared by the default project
	EngineFeatures = "4.4"

	// CompatibilityMinimum is the oldest Godot version the extension loads in
	CompatibilityMinimum = "4.2"

	runtimeLibrary = "SwiftGodot"
)

// platform is one [libraries]/[dependencies] row pair of the extension file
type platform struct {
	Key         string
	Arch        string
	Library     string
	Runtime     string
	RuntimeDest string
}

var platforms = []platform{
	{
		Key:         "macos",
		Library:     utils.LibraryFileName(workspace.TargetName, "darwin"),
		Runtime:     utils.LibraryFileName(runtimeLibrary, "darwin"),
		RuntimeDest: "Contents/Frameworks",
	},
	{
		Key:     "windows",
		Arch:    ".x86_64",
		Library: utils.LibraryFileName(workspace.TargetName, "windows"),
		Runtime: utils.LibraryFileName(runtimeLibrary, "windows"),
	},
	{
		Key:     "linux",
		Arch:    ".x86_64",
		Library: utils.LibraryFileName(workspace.TargetName, "linux"),
		Runtime: utils.LibraryFileName(runtimeLibrary, "linux"),
	},
}

// data is what every template is rendered with
type data struct {
	Target               string
	EntrySymbol          string
	ViewType             string
	RootClass            string
	SceneRoot            string
	Scene                string
	Builder              string
	SwiftGodotRev        string
	EngineFeatures       string
	CompatibilityMinimum string
	Platforms            []platform
}

func newData(cfg *config.Config) data {
	root := RootClassName(cfg.ViewType)

	sceneRoot := root
	if cfg.ViewKind == config.GodotClass {
		sceneRoot = cfg.ViewType
	}

	return data{
		Target:               workspace.TargetName,
		EntrySymbol:          workspace.EntrySymbol,
		ViewType:             cfg.ViewType,
		RootClass:            root,
		SceneRoot:            sceneRoot,
		Scene:                workspace.SceneFile,
		Builder:              dependency.ManifestEntry(cfg.Builder),
		SwiftGodotRev:        cfg.SwiftGodotRev,
		EngineFeatures:       EngineFeatures,
		CompatibilityMinimum: CompatibilityMinimum,
		Platforms:            platforms,
	}
}

func render(name string, d data) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

// EntryPoint renders the Swift file registering the extension's types
func EntryPoint(cfg *config.Config) ([]byte, error) {
	switch cfg.ViewKind {
	case config.GodotClass:
		return render("class_entry.swift.tmpl", newData(cfg))
	default:
		return render("gview_entry.swift.tmpl", newData(cfg))
	}
}

// Manifest renders Package.swift
func Manifest(cfg *config.Config) ([]byte, error) {
	return render("Package.swift.tmpl", newData(cfg))
}

// Project renders the default project.godot
func Project(cfg *config.Config) ([]byte, error) {
	return render("project.godot.tmpl", newData(cfg))
}

// Scene renders main.tscn
func Scene(cfg *config.Config) ([]byte, error) {
	return render("main.tscn.tmpl", newData(cfg))
}

// Extension renders the .gdextension descriptor
func Extension(cfg *config.Config) ([]byte, error) {
	return render("extension.gdextension.tmpl", newData(cfg))
}

// ExtensionList renders .godot/extension_list.cfg
func ExtensionList(cfg *config.Config) ([]byte, error) {
	return render("extension_list.cfg.tmpl", newData(cfg))
}
