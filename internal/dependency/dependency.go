// Package dependency decides how the generated package depends on
// SwiftGodotBuilder: a local checkout or a remote revision.
package dependency

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvBuilderPath points at a local SwiftGodotBuilder checkout
	EnvBuilderPath = "SWIFTGODOTCLI_BUILDER_PATH"

	// DefaultRevision is used when no revision is supplied
	DefaultRevision = "main"

	PackageName = "SwiftGodotBuilder"
	RemoteURL   = "https://github.com/johnsusek/SwiftGodotBuilder"
	manifest    = "Package.swift"
)

// Reference is either Local or Remote
type Reference interface {
	isReference()
}

// Local depends on a package checkout on this machine
type Local struct {
	Path string
}

// Remote depends on a branch, tag or commit of the upstream repository
type Remote struct {
	Revision string
}

func (Local) isReference()  {}
func (Remote) isReference() {}

// Resolve picks the dependency reference. An explicit override wins, then
// the EnvBuilderPath hint (resolved against baseDir) if it holds a package
// manifest, then Remote at rev or DefaultRevision.
func Resolve(overridePath, rev, baseDir string) Reference {
	if overridePath != "" {
		return Local{Path: overridePath}
	}

	if env := os.Getenv(EnvBuilderPath); env != "" {
		path := env
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		path = filepath.Clean(path)
		if _, err := os.Stat(filepath.Join(path, manifest)); err == nil {
			return Local{Path: path}
		}
	}

	if rev == "" {
		rev = DefaultRevision
	}

	return Remote{Revision: rev}
}

// ManifestEntry renders ref as a dependency entry of Package.swift
func ManifestEntry(ref Reference) string {
	switch r := ref.(type) {
	case Local:
		return fmt.Sprintf(".package(name: %q, path: \"%s\")", PackageName, escape(r.Path))
	case Remote:
		return fmt.Sprintf(".package(url: %q, branch: \"%s\")", RemoteURL, escape(r.Revision))
	default:
		panic(fmt.Sprintf("dependency: unhandled reference %T", ref))
	}
}

// Describe returns a short human readable form of ref for logs
func Describe(ref Reference) string {
	switch r := ref.(type) {
	case Local:
		return "local " + r.Path
	case Remote:
		return RemoteURL + "@" + r.Revision
	default:
		return fmt.Sprintf("%v", ref)
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
