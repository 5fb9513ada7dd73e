package cache

import "time"

// Entry describes the last successful build of one workspace
type Entry struct {
	// Name is the workspace directory name and the index key
	Name string `json:"name"`

	// WorkspaceDir is the absolute path of the workspace
	WorkspaceDir string `json:"workspace_dir"`

	// ViewFile is the Swift file the workspace was built from
	ViewFile string `json:"view_file"`

	// ViewType is the root type name, ViewKind how it is hosted
	ViewType string `json:"view_type"`
	ViewKind string `json:"view_kind"`

	// Profile is the swift build configuration used
	Profile string `json:"profile"`

	// Libraries lists the library file names copied into the project
	Libraries []string `json:"libraries"`

	// Timestamp when this entry was recorded
	Timestamp time.Time `json:"timestamp"`
}
