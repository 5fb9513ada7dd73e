package utils

import (
	"path/filepath"
	"strings"
)

// LibraryExtension returns the dynamic library extension (without dot) for goos
func LibraryExtension(goos string) string {
	switch goos {
	case "windows":
		return "dll"
	case "darwin", "ios":
		return "dylib"
	default:
		return "so"
	}
}

// LibraryFileName returns the file name the linker produces for a dynamic
// library product called name on goos
func LibraryFileName(name, goos string) string {
	if goos == "windows" {
		return name + ".dll"
	}

	return "lib" + name + "." + LibraryExtension(goos)
}

// IsLibrary reports whether file has the dynamic library extension for goos
func IsLibrary(file, goos string) bool {
	return strings.TrimPrefix(filepath.Ext(file), ".") == LibraryExtension(goos)
}

// IsHidden reports whether a file or directory name is a dot entry
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
