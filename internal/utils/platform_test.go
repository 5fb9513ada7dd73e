package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibraryExtension(t *testing.T) {
	tests := []struct {
		goos     string
		expected string
	}{
		{"linux", "so"},
		{"darwin", "dylib"},
		{"windows", "dll"},
		{"freebsd", "so"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, LibraryExtension(test.goos), "LibraryExtension(%q)", test.goos)
	}
}

func TestLibraryFileName(t *testing.T) {
	assert.Equal(t, "libSwiftGodot.so", LibraryFileName("SwiftGodot", "linux"))
	assert.Equal(t, "libSwiftGodot.dylib", LibraryFileName("SwiftGodot", "darwin"))
	assert.Equal(t, "SwiftGodot.dll", LibraryFileName("SwiftGodot", "windows"))
}

func TestIsLibrary(t *testing.T) {
	assert.True(t, IsLibrary("libFoo.so", "linux"))
	assert.False(t, IsLibrary("libFoo.so.swiftmodule", "linux"))
	assert.False(t, IsLibrary("libFoo.dylib", "linux"))
	assert.True(t, IsLibrary("libFoo.dylib", "darwin"))
	assert.True(t, IsLibrary("Foo.dll", "windows"))
	assert.False(t, IsLibrary("Foo", "windows"))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".DS_Store"))
	assert.True(t, IsHidden(".godot"))
	assert.False(t, IsHidden("sprites"))
	assert.False(t, IsHidden("."))
}
