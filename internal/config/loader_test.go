package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("root", "", "Root type")
	cmd.Flags().StringArray("assets", []string{}, "Asset directories")
	cmd.Flags().StringArray("include", []string{}, "Include directories")
	cmd.Flags().String("godot", "", "Godot executable")
	cmd.Flags().String("builder-rev", "", "Builder revision")
	cmd.Flags().Bool("release", false, "Release build")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	cmd.Flags().BoolP("quiet", "q", false, "Quiet output")

	return cmd
}

func isolateGlobalConfig(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	dir := GlobalConfigDir()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	return dir
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_SetupViperDefaults(t *testing.T) {
	viper.Reset()
	loader := NewLoader()
	loader.setupViperDefaults()

	assert.Equal(t, "main", viper.GetString("swiftgodot_rev"))
	assert.Equal(t, false, viper.GetBool("release"))
	assert.Equal(t, false, viper.GetBool("codesign"))
	assert.Equal(t, false, viper.GetBool("verbose"))
	assert.Equal(t, false, viper.GetBool("quiet"))
}

func TestLoader_LoadGlobalConfig(t *testing.T) {
	t.Run("loads yaml config", func(t *testing.T) {
		viper.Reset()
		dir := isolateGlobalConfig(t)

		content := `godot: "/Applications/Godot.app/Contents/MacOS/Godot"
swiftgodot_rev: "v0.60"
verbose: true`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))

		NewLoader().loadGlobalConfig()

		assert.Equal(t, "/Applications/Godot.app/Contents/MacOS/Godot", viper.GetString("godot"))
		assert.Equal(t, "v0.60", viper.GetString("swiftgodot_rev"))
		assert.Equal(t, true, viper.GetBool("verbose"))
	})

	t.Run("loads json config", func(t *testing.T) {
		viper.Reset()
		dir := isolateGlobalConfig(t)

		content := `{"godot": "/opt/godot", "release": true}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644))

		NewLoader().loadGlobalConfig()

		assert.Equal(t, "/opt/godot", viper.GetString("godot"))
		assert.Equal(t, true, viper.GetBool("release"))
	})

	t.Run("handles missing global config gracefully", func(t *testing.T) {
		viper.Reset()
		isolateGlobalConfig(t)

		assert.NotPanics(t, func() {
			NewLoader().loadGlobalConfig()
		})
		assert.Equal(t, "", viper.GetString("godot"))
	})
}

func TestLoader_LoadLocalConfig(t *testing.T) {
	t.Run("walks up directory tree to find config", func(t *testing.T) {
		viper.Reset()

		tempDir := t.TempDir()
		subDir := filepath.Join(tempDir, "Sources", "Views")
		require.NoError(t, os.MkdirAll(subDir, 0o755))

		content := `assets: ["art", "sfx"]
builder_rev: "dev"`
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".swiftgodotbuilder.yml"), []byte(content), 0o644))

		viewFile := writeView(t, subDir, "View.swift", gviewSource)

		NewLoader().loadLocalConfig([]string{viewFile})

		assert.Equal(t, []string{"art", "sfx"}, viper.GetStringSlice("assets"))
		assert.Equal(t, "dev", viper.GetString("builder_rev"))
	})

	t.Run("handles empty args", func(t *testing.T) {
		viper.Reset()

		assert.NotPanics(t, func() {
			NewLoader().loadLocalConfig([]string{})
		})
	})
}

func TestLoader_BindCommandFlags(t *testing.T) {
	viper.Reset()

	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("root", "HUD"))
	require.NoError(t, cmd.Flags().Set("assets", "art"))
	require.NoError(t, cmd.Flags().Set("assets", "sfx"))
	require.NoError(t, cmd.Flags().Set("builder-rev", "v1.2.0"))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	NewLoader().bindCommandFlags(cmd)

	assert.Equal(t, "HUD", viper.GetString("root"))
	assert.Equal(t, []string{"art", "sfx"}, viper.GetStringSlice("assets"))
	assert.Equal(t, "v1.2.0", viper.GetString("builder_rev"))
	assert.Equal(t, true, viper.GetBool("verbose"))
}

func TestLoader_LoadForBuild_Integration(t *testing.T) {
	viper.Reset()
	globalDir := isolateGlobalConfig(t)

	globalContent := `godot: "/global/godot"
builder_rev: "global"
release: true`
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yml"), []byte(globalContent), 0o644))

	localDir := t.TempDir()
	localContent := `builder_rev: "local"
verbose: true`
	require.NoError(t, os.WriteFile(filepath.Join(localDir, ".swiftgodotbuilder.yml"), []byte(localContent), 0o644))

	viewFile := writeView(t, localDir, "View.swift", gviewSource)

	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("godot", "/flag/godot"))

	opts := NewLoader().LoadForBuild(cmd, []string{viewFile})

	// Flag value should win
	assert.Equal(t, "/flag/godot", opts.Godot)
	// Local config should override global
	assert.Equal(t, "local", opts.BuilderRev)
	assert.True(t, opts.Verbose)
	// Global config still applies where nothing overrides it
	assert.True(t, opts.Release)
	assert.Equal(t, viewFile, opts.ViewFile)
	assert.Equal(t, DefaultSwiftGodotRev, opts.SwiftGodotRev)
}

func TestLoader_LoadForBuild_PathsKeepCommas(t *testing.T) {
	viper.Reset()
	isolateGlobalConfig(t)

	viewFile := writeView(t, t.TempDir(), "View.swift", gviewSource)

	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("assets", "/tmp/my,art"))
	require.NoError(t, cmd.Flags().Set("assets", "/tmp/b"))
	require.NoError(t, cmd.Flags().Set("include", "shared,views"))

	opts := NewLoader().LoadForBuild(cmd, []string{viewFile})

	assert.Equal(t, []string{"/tmp/my,art", "/tmp/b"}, opts.Assets)
	assert.Equal(t, []string{"shared,views"}, opts.Include)
}

func TestLoader_LoadForBuild_PathsFromConfigWithoutFlags(t *testing.T) {
	viper.Reset()
	isolateGlobalConfig(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".swiftgodotbuilder.yml"), []byte(`assets: ["art", "sfx"]`), 0o644))
	viewFile := writeView(t, dir, "View.swift", gviewSource)

	opts := NewLoader().LoadForBuild(newTestCommand(), []string{viewFile})

	assert.Equal(t, []string{"art", "sfx"}, opts.Assets)
}
