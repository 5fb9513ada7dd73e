package config

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command flag names to viper keys
var flagKeys = map[string]string{
	"root":           "root",
	"assets":         "assets",
	"include":        "include",
	"godot":          "godot",
	"cache":          "cache",
	"builder-path":   "builder_path",
	"builder-rev":    "builder_rev",
	"swiftgodot-rev": "swiftgodot_rev",
	"project":        "project",
	"release":        "release",
	"no-run":         "no_run",
	"codesign":       "codesign",
	"clean":          "clean",
	"verbose":        "verbose",
	"quiet":          "quiet",
}

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForBuild layers defaults, the global config, the config nearest to
// the view file and the command flags, in increasing precedence
func (l *Loader) LoadForBuild(cmd *cobra.Command, args []string) Options {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig(args)
	l.bindCommandFlags(cmd)

	opts := Load()
	opts.Assets = pathFlag(cmd, "assets", opts.Assets)
	opts.Include = pathFlag(cmd, "include", opts.Include)

	if len(args) > 0 {
		opts.ViewFile = args[0]
	}

	return opts
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("swiftgodot_rev", DefaultSwiftGodotRev)
	viper.SetDefault("release", DefaultRelease)
	viper.SetDefault("codesign", DefaultCodesign)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("quiet", DefaultQuiet)
}

// loadGlobalConfig loads the per-user configuration
func (l *Loader) loadGlobalConfig() {
	if path := FindGlobalConfig(); path != "" {
		viper.SetConfigFile(path)
		_ = viper.ReadInConfig()
	}
}

// loadLocalConfig merges the configuration nearest to the view file
func (l *Loader) loadLocalConfig(args []string) {
	if len(args) > 0 {
		absFirstFile, err := filepath.Abs(args[0])
		if err != nil {
			return // silently ignore, New() will handle validation
		}

		localPath := FindLocalConfig(filepath.Dir(absFirstFile))
		if localPath != "" {
			viper.SetConfigFile(localPath)
			_ = viper.MergeInConfig()
		}
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}

// pathFlag returns the repeated values of a string array flag set on the
// command line, unsplit, or fallback when the flag was not given
func pathFlag(cmd *cobra.Command, name string, fallback []string) []string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed || flag.Value.Type() != "stringArray" {
		return fallback
	}

	values, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return fallback
	}

	return values
}
