package config

import (
	"os"
	"path/filepath"
)

// configExtensions are the formats viper can read, in lookup order
var configExtensions = []string{"yml", "yaml", "json", "toml"}

// LocalConfigName is the base name of a project-local config file
const LocalConfigName = ".swiftgodotbuilder"

// FindLocalConfig finds local config file by walking up directories
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range configExtensions {
			path := filepath.Join(dir, LocalConfigName+"."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// GlobalConfigDir is the per-user config directory, or "" if unknown
func GlobalConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "swiftgodotbuilder")
}

// FindGlobalConfig returns the first config.<ext> in the global config directory
func FindGlobalConfig() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}

	for _, ext := range configExtensions {
		path := filepath.Join(dir, "config."+ext)

		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
