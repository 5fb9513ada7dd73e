package toolchain

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/sgb/internal/compiler"
)

// BundleID identifies Godot.app to Spotlight
const BundleID = "org.godotengine.godot"

// GetSpotlightCommand lists app bundles with Godot's bundle identifier
func GetSpotlightCommand() compiler.Command {
	return compiler.Command{
		Name: "/usr/bin/mdfind",
		Args: []string{`kMDItemCFBundleIdentifier = "` + BundleID + `"`},
	}
}

// appExecutable returns the Godot binary inside the first bundle listed
// in mdfind output, if it exists
func appExecutable(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return ""
	}

	app := strings.SplitN(output, "\n", 2)[0]
	path := filepath.Join(strings.TrimSpace(app), "Contents", "MacOS", "Godot")

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}

	return ""
}
