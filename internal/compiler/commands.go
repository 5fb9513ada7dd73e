package compiler

import "github.com/Norgate-AV/sgb/internal/config"

// SwiftCommand is the Swift toolchain driver
const SwiftCommand = "swift"

// GetBuildCommand compiles the package at packageDir
func GetBuildCommand(profile config.Profile, packageDir string, verbose bool) Command {
	return Command{
		Name:  SwiftCommand,
		Args:  []string{"build", "-c", string(profile)},
		Dir:   packageDir,
		Quiet: !verbose,
	}
}

// GetBinPathCommand prints the directory build products for profile are written to
func GetBinPathCommand(profile config.Profile, packageDir string) Command {
	return Command{
		Name: SwiftCommand,
		Args: []string{"build", "-c", string(profile), "--show-bin-path"},
		Dir:  packageDir,
	}
}

// GetVersionCommand is used to check the toolchain is installed
func GetVersionCommand() Command {
	return Command{
		Name:  SwiftCommand,
		Args:  []string{"--version"},
		Quiet: true,
	}
}
