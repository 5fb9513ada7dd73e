// Package toolchain checks for the Swift toolchain and finds Godot.
package toolchain

import (
	"context"
	"os/exec"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/compiler"
	"github.com/Norgate-AV/sgb/internal/config"
)

var lookPath = exec.LookPath

// CheckSwift fails unless `swift --version` succeeds
func CheckSwift(ctx context.Context, r compiler.Runner) error {
	if err := r.Run(ctx, compiler.GetVersionCommand()); err != nil {
		return codes.Errorf(codes.Toolchain, "Swift toolchain not found.\nInstall Xcode from the App Store or run: xcode-select --install")
	}

	return nil
}

// CheckGodot fails unless `<command> --version` succeeds
func CheckGodot(ctx context.Context, r compiler.Runner, command string) error {
	c := compiler.Command{Name: command, Args: []string{"--version"}, Quiet: true}
	if err := r.Run(ctx, c); err != nil {
		return codes.Errorf(codes.Toolchain, "Godot not found at '%s'.\nInstall Godot 4.x from https://godotengine.org or specify path with --godot", command)
	}

	return nil
}

// ResolveGodotCommand prefers godot on PATH, then a platform specific
// install location, then plain "godot"
func ResolveGodotCommand(ctx context.Context, r compiler.Runner) string {
	if _, err := lookPath(config.DefaultGodotCommand); err == nil {
		return config.DefaultGodotCommand
	}

	if path := locateEngineExecutable(ctx, r); path != "" {
		return path
	}

	return config.DefaultGodotCommand
}
