//go:build darwin

package toolchain

import (
	"context"

	"github.com/Norgate-AV/sgb/internal/compiler"
)

// locateEngineExecutable asks Spotlight for an installed Godot.app
func locateEngineExecutable(ctx context.Context, r compiler.Runner) string {
	out, err := r.Output(ctx, GetSpotlightCommand())
	if err != nil {
		return ""
	}

	return appExecutable(out)
}
