//go:build !darwin

package toolchain

import (
	"context"

	"github.com/Norgate-AV/sgb/internal/compiler"
)

func locateEngineExecutable(ctx context.Context, r compiler.Runner) string {
	return ""
}
