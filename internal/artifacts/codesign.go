package artifacts

import "github.com/Norgate-AV/sgb/internal/compiler"

// SupportsCodesign reports whether goos has ad hoc code signing
func SupportsCodesign(goos string) bool {
	return goos == "darwin"
}

// GetCodesignCommand signs lib with an ad hoc identity
func GetCodesignCommand(lib, dir string, quiet bool) compiler.Command {
	return compiler.Command{
		Name:  "codesign",
		Args:  []string{"--force", "--deep", "--sign", "-", lib},
		Dir:   dir,
		Quiet: quiet,
	}
}
