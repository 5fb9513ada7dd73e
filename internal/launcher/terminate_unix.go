//go:build unix

package launcher

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// terminate asks the process to exit with SIGTERM. A process that already
// exited is left alone.
func terminate(p *os.Process) error {
	if err := p.Signal(unix.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}

	return nil
}
