//go:build !unix

package launcher

import (
	"errors"
	"os"
)

// terminate kills the process, there is no termination request to send
func terminate(p *os.Process) error {
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}

	return nil
}
