//go:build unix

package launcher

import (
	"fmt"
	"syscall"
)

// launch execs the target in place. The launcher's PID, stdio and signal
// dispositions all carry over to the service.
func launch(path string, argv []string, env []string) error {
	if err := syscall.Exec(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
