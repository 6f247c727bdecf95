//go:build windows

package launcher

import (
	"os"
	"os/exec"
	"os/signal"
)

// launch spawns the target as a child and mirrors its exit code; Windows
// has no execve, so in-place replacement is not available. Interrupt
// signals are swallowed here and left for the child's console handler.
func launch(path string, argv []string, env []string) error {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	defer signal.Stop(ch)
	go func() {
		for range ch {
		}
	}()

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}
