// Package launcher hands the current process over to the service binary
// once the environment is provisioned and its dependencies are reachable.
package launcher

import (
	"fmt"
	"os/exec"
)

// Resolve looks the command up on PATH and returns its absolute path.
func Resolve(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("command %q not found: %w", name, err)
	}
	return path, nil
}

// Launch replaces the current process with argv[0], resolved via PATH,
// running with the given environment. On Unix it never returns on success.
func Launch(argv []string, env []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	path, err := Resolve(argv[0])
	if err != nil {
		return err
	}

	return launch(path, argv, env)
}
