package binary

import (
	"os/exec"
)

// Available looks binName up in PATH and returns its resolved location.
func Available(binName string) (string, bool) {
	path, err := exec.LookPath(binName)

	return path, err == nil
}
