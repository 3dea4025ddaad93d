//go:build windows

package shim

import (
	"os"
	"os/exec"
)

// execReplace has no process-image-replacement primitive on Windows, so it
// spawns the target with inherited stdio and forwards its exit code,
// exiting this process with the same code the child used.
func execReplace(binPath string, args []string, env []string) error {
	cmd := exec.Command(binPath, args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
