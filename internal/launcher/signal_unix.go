//go:build unix

package launcher

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// interruptProcess sends SIGINT to pid. A process that is already gone is not
// an error.
func interruptProcess(pid int) error {
	err := unix.Kill(pid, unix.SIGINT)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}

// exitStatus maps a finished process to a shell-style exit status.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
