// Package process inspects other processes.
package process

import (
	"os"
	"runtime"
	"syscall"
)

// IsProcessAlive reports whether a process with the given PID exists.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		// FindProcess opens a handle, which fails for dead processes.
		proc.Release()
		return true
	}

	// Signal 0 probes without delivering anything. EPERM means the process
	// exists but belongs to another user.
	err = proc.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}
