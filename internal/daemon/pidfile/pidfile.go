// Package pidfile keeps a single extensions watcher running per user.
package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/whiskers-launcher/companion/pkg/process"
)

// Acquire records the current PID in path. It fails when the PID already
// recorded there belongs to a live process; a stale file is replaced.
func Acquire(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create pid directory: %w", err)
	}

	if running, pid, err := IsRunning(path); err == nil && running && pid != os.Getpid() {
		return fmt.Errorf("watcher already running with PID %d", pid)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

// Release removes path if it still records the current process.
func Release(path string) error {
	pid, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if pid != os.Getpid() {
		return nil
	}
	return os.Remove(path)
}

// Read returns the PID recorded in path.
func Read(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

// IsRunning reports whether the process recorded in path is alive. A missing
// or unparsable file means not running.
func IsRunning(path string) (bool, int, error) {
	pid, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		if _, ok := err.(*strconv.NumError); ok {
			return false, 0, nil
		}
		return false, 0, err
	}
	return process.IsProcessAlive(pid), pid, nil
}
