// Package testutil holds helpers shared by package tests: throwaway homes,
// stores and extension directories.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/state"
)

// TempHome points WHISKERS_HOME at a fresh directory for the duration of the
// test and returns it.
func TempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("WHISKERS_HOME", home)
	t.Setenv("WHISKERS_EXTENSIONS_DIR", "")
	return home
}

// NewStore returns a store in a temporary directory with a short lock
// timeout.
func NewStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(filepath.Join(t.TempDir(), "state.db"), state.WithLockTimeout(time.Second))
}

// WriteManifest writes a manifest file named name into root/dir and returns
// the extension directory.
func WriteManifest(t *testing.T, root, dir, name, content string) string {
	t.Helper()

	full := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(full, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(full, name), []byte(content), 0644))
	return full
}

// WriteScript writes an executable shell script into dir. Tests using it are
// skipped on Windows.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on Windows")
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// RandomString generates a random string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}
