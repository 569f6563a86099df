package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "watch.pid")

	require.NoError(t, Acquire(path))
	running, pid, err := IsRunning(path)
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, Release(path))
	assert.NoFileExists(t, path)
	require.NoError(t, Release(path))
}

func TestAcquireReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	require.NoError(t, os.WriteFile(path, []byte("999999999"), 0644))

	require.NoError(t, Acquire(path))
	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestIsRunningGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0644))

	running, _, err := IsRunning(path)
	require.NoError(t, err)
	assert.False(t, running)
}

func TestReleaseKeepsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid()+1)), 0644))

	require.NoError(t, Release(path))
	assert.FileExists(t, path)
}
