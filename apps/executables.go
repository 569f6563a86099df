package apps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/whiskers-launcher/companion/schema"
)

// ExecutableEnumerator lists the executable files found directly inside a
// set of directories. The title is the file name without extension.
type ExecutableEnumerator struct {
	Dirs []string
}

// PathEnumerator enumerates the directories of $PATH.
func PathEnumerator() *ExecutableEnumerator {
	return &ExecutableEnumerator{Dirs: filepath.SplitList(os.Getenv("PATH"))}
}

func (e *ExecutableEnumerator) Enumerate(ctx context.Context) ([]schema.App, error) {
	var found []schema.App
	for _, dir := range e.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || !isExecutable(info) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			found = append(found, schema.NewApp(StableID(path), title, path))
		}
	}
	return found, nil
}

func isExecutable(info os.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return strings.EqualFold(filepath.Ext(info.Name()), ".exe")
	}
	return info.Mode().Perm()&0111 != 0
}
