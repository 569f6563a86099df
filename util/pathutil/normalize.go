package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizeForLookup returns the absolute, symlink-resolved form of path,
// lower-cased on darwin and windows. Paths that do not exist yet keep their
// absolute form. App ids are derived from this value, so an app reached
// through a symlink or with different casing keeps its id.
func NormalizeForLookup(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	switch runtime.GOOS {
	case "darwin", "windows":
		return strings.ToLower(abs), nil
	}
	return abs, nil
}
