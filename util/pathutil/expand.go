package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a leading ~ and $VAR references and returns the result as
// an absolute path.
func Expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = home + strings.TrimPrefix(path, "~")
	}
	return filepath.Abs(os.ExpandEnv(path))
}
