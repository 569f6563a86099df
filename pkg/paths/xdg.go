// Package paths provides XDG-compliant path resolution for the launcher.
//
// Resolution order:
// 1. WHISKERS_HOME (portable root) → $WHISKERS_HOME/{config,data,state,cache}
// 2. XDG env vars → $XDG_*_HOME/whiskers
// 3. Platform defaults → ~/.config/whiskers, ~/.local/share/whiskers, etc.
//
// Every file the host and its extensions exchange is resolved here, so both
// sides of the extension protocol agree on locations without passing them
// on the command line.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "whiskers"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("WHISKERS_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData
		}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getDataHome returns the base data home directory.
func getDataHome() string {
	if home := os.Getenv("WHISKERS_HOME"); home != "" {
		return filepath.Join(home, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return appData
		}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("WHISKERS_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return appData
		}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// getCacheHome returns the base cache home directory.
func getCacheHome() string {
	if home := os.Getenv("WHISKERS_HOME"); home != "" {
		return filepath.Join(home, "cache")
	}
	if xdgCacheHome := os.Getenv("XDG_CACHE_HOME"); xdgCacheHome != "" {
		return xdgCacheHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache")
	}
	return ""
}

func join(base string, elem ...string) string {
	if base == "" {
		return ""
	}
	return filepath.Join(append([]string{base, appName}, elem...)...)
}

// ConfigDir returns the launcher configuration directory.
// Used for whiskers.toml / whiskers.yml.
func ConfigDir() string {
	return join(getConfigHome())
}

// DataDir returns the launcher data directory.
// Used for installed extensions and app resources.
func DataDir() string {
	return join(getDataHome())
}

// StateDir returns the launcher state directory.
// Used for the state database, indexes, logs and pending exchange files.
func StateDir() string {
	return join(getStateHome())
}

// CacheDir returns the launcher cache directory.
func CacheDir() string {
	return join(getCacheHome())
}

// ExtensionsDir returns the root directory scanned for extension manifests.
// WHISKERS_EXTENSIONS_DIR overrides the default location.
func ExtensionsDir() string {
	if dir := os.Getenv("WHISKERS_EXTENSIONS_DIR"); dir != "" {
		return dir
	}
	return join(getDataHome(), "extensions")
}

// IndexingDir returns the directory holding regenerable index artifacts.
func IndexingDir() string {
	return join(getStateHome(), "indexing")
}

// IconsDir returns the directory where indexed app icons are copied.
func IconsDir() string {
	return join(getStateHome(), "indexing", "icons")
}

// StateDBPath returns the path to the host-local state database
// (settings, indexed apps, indexed extensions).
func StateDBPath() string {
	return join(getStateHome(), "state.db")
}

// ExchangeDir returns the directory holding the pending request/response files.
func ExchangeDir() string {
	return join(getStateHome(), "exchange")
}

// ExtensionRequestPath returns the path of the pending extension request.
func ExtensionRequestPath() string {
	return join(getStateHome(), "exchange", "extension-request.bin")
}

// ExtensionResponsePath returns the path of the pending extension response.
func ExtensionResponsePath() string {
	return join(getStateHome(), "exchange", "extension-response.bin")
}

// FormRequestPath returns the path of the pending form request.
func FormRequestPath() string {
	return join(getStateHome(), "exchange", "form-request.bin")
}

// FormResponsePath returns the path of the pending form response.
func FormResponsePath() string {
	return join(getStateHome(), "exchange", "form-response.bin")
}

// LogsDir returns the directory for log files.
func LogsDir() string {
	return join(getStateHome(), "logs")
}

// PidFilePath returns the path to the extension watcher PID file.
func PidFilePath() string {
	return join(getStateHome(), "watch.pid")
}

// AutostartDir returns the directory where the OS picks up autostart entries.
func AutostartDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup")
		}
	}
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "autostart")
}

// EnsureDirs creates all launcher directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		ConfigDir(),
		DataDir(),
		StateDir(),
		CacheDir(),
		ExtensionsDir(),
		IndexingDir(),
		ExchangeDir(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
