package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/whiskers-launcher/companion/state"
)

// DesktopEntryName is the file written into the autostart directory.
const DesktopEntryName = "whiskers-launcher.desktop"

// DesktopEntryAutostart registers the launcher through an XDG autostart
// desktop entry.
type DesktopEntryAutostart struct {
	Dir  string
	Exec string
	Icon string
}

// NewDesktopEntryAutostart returns an autostart writing into dir and
// running exec at login.
func NewDesktopEntryAutostart(dir, exec string) *DesktopEntryAutostart {
	return &DesktopEntryAutostart{
		Dir:  dir,
		Exec: exec,
		Icon: "/usr/share/pixmaps/whiskers-launcher.png",
	}
}

func (a *DesktopEntryAutostart) path() string {
	return filepath.Join(a.Dir, DesktopEntryName)
}

func (a *DesktopEntryAutostart) Enable() error {
	content := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Whiskers Launcher Companion
Comment=Whiskers Launcher companion app
Terminal=false
StartupNotify=false
Icon=%s
Exec=%s
`, a.Icon, a.Exec)

	if err := state.WriteFileAtomic(a.path(), []byte(content), 0755); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

func (a *DesktopEntryAutostart) Disable() error {
	if err := os.Remove(a.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}
