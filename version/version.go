// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/whiskers-launcher/companion/version.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// IsDev reports whether the binary was built without a release version.
func (i Info) IsDev() bool {
	return i.Version == "dev"
}

func (i Info) String() string {
	return fmt.Sprintf("  Commit:    %s\n  Built:     %s\n  Go:        %s\n  Platform:  %s",
		i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
