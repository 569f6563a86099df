package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if !info.IsDev() {
		t.Errorf("expected dev build, got %q", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if !strings.Contains(info.String(), info.Platform) {
		t.Errorf("String() does not mention platform: %s", info.String())
	}
}
