package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestLauncherError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeExtensionNotFound, "extension not found")
	if err.Code != ErrCodeExtensionNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeExtensionNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeStoreWrite, "write failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeStoreWrite) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeExtensionNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("extension", "calc").WithDetail("attempt", 2)
	if detailed.Details["extension"] != "calc" {
		t.Error("WithDetail should add details")
	}
}

func TestIsFollowsNestedCauses(t *testing.T) {
	inner := ProtocolDecode("search results", fmt.Errorf("unexpected EOF"))
	outer := ExtensionFailed("calc", inner)

	if !Is(outer, ErrCodeProtocolDecode) {
		t.Error("Is should find a code carried by a nested LauncherError")
	}
	if GetCode(outer) != ErrCodeExtensionFailed {
		t.Errorf("GetCode should return the outermost code, got %s", GetCode(outer))
	}

	stdWrapped := fmt.Errorf("context: %w", inner)
	if GetCode(stdWrapped) != ErrCodeProtocolDecode {
		t.Errorf("GetCode should unwrap fmt errors, got %s", GetCode(stdWrapped))
	}
}

func TestErrorConstructors(t *testing.T) {
	notFound := ExtensionNotFound("calc")
	if notFound.Code != ErrCodeExtensionNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeExtensionNotFound, notFound.Code)
	}
	if notFound.Details["extension"] != "calc" {
		t.Error("ExtensionNotFound should record the extension id")
	}

	manifest := ManifestInvalid("/ext/calc/manifest.json", fmt.Errorf("bad json"))
	if manifest.Details["path"] != "/ext/calc/manifest.json" {
		t.Error("ManifestInvalid should record the path")
	}
	if manifest.Cause == nil {
		t.Error("ManifestInvalid should keep its cause")
	}

	write := StoreWrite("settings", fmt.Errorf("disk full"))
	if write.Code != ErrCodeStoreWrite || write.Details["record"] != "settings" {
		t.Errorf("unexpected StoreWrite error: %+v", write)
	}

	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode on a plain error should be empty")
	}
}

func TestToJSON(t *testing.T) {
	err := ConfigInvalid("bad transport mode").WithDetail("mode", "pipe")
	out := err.ToJSON()
	if out == "" {
		t.Fatal("ToJSON returned empty output")
	}
	for _, want := range []string{`"code": "CONFIG_INVALID"`, `"mode": "pipe"`} {
		if !strings.Contains(out, want) {
			t.Errorf("ToJSON output missing %s:\n%s", want, out)
		}
	}
}
