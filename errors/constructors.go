package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LauncherError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LauncherError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ManifestInvalid creates an error for a manifest file that could not be read, parsed or validated
func ManifestInvalid(path string, err error) *LauncherError {
	return Wrap(err, ErrCodeManifestInvalid, fmt.Sprintf("invalid extension manifest: %s", path)).
		WithDetail("path", path)
}

// ExtensionNotFound creates an extension not found error
func ExtensionNotFound(extensionID string) *LauncherError {
	return New(ErrCodeExtensionNotFound, fmt.Sprintf("extension '%s' not found", extensionID)).
		WithDetail("extension", extensionID)
}

// StoreRead creates a persistence read error
func StoreRead(what string, err error) *LauncherError {
	return Wrap(err, ErrCodeStoreRead, fmt.Sprintf("failed to read %s", what)).
		WithDetail("record", what)
}

// StoreWrite creates a persistence write error
func StoreWrite(what string, err error) *LauncherError {
	return Wrap(err, ErrCodeStoreWrite, fmt.Sprintf("failed to write %s", what)).
		WithDetail("record", what)
}

// StoreLocked creates an error for a store held by another writer
func StoreLocked(path string, err error) *LauncherError {
	return Wrap(err, ErrCodeStoreLocked, fmt.Sprintf("store is locked by another process: %s", path)).
		WithDetail("path", path)
}

// ProtocolEncode creates an error for a protocol payload that could not be encoded
func ProtocolEncode(payload string, err error) *LauncherError {
	return Wrap(err, ErrCodeProtocolEncode, fmt.Sprintf("failed to encode %s", payload)).
		WithDetail("payload", payload)
}

// ProtocolDecode creates an error for malformed bytes at the protocol boundary
func ProtocolDecode(payload string, err error) *LauncherError {
	return Wrap(err, ErrCodeProtocolDecode, fmt.Sprintf("failed to decode %s", payload)).
		WithDetail("payload", payload)
}

// ExtensionFailed creates an extension process failure error
func ExtensionFailed(extensionID string, err error) *LauncherError {
	launcherErr := Wrap(err, ErrCodeExtensionFailed, fmt.Sprintf("extension '%s' failed", extensionID)).
		WithDetail("extension", extensionID)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		launcherErr = launcherErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return launcherErr
}

// CommandNotFound creates an error for a missing extension executable
func CommandNotFound(path string, err error) *LauncherError {
	return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("executable not found: %s", path)).
		WithDetail("path", path)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *LauncherError {
	return New(ErrCodeInvalidInput, reason)
}
