package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Transport modes accepted in the transport section.
const (
	TransportAuto   = "auto"
	TransportStream = "stream"
	TransportFile   = "file"
)

// Config is the host configuration loaded from whiskers.toml or whiskers.yml.
type Config struct {
	// Transport selects the framing used to exchange payloads with extensions.
	Transport TransportConfig `yaml:"transport" toml:"transport"`

	// Extensions configures discovery and launching of extensions.
	Extensions ExtensionsConfig `yaml:"extensions" toml:"extensions"`

	// Sections holds every top-level table of the file as raw data, so that
	// packages such as logging can decode their own section.
	Sections map[string]interface{} `yaml:"-" toml:"-"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// TransportConfig configures the extension request/response transport.
type TransportConfig struct {
	// Mode is "auto" (pick by platform), "stream" or "file".
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty" validate:"omitempty,oneof=auto stream file"`
}

// ExtensionsConfig configures the extension catalog.
type ExtensionsConfig struct {
	// Dir overrides the extensions root directory.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`

	// Ignore lists patterns (.dockerignore syntax) skipped while scanning.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Entrypoint is the executable name looked up inside each extension directory.
	Entrypoint string `yaml:"entrypoint,omitempty" toml:"entrypoint,omitempty" validate:"omitempty,excludesall=/\\"`

	// WatchDebounceMs coalesces bursts of filesystem events before re-indexing.
	WatchDebounceMs int `yaml:"watch_debounce_ms,omitempty" toml:"watch_debounce_ms,omitempty" validate:"gte=0,lte=60000"`
}

// Default values applied by SetDefaults.
const (
	DefaultEntrypoint      = "extension"
	DefaultWatchDebounceMs = 250
)

// DefaultIgnore is the ignore list used when none is configured.
var DefaultIgnore = []string{".git", "node_modules", "target", "*.tmp"}

// SetDefaults fills unset fields with default values.
func (c *Config) SetDefaults() {
	if c.Transport.Mode == "" {
		c.Transport.Mode = TransportAuto
	}
	if c.Extensions.Entrypoint == "" {
		c.Extensions.Entrypoint = DefaultEntrypoint
	}
	if c.Extensions.WatchDebounceMs == 0 {
		c.Extensions.WatchDebounceMs = DefaultWatchDebounceMs
	}
	if c.Extensions.Ignore == nil {
		c.Extensions.Ignore = append([]string(nil), DefaultIgnore...)
	}
	if c.Sections == nil {
		c.Sections = make(map[string]interface{})
	}
}

// UnmarshalSection decodes a top-level section of the loaded file into the
// provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalSection("logging", &logCfg)
func (c *Config) UnmarshalSection(key string, target interface{}) error {
	section, ok := c.Sections[key]
	if !ok {
		// A missing section leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("failed to decode config section '%s': %w", key, err)
	}

	return nil
}
