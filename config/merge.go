package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/whiskers-launcher/companion/errors"
)

// overrideNames are looked up next to the base configuration file and
// applied in order.
var overrideNames = []string{
	"whiskers.override.toml",
	"whiskers.override.yml",
	"whiskers.override.yaml",
}

// LoadWithOverrides loads the configuration at path and layers any override
// files found in the same directory on top of it. Tables merge key by key,
// while scalars and lists in an override replace the base value.
func LoadWithOverrides(path string) (*Config, error) {
	base, err := Load(path)
	if err != nil {
		return nil, err
	}

	merged := base.Sections
	applied := false
	dir := filepath.Dir(path)

	for _, name := range overrideNames {
		overridePath := filepath.Join(dir, name)
		data, err := os.ReadFile(overridePath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read override file").
				WithDetail("path", overridePath)
		}

		sections, err := parseSections([]byte(expandEnvVars(string(data))), formatFor(overridePath))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse override file").
				WithDetail("path", overridePath)
		}
		merged = mergeSections(merged, sections)
		applied = true
	}

	if !applied {
		return base, nil
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to merge override files")
	}
	cfg, err := LoadFromBytes(data, "yaml")
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// mergeSections returns base with override merged into it. Neither input is
// modified.
func mergeSections(base, override map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}

	for key, value := range override {
		baseMap, baseOk := result[key].(map[string]interface{})
		overrideMap, overrideOk := value.(map[string]interface{})
		if baseOk && overrideOk {
			result[key] = mergeSections(baseMap, overrideMap)
			continue
		}
		result[key] = value
	}
	return result
}
