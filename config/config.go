package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/util/pathutil"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames lists the accepted config file names in lookup order.
var configNames = []string{
	"whiskers.toml",
	"whiskers.yml",
	"whiskers.yaml",
}

// Load reads and parses a configuration file. The format is chosen from the
// file extension (.toml, otherwise YAML).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, formatFor(path))
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadDefault loads the configuration from the config directory. A missing
// file is not an error: defaults are returned instead.
func LoadDefault() (*Config, error) {
	return LoadDefaultWithLogger(logrus.New())
}

// LoadDefaultWithLogger is LoadDefault with debug output sent to logger.
func LoadDefaultWithLogger(logger *logrus.Logger) (*Config, error) {
	path, err := FindConfigFile(paths.ConfigDir())
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			logger.WithField("dir", paths.ConfigDir()).Debug("No configuration file found, using defaults")
			cfg := &Config{}
			cfg.SetDefaults()
			return cfg, nil
		}
		return nil, err
	}

	logger.WithField("path", path).Debug("Loading configuration")
	return LoadWithOverrides(path)
}

// LoadFromBytes parses configuration data in the given format ("toml" or "yaml").
func LoadFromBytes(data []byte, format string) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	switch format {
	case "toml":
		if err := toml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	default:
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	sections, err := parseSections(expanded, format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse configuration sections")
	}

	cfg.Sections = sections
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfigFile returns the first known config file inside dir.
func FindConfigFile(dir string) (string, error) {
	if dir != "" {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", errors.ConfigNotFound(dir).WithDetail("searchPath", dir)
}

// ExtensionsRoot returns the directory scanned for extensions, honouring the
// extensions.dir override.
func (c *Config) ExtensionsRoot() string {
	if c != nil && c.Extensions.Dir != "" {
		if expanded, err := pathutil.Expand(c.Extensions.Dir); err == nil {
			return expanded
		}
		return c.Extensions.Dir
	}
	return paths.ExtensionsDir()
}

// parseSections decodes data into its raw top-level tables.
func parseSections(data []byte, format string) (map[string]interface{}, error) {
	var sections map[string]interface{}
	var err error
	if format == "toml" {
		err = toml.Unmarshal(data, &sections)
	} else {
		err = yaml.Unmarshal(data, &sections)
	}
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = make(map[string]interface{})
	}
	return sections, nil
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
