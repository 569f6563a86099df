package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/errors"
)

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "whiskers.toml")
	content := `
[transport]
mode = "file"

[extensions]
dir = "/opt/whiskers/extensions"
ignore = ["*.bak"]
watch_debounce_ms = 500

[logging]
level = "debug"
report_caller = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportFile, cfg.Transport.Mode)
	assert.Equal(t, "/opt/whiskers/extensions", cfg.ExtensionsRoot())
	assert.Equal(t, []string{"*.bak"}, cfg.Extensions.Ignore)
	assert.Equal(t, 500, cfg.Extensions.WatchDebounceMs)
	assert.Equal(t, DefaultEntrypoint, cfg.Extensions.Entrypoint)
	assert.Equal(t, path, cfg.Path)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, cfg.UnmarshalSection("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)
}

func TestLoadYAMLWithEnvExpansion(t *testing.T) {
	t.Setenv("WHISKERS_TEST_MODE", "stream")

	cfg, err := LoadFromBytes([]byte(`
transport:
  mode: ${WHISKERS_TEST_MODE}
extensions:
  entrypoint: ${WHISKERS_UNSET_ENTRYPOINT:-run.sh}
`), "yaml")
	require.NoError(t, err)

	assert.Equal(t, TransportStream, cfg.Transport.Mode)
	assert.Equal(t, "run.sh", cfg.Extensions.Entrypoint)
	assert.Equal(t, DefaultIgnore, cfg.Extensions.Ignore)
}

func TestValidationRejectsUnknownTransport(t *testing.T) {
	_, err := LoadFromBytes([]byte("transport:\n  mode: pipe\n"), "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestValidationRejectsEntrypointPath(t *testing.T) {
	_, err := LoadFromBytes([]byte("extensions:\n  entrypoint: bin/run\n"), "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "whiskers.toml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Setenv("WHISKERS_HOME", t.TempDir())

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, TransportAuto, cfg.Transport.Mode)
	assert.Equal(t, DefaultWatchDebounceMs, cfg.Extensions.WatchDebounceMs)
	assert.Empty(t, cfg.Path)
}

func TestFindConfigFilePrefersTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "whiskers.yml"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "whiskers.toml"), []byte(""), 0644))

	path, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "whiskers.toml"), path)
}

func TestUnmarshalSectionMissing(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	var target struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalSection("logging", &target))
	assert.Empty(t, target.Level)
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "whiskers.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[transport]
mode = "stream"

[extensions]
dir = "/opt/whiskers/extensions"
watch_debounce_ms = 500

[logging]
level = "info"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "whiskers.override.yml"), []byte(`
transport:
  mode: file
extensions:
  ignore: ["*.swp"]
logging:
  level: debug
`), 0644))

	cfg, err := LoadWithOverrides(base)
	require.NoError(t, err)

	assert.Equal(t, TransportFile, cfg.Transport.Mode)
	assert.Equal(t, "/opt/whiskers/extensions", cfg.ExtensionsRoot())
	assert.Equal(t, 500, cfg.Extensions.WatchDebounceMs)
	assert.Equal(t, []string{"*.swp"}, cfg.Extensions.Ignore)
	assert.Equal(t, base, cfg.Path)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalSection("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
}

func TestLoadWithOverridesInvalidResult(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "whiskers.yml")
	require.NoError(t, os.WriteFile(base, []byte("transport:\n  mode: stream\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "whiskers.override.yml"), []byte("transport:\n  mode: pipe\n"), 0644))

	_, err := LoadWithOverrides(base)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestMergeSectionsLeavesInputsUntouched(t *testing.T) {
	base := map[string]interface{}{"extensions": map[string]interface{}{"dir": "a", "entrypoint": "run"}}
	override := map[string]interface{}{"extensions": map[string]interface{}{"dir": "b"}}

	merged := mergeSections(base, override)

	assert.Equal(t, "a", base["extensions"].(map[string]interface{})["dir"])
	assert.Equal(t, map[string]interface{}{"dir": "b", "entrypoint": "run"}, merged["extensions"])
}
