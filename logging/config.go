package logging

// Config is the [logging] section of whiskers.toml.
//
// WHISKERS_LOG_LEVEL and WHISKERS_LOG_CALLER=true take precedence over
// Level and ReportCaller.
type Config struct {
	Level        string `yaml:"level"`
	ReportCaller bool   `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig enables an append-only log file. An empty Path means
// <state>/logs/<component>-<date>.log.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FormatConfig selects how entries are rendered.
type FormatConfig struct {
	// Preset is "default", "simple" or "json".
	Preset string `yaml:"preset"`

	DisableTimestamp bool `yaml:"disable_timestamp"`
	DisableComponent bool `yaml:"disable_component"`

	// Stderr is "auto", "always" or "never". In auto mode entries reach the
	// terminal sink only when debugging or when stderr is not a terminal.
	Stderr string `yaml:"stderr"`
}
