package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/config"
	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/util/pathutil"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
//
// Loggers never write to stdout: an extension process answers the host on
// stdout when the stream transport is in use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	cfg, err := config.LoadDefault()
	if err == nil {
		if err := cfg.UnmarshalSection("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := newLoggerFromConfig(component, logCfg)
	loggers[component] = entry
	return entry
}

// Reset drops every cached logger so the next NewLogger call re-reads the
// configuration.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}

func newLoggerFromConfig(component string, logCfg Config) *logrus.Entry {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("WHISKERS_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("WHISKERS_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer

	if logCfg.File.Enabled {
		logFilePath := logCfg.File.Path
		if logFilePath == "" {
			dateStr := time.Now().Format("2006-01-02")
			logFilePath = filepath.Join(paths.LogsDir(), fmt.Sprintf("%s-%s.log", component, dateStr))
		} else if expanded, err := pathutil.Expand(logFilePath); err == nil {
			logFilePath = expanded
		}

		if file, err := openLogFile(logFilePath); err == nil {
			writers = append(writers, file)
		} else {
			logger.Warnf("Failed to open log file %s: %v", logFilePath, err)
		}
	}

	if shouldLogToStderr(logCfg.Format.Stderr, logger.GetLevel()) {
		writers = append(writers, Output())
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger.WithField("component", component)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// shouldLogToStderr resolves the format.stderr mode. In "auto" mode
// logs reach stderr when debugging or when stderr is not an interactive
// terminal, which is how the host captures extension diagnostics.
func shouldLogToStderr(mode string, level logrus.Level) bool {
	if mode == "" {
		mode = "auto"
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		isDebug := os.Getenv("WHISKERS_DEBUG") == "1" || level >= logrus.DebugLevel
		isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		return isDebug || !isInteractive
	}
}
