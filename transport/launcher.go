package transport

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/command"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/logging"
)

var errNoResponse = stderrors.New("extension exited without a response")

// Launcher starts an extension process in dir with extra environment and
// returns what it wrote on stdout once it has exited.
type Launcher interface {
	Launch(ctx context.Context, dir string, env []string) ([]byte, error)
}

// ExecLauncher runs the configured entrypoint found in the extension directory.
type ExecLauncher struct {
	entrypoint string
	builder    *command.SafeBuilder
	logger     *logrus.Entry
}

// NewExecLauncher creates a launcher for entrypoint. On Windows ".exe" is
// appended when the name has no extension.
func NewExecLauncher(entrypoint string, builder *command.SafeBuilder) *ExecLauncher {
	if builder == nil {
		builder = command.NewSafeBuilder()
	}
	if runtime.GOOS == "windows" && filepath.Ext(entrypoint) == "" {
		entrypoint += ".exe"
	}
	return &ExecLauncher{
		entrypoint: entrypoint,
		builder:    builder,
		logger:     logging.NewLogger("launcher"),
	}
}

// Entrypoint returns the executable name looked up in extension directories.
func (l *ExecLauncher) Entrypoint() string {
	return l.entrypoint
}

func (l *ExecLauncher) Launch(ctx context.Context, dir string, env []string) ([]byte, error) {
	cmd, err := l.builder.Build(ctx, dir, l.entrypoint)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	defer cmd.Release()

	if _, err := os.Stat(cmd.Path()); err != nil {
		return nil, errors.CommandNotFound(cmd.Path(), err)
	}

	var stdout, stderr bytes.Buffer
	proc := cmd.Exec()
	proc.Dir = dir
	proc.Env = append(os.Environ(), env...)
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	if err := proc.Run(); err != nil {
		if stderrors.Is(err, exec.ErrNotFound) || os.IsPermission(err) {
			return nil, errors.CommandNotFound(cmd.Path(), err)
		}
		detail := strings.TrimSpace(stderr.String())
		l.logger.WithError(err).WithField("stderr", detail).Warn("Extension exited with an error")
		lerr := errors.ExtensionFailed(filepath.Base(dir), err)
		if detail != "" {
			lerr = lerr.WithDetail("stderr", detail)
		}
		return nil, lerr
	}

	if stderr.Len() > 0 {
		l.logger.WithField("stderr", strings.TrimSpace(stderr.String())).Debug("Extension wrote to stderr")
	}
	return stdout.Bytes(), nil
}
