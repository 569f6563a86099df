// Package transport runs extensions and exchanges requests and responses
// with them, either through a stdout line or through binary files.
package transport

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/codec"
	"github.com/whiskers-launcher/companion/config"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/pkg/profiling"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/state"
)

// Mode names a framing.
type Mode string

const (
	ModeStream Mode = "stream"
	ModeFile   Mode = "file"
)

// Environment passed to every launched extension.
const (
	EnvTransport    = "WHISKERS_TRANSPORT"
	EnvExchangeDir  = "WHISKERS_EXCHANGE_DIR"
	EnvExtensionDir = "WHISKERS_EXTENSION_DIR"
)

// ResolveMode maps the configured transport mode to a concrete one. "auto"
// uses files on Windows, where console output of GUI-spawned processes is
// unreliable, and the stdout stream elsewhere.
func ResolveMode(configured, goos string) Mode {
	switch configured {
	case config.TransportStream:
		return ModeStream
	case config.TransportFile:
		return ModeFile
	}
	if goos == "windows" {
		return ModeFile
	}
	return ModeStream
}

// Transport exchanges one request with the extension living in dir. The call
// blocks until the extension exits; ctx only cancels the process.
type Transport interface {
	Mode() Mode
	Exchange(ctx context.Context, dir string, req schema.ExtensionRequest) (Response, error)
}

// New creates the transport for mode.
func New(mode Mode, exchange state.Exchange, launcher Launcher) Transport {
	base := base{
		exchange: exchange,
		launcher: launcher,
		logger:   logging.NewLogger("transport"),
	}
	if mode == ModeFile {
		return &File{base}
	}
	return &Stream{base}
}

// NewFromConfig creates the transport selected by cfg for this platform.
func NewFromConfig(cfg *config.Config, exchange state.Exchange, launcher Launcher) Transport {
	return New(ResolveMode(cfg.Transport.Mode, runtime.GOOS), exchange, launcher)
}

type base struct {
	exchange state.Exchange
	launcher Launcher
	logger   *logrus.Entry
}

func (b base) env(mode Mode, dir string) []string {
	return []string{
		EnvTransport + "=" + string(mode),
		EnvExchangeDir + "=" + filepath.Dir(b.exchange.RequestPath),
		EnvExtensionDir + "=" + dir,
	}
}

func (b base) launch(ctx context.Context, mode Mode, dir string, req schema.ExtensionRequest) ([]byte, error) {
	defer profiling.Start("extension " + req.ExtensionID).Stop()

	if err := b.exchange.WriteRequest(req); err != nil {
		return nil, err
	}

	b.logger.WithFields(logrus.Fields{
		"extension": req.ExtensionID,
		"type":      req.RequestType,
		"mode":      mode,
	}).Debug("Launching extension")

	out, err := b.launcher.Launch(ctx, dir, b.env(mode, dir))
	if err != nil {
		if lerr, ok := err.(*errors.LauncherError); ok {
			return nil, lerr.WithDetail("extension", req.ExtensionID)
		}
		return nil, errors.ExtensionFailed(req.ExtensionID, err)
	}
	return out, nil
}

// Stream writes the request file and reads the response from the last JSON
// object line the extension printed on stdout. Any other output is ignored.
type Stream struct {
	base
}

func (s *Stream) Mode() Mode { return ModeStream }

func (s *Stream) Exchange(ctx context.Context, dir string, req schema.ExtensionRequest) (Response, error) {
	out, err := s.launch(ctx, ModeStream, dir, req)
	if err != nil {
		return Response{}, err
	}

	line := codec.LastObjectLine(out)
	if len(line) == 0 {
		if req.RequestType == schema.RunCommand {
			return Response{}, nil
		}
		return Response{}, errors.ExtensionFailed(req.ExtensionID, errNoResponse)
	}
	return DecodeStreamLine(line)
}

// File exchanges binary records: the request file before launch and the
// response file after the process exits.
type File struct {
	base
}

func (f *File) Mode() Mode { return ModeFile }

func (f *File) Exchange(ctx context.Context, dir string, req schema.ExtensionRequest) (Response, error) {
	if err := f.exchange.ClearResponse(); err != nil {
		return Response{}, err
	}
	if _, err := f.launch(ctx, ModeFile, dir, req); err != nil {
		return Response{}, err
	}

	data, err := os.ReadFile(f.exchange.ResponsePath)
	if err != nil {
		if os.IsNotExist(err) {
			if req.RequestType == schema.RunCommand {
				return Response{}, nil
			}
			return Response{}, errors.ExtensionFailed(req.ExtensionID, errNoResponse)
		}
		return Response{}, errors.StoreRead("response", err).WithDetail("path", f.exchange.ResponsePath)
	}
	return DecodeFile(data)
}
