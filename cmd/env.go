package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/command"
	"github.com/whiskers-launcher/companion/config"
	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/registry"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
	"github.com/whiskers-launcher/companion/transport"
)

// env bundles the collaborators a command needs. Nothing in it holds open
// resources.
type env struct {
	cfg      *config.Config
	store    *state.Store
	registry *registry.Registry
	settings *settings.Manager
	logger   *logrus.Entry
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}

	store := state.Default()
	reg, err := registry.New(cfg.ExtensionsRoot(), store, registry.WithIgnore(cfg.Extensions.Ignore))
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:      cfg,
		store:    store,
		registry: reg,
		settings: settings.NewManager(store, newAutostart()),
		logger:   cli.GetLogger(cmd),
	}, nil
}

func newAutostart() settings.Autostart {
	exe, err := os.Executable()
	if err != nil {
		return settings.NoopAutostart
	}
	return settings.NewDesktopEntryAutostart(paths.AutostartDir(), exe)
}

// host creates the extension host using the configured transport.
func (e *env) host() *transport.Host {
	launcher := transport.NewExecLauncher(e.cfg.Extensions.Entrypoint, command.NewSafeBuilder())
	exchange := state.DefaultExchange()
	tr := transport.NewFromConfig(e.cfg, exchange, launcher)
	e.logger.WithField("mode", tr.Mode()).Debug("Using transport")
	return transport.NewHost(tr, e.registry, e.settings, exchange)
}
