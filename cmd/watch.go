package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/internal/daemon/pidfile"
	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/registry"
	"github.com/whiskers-launcher/companion/schema"
)

func NewWatchCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-index extensions whenever the extensions directory changes",
		Long: `Index the extensions once, then keep watching the extensions directory and
re-index after every burst of changes. Only one watcher runs per user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath := paths.PidFilePath()
			if status {
				running, pid, err := pidfile.IsRunning(pidPath)
				if err != nil {
					return err
				}
				if running {
					fmt.Fprintf(cmd.OutOrStdout(), "running (PID %d)\n", pid)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "not running")
				}
				return nil
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			if err := pidfile.Acquire(pidPath); err != nil {
				return err
			}
			defer func() {
				if err := pidfile.Release(pidPath); err != nil {
					e.logger.WithError(err).Warn("Failed to remove pid file")
				}
			}()

			if _, err := e.registry.IndexExtensions(cmd.Context()); err != nil {
				return err
			}

			w, err := registry.NewWatcher(e.registry, e.cfg.Extensions.WatchDebounceMs, func(manifests []schema.ExtensionManifest, err error) {
				if err == nil {
					e.logger.WithField("count", len(manifests)).Debug("Catalog updated")
				}
			})
			if err != nil {
				return err
			}

			e.logger.WithField("root", e.registry.Root()).Info("Watching extensions")
			w.Run(cmd.Context())
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "Report whether a watcher is running")
	return cmd
}
