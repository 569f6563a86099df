package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/apps"
	"github.com/whiskers-launcher/companion/cli"
)

func NewIndexAppsCmd() *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   "index-apps",
		Short: "Rebuild the installed apps index",
		Long: `Rebuild the installed apps index from the executables found in the given
directories, or in $PATH when none are given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			enumerator := apps.PathEnumerator()
			if len(dirs) > 0 {
				enumerator = &apps.ExecutableEnumerator{Dirs: dirs}
			}
			indexed, err := apps.NewIndexer(enumerator, e.store).Index(cmd.Context())
			if err != nil {
				return err
			}
			e.logger.WithField("count", len(indexed)).Info("Indexed apps")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "Directory to scan (repeatable)")
	return cmd
}

func NewAppsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List the indexed apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			list := e.store.Apps()
			if !all {
				if list, err = apps.Filter(list, e.settings.Load().Blacklist); err != nil {
					return err
				}
			}
			if cli.GetOptions(cmd).JSONOutput {
				return cli.PrintJSON(cmd.OutOrStdout(), list)
			}
			cli.PrintApps(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include blacklisted apps")
	return cmd
}
