package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/schema"
)

func NewIndexExtensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index-extensions",
		Short: "Scan the extensions directory and rebuild the catalog",
		Long: `Scan the extensions directory for manifest files, add the settings they
declare and replace the extension catalog. Invalid manifests are logged and
skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			manifests, err := e.registry.IndexExtensions(cmd.Context())
			if err != nil {
				return err
			}
			return printExtensions(cmd, manifests)
		},
	}
}

func NewExtensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the indexed extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			return printExtensions(cmd, e.registry.Extensions())
		},
	}
}

func NewExtensionDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extension-dir <extension-id>",
		Short: "Print the directory of an installed extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			dir, ok := e.registry.ExtensionDir(args[0])
			if !ok {
				return errors.ExtensionNotFound(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func printExtensions(cmd *cobra.Command, manifests []schema.ExtensionManifest) error {
	if cli.GetOptions(cmd).JSONOutput {
		return cli.PrintJSON(cmd.OutOrStdout(), manifests)
	}
	out := cmd.OutOrStdout()
	if len(manifests) == 0 {
		fmt.Fprintln(out, "No extensions")
		return nil
	}
	for _, m := range manifests {
		fmt.Fprintf(out, "%-20s %-6s %s\n", m.ID, m.Keyword, m.Name)
		if m.OS != schema.AllOS {
			fmt.Fprintf(out, "%-20s %-6s os: %s\n", "", "", strings.TrimSpace(m.OS))
		}
	}
	return nil
}
