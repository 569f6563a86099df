// Package cmd holds the whiskers subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/pkg/profiling"
	"github.com/whiskers-launcher/companion/version"
)

// NewRootCmd assembles the whiskers command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("whiskers", "Companion core of the Whiskers launcher")
	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.NewCobraProfiler().Attach(root)

	root.AddCommand(
		NewIndexExtensionsCmd(),
		NewExtensionsCmd(),
		NewExtensionDirCmd(),
		NewSettingCmd(),
		NewIndexAppsCmd(),
		NewAppsCmd(),
		NewQueryCmd(),
		NewRunCmd(),
		NewWatchCmd(),
		NewSchemaCmd(),
		NewPathsCmd(),
		cli.NewVersionCommand("whiskers"),
	)
	cli.ApplyStyledHelpRecursive(root)
	return root
}
