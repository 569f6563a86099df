package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/config"
	"github.com/whiskers-launcher/companion/logging"
)

// CommandOptions holds the options shared by every whiskers command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command with the standard whiskers flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to whiskers.toml or whiskers.yml")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the CLI logger, raised to debug with --verbose.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("whiskers-cli")

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	return entry
}

// GetOptions extracts common options from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the file named by --config, or the default configuration.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := GetOptions(cmd)
	if opts.ConfigFile != "" {
		return config.LoadWithOverrides(opts.ConfigFile)
	}
	return config.LoadDefaultWithLogger(GetLogger(cmd).Logger)
}
