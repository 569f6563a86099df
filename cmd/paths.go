package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/config"
	"github.com/whiskers-launcher/companion/pkg/paths"
)

// PathsOutput lists the locations used by the companion.
type PathsOutput struct {
	ConfigDir        string `json:"config_dir"`
	DataDir          string `json:"data_dir"`
	StateDir         string `json:"state_dir"`
	ExtensionsDir    string `json:"extensions_dir"`
	StateDB          string `json:"state_db"`
	ExchangeDir      string `json:"exchange_dir"`
	ExtensionRequest string `json:"extension_request"`
	FormRequest      string `json:"form_request"`
	FormResponse     string `json:"form_response"`
	LogsDir          string `json:"logs_dir"`
}

func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the directories and files used by whiskers",
		Long: `Print the directories and files used by whiskers.

The output is JSON so scripts and extensions can locate the exchange files.
WHISKERS_HOME relocates everything under a single directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				cli.GetLogger(cmd).WithError(err).Warn("Ignoring unusable configuration")
				cfg = &config.Config{}
				cfg.SetDefaults()
			}
			output := PathsOutput{
				ConfigDir:        paths.ConfigDir(),
				DataDir:          paths.DataDir(),
				StateDir:         paths.StateDir(),
				ExtensionsDir:    cfg.ExtensionsRoot(),
				StateDB:          paths.StateDBPath(),
				ExchangeDir:      paths.ExchangeDir(),
				ExtensionRequest: paths.ExtensionRequestPath(),
				FormRequest:      paths.FormRequestPath(),
				FormResponse:     paths.FormResponsePath(),
				LogsDir:          paths.LogsDir(),
			}
			if err := cli.PrintJSON(cmd.OutOrStdout(), output); err != nil {
				return fmt.Errorf("failed to print paths: %w", err)
			}
			return nil
		},
	}
}
