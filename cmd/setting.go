package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/command"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/schema"
)

func NewSettingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting <extension-id> <setting-id>",
		Short: "Print the value of an extension setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			value, ok := e.settings.ExtensionSetting(args[0], args[1])
			if !ok {
				return errors.InvalidInput(fmt.Sprintf("extension '%s' has no setting '%s'", args[0], args[1]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.AddCommand(newSettingSetCmd(), newSettingListCmd(), newAutostartCmd())
	return cmd
}

func newSettingSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <extension-id> <setting-id> <value>",
		Short: "Store the value of an extension setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := command.NewSafeBuilder()
			if err := builder.Validate("extensionID", args[0]); err != nil {
				return errors.InvalidInput(err.Error())
			}
			if err := builder.Validate("settingID", args[1]); err != nil {
				return errors.InvalidInput(err.Error())
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.settings.SetExtensionSetting(args[0], args[1], args[2]); err != nil {
				return err
			}
			e.logger.WithField("extension", args[0]).WithField("setting", args[1]).Info("Setting stored")
			return nil
		},
	}
}

func newSettingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the launcher settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			return cli.PrintJSON(cmd.OutOrStdout(), e.settings.Load())
		},
	}
}

func newAutostartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "autostart <true|false>",
		Short: "Start the launcher at login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := strconv.ParseBool(args[0])
			if err != nil {
				return errors.InvalidInput(fmt.Sprintf("not a boolean: %s", args[0]))
			}
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			return e.settings.Update(func(current *schema.Settings) error {
				current.AutoStart = enabled
				return nil
			})
		},
	}
}
