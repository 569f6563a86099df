package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/schema"
)

func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print JSON schemas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "manifest",
		Short: "Print the JSON schema of extension manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schema.GenerateManifestSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
	return cmd
}
