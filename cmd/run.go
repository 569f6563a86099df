package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/transport"
)

func NewRunCmd() *cobra.Command {
	var (
		command  string
		cmdArgs  []string
		formVals []string
	)

	cmd := &cobra.Command{
		Use:   "run <extension-id> [search text]",
		Short: "Send a request to an extension",
		Long: `Send a request to an extension and print its response. Without --command
the extension receives a GetResults request for the search text. With
--command it runs that command with the given --arg values.

--field id=value submits the pending form instead: the answers are stored
and the form's command is run with the form's args.`,
		Example: `  whiskers run calc "2 + 2"
  whiskers run notes --command delete --arg 42
  whiskers run notes --field title=groceries --field pinned=true`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			host := e.host()
			extensionID := args[0]

			var resp transport.Response
			switch {
			case len(formVals) > 0:
				form, err := host.PendingForm()
				if err != nil {
					return err
				}
				if form.ExtensionID != extensionID {
					return errors.InvalidInput("the pending form belongs to " + form.ExtensionID)
				}
				answers, err := parseFields(formVals)
				if err != nil {
					return err
				}
				resp, err = host.SubmitForm(cmd.Context(), form, answers)
				if err != nil {
					return err
				}
			case command != "":
				resp, err = host.RunCommand(cmd.Context(), extensionID, command, cmdArgs)
				if err != nil {
					return err
				}
			default:
				resp, err = host.Search(cmd.Context(), extensionID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
			}

			if cli.GetOptions(cmd).JSONOutput {
				return cli.PrintJSON(cmd.OutOrStdout(), resp)
			}
			printResponse(cmd, resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&command, "command", "", "Run this extension command instead of searching")
	cmd.Flags().StringArrayVar(&cmdArgs, "arg", nil, "Argument passed with --command (repeatable)")
	cmd.Flags().StringArrayVar(&formVals, "field", nil, "Answer to the pending form as id=value (repeatable)")
	return cmd
}

func parseFields(values []string) (schema.FormResponse, error) {
	results := make([]schema.FormResult, 0, len(values))
	for _, v := range values {
		id, value, ok := strings.Cut(v, "=")
		if !ok || id == "" {
			return schema.FormResponse{}, errors.InvalidInput("form answers must look like id=value: " + v)
		}
		results = append(results, schema.NewFormResult(id, value))
	}
	return schema.NewFormResponse(results...), nil
}
