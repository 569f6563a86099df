package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whiskers-launcher/companion/cli"
	"github.com/whiskers-launcher/companion/search"
	"github.com/whiskers-launcher/companion/transport"
)

// QueryOutput is the JSON form of a routed query.
type QueryOutput struct {
	Target     search.TargetKind   `json:"target"`
	Keyword    string              `json:"keyword,omitempty"`
	SearchText string              `json:"search_text"`
	URL        string              `json:"url,omitempty"`
	Extension  string              `json:"extension,omitempty"`
	Response   *transport.Response `json:"response,omitempty"`
	Apps       interface{}         `json:"apps,omitempty"`
}

func NewQueryCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "query <input>",
		Short: "Route a launcher query and show its results",
		Long: `Route a launcher query the way the launcher does: a search keyword opens a
web search, an extension keyword asks that extension for results, anything
else is matched against the installed apps.`,
		Example: `  # Ask the calculator extension
  whiskers query "= 2*21"
  # Search the web with the default engine
  whiskers query "s golang generics"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			router := search.NewRouter(e.settings.Load(), e.registry.Extensions(), e.store.Apps())
			target, err := router.Route(strings.Join(args, " "))
			if err != nil {
				return err
			}

			output := QueryOutput{
				Target:     target.Kind,
				Keyword:    target.Query.Keyword,
				SearchText: target.Text,
				URL:        target.URL,
			}
			if target.Kind == search.TargetExtension {
				output.Extension = target.Extension.ID
				if !dryRun {
					resp, err := e.host().Search(cmd.Context(), target.Extension.ID, target.Text)
					if err != nil {
						return err
					}
					output.Response = &resp
				}
			}
			if target.Kind == search.TargetApps {
				output.Apps = target.Apps
			}

			if cli.GetOptions(cmd).JSONOutput {
				return cli.PrintJSON(cmd.OutOrStdout(), output)
			}
			printTarget(cmd, output, target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only print the routing decision")
	return cmd
}

func printTarget(cmd *cobra.Command, output QueryOutput, target search.Target) {
	out := cmd.OutOrStdout()
	switch target.Kind {
	case search.TargetWeb:
		fmt.Fprintf(out, "%s: %s\n", target.Engine.Name, target.URL)
	case search.TargetExtension:
		fmt.Fprintf(out, "extension %s: %q\n", target.Extension.ID, target.Text)
		if output.Response != nil {
			printResponse(cmd, *output.Response)
		}
	default:
		cli.PrintApps(out, target.Apps)
	}
}

func printResponse(cmd *cobra.Command, resp transport.Response) {
	out := cmd.OutOrStdout()
	switch {
	case resp.IsForm():
		cli.PrintForm(out, *resp.Form)
	case resp.Results != nil:
		cli.PrintResults(out, *resp.Results)
	default:
		fmt.Fprintln(out, "Done")
	}
}
