package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/whiskers-launcher/companion/schema"
)

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// PrintResults renders search results as a styled list.
func PrintResults(w io.Writer, results schema.SearchResults) {
	if len(results.Results) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No results"))
		return
	}
	for i, result := range results.Results {
		title := accentStyle.Render(result.Title)
		if result.Action.Dangerous {
			title = dangerStyle.Render(result.Title)
		}
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, title, mutedStyle.Render("["+string(result.Action.Type())+"]"))
		if result.Description != nil && *result.Description != "" {
			fmt.Fprintf(w, "    %s\n", *result.Description)
		}
	}
}

// PrintForm renders a form request.
func PrintForm(w io.Writer, form schema.OpenFormAction) {
	fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("FORM"), accentStyle.Render(form.Title))
	for _, field := range form.Fields {
		fmt.Fprintf(w, "  %s %s\n", field.ID, mutedStyle.Render("("+string(field.Type())+")"))
	}
	fmt.Fprintf(w, "  %s\n", mutedStyle.Render("submit: "+form.ActionText))
}

// PrintApps renders app matches.
func PrintApps(w io.Writer, apps []schema.App) {
	if len(apps) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No apps"))
		return
	}
	for _, app := range apps {
		fmt.Fprintf(w, "%s  %s\n", accentStyle.Render(app.Title), mutedStyle.Render(app.Path))
	}
}
