package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/whiskers-launcher/companion/settings"
)

const maxWidth = 72
const minWidth = 40

// Styles follow the default launcher theme.
var (
	palette = settings.DefaultTheme()

	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Accent))
	sectionStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(palette.Accent))
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Danger))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.SubText))

	errorMark = dangerStyle.Render("✗")
)

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// SetStyledHelp applies the whiskers help layout to cmd.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// ApplyStyledHelpRecursive applies styled help to a command and all its
// subcommands. Call it after every subcommand has been added.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// PrintError prints a styled error message with a help hint.
func PrintError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", dangerStyle.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", mutedStyle.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	renderHelp(cmd.OutOrStdout(), cmd, getTerminalWidth()-2)
}

func renderHelp(w io.Writer, cmd *cobra.Command, width int) {
	fmt.Fprintln(w, " "+accentStyle.Render(strings.ToUpper(cmd.CommandPath())))

	if cmd.Short != "" {
		for _, line := range strings.Split(wrapText(cmd.Short, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintln(w)
		for _, line := range strings.Split(wrapText(cmd.Long, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(w, "\n "+sectionStyle.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(w, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(w, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		maxLen := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() && len(sub.Name()) > maxLen {
				maxLen = len(sub.Name())
			}
		}

		fmt.Fprintln(w, "\n "+sectionStyle.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				padding := strings.Repeat(" ", maxLen-len(sub.Name()))
				fmt.Fprintf(w, " %s%s  %s\n", accentStyle.Render(sub.Name()), padding, sub.Short)
			}
		}
	}

	var visibleFlags []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visibleFlags = append(visibleFlags, f)
		}
	})
	if len(visibleFlags) > 0 {
		fmt.Fprintln(w, "\n "+sectionStyle.Render("FLAGS"))
		maxFlagLen := 0
		for _, f := range visibleFlags {
			if l := len(formatFlagName(f)); l > maxFlagLen {
				maxFlagLen = l
			}
		}
		for _, f := range visibleFlags {
			flagStr := formatFlagName(f)
			usage := f.Usage
			if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
				usage += mutedStyle.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
			}
			fmt.Fprintf(w, " %s%s  %s\n", flagStr, strings.Repeat(" ", maxFlagLen-len(flagStr)), usage)
		}
	}

	if cmd.Example != "" {
		fmt.Fprintln(w, "\n "+sectionStyle.Render("EXAMPLES"))
		for _, line := range strings.Split(cmd.Example, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "#") {
				fmt.Fprintln(w, " "+mutedStyle.Render(trimmed))
			} else {
				fmt.Fprintln(w, "   "+trimmed)
			}
		}
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

// formatFlagName returns a formatted flag string like "-f, --flag" or "--flag".
func formatFlagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}
