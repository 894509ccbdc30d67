// Package cli holds the terminal presentation of the mms command: styles,
// help output and tables.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-mms/fault"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1F6FEB")
	accentColor  = lipgloss.Color("#F0883E")
	errorColor   = lipgloss.Color("#DA3633")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	AccentStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("mms"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// FormatError renders err with its fault kind, if it has one.
func FormatError(err error) string {
	if k := fault.KindOf(err); k != fault.KindUnknown {
		return fmt.Sprintf("%s %s", AccentStyle.Render("["+k.String()+"]"), err.Error())
	}

	return err.Error()
}

// PrintKeyValue writes one aligned "key: value" line.
func PrintKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(fmt.Sprintf("%-12s", key+":")), ValueStyle.Render(fmt.Sprint(value)))
}
