package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3FB950")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#39C5CF")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter returns a kong help printer with lipgloss styling. It
// describes the selected command, or the application when none is selected.
func StyledHelpPrinter(_ kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Model.Node
		if sel := ctx.Selected(); sel != nil {
			node = sel
		}

		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render("mms"))
		sb.WriteString("\n")

		desc := ctx.Model.Help
		if node != ctx.Model.Node && node.Help != "" {
			desc = node.Help
		}

		if desc != "" {
			sb.WriteString(helpDescStyle.Render(desc))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(usage(ctx.Model.Name, node))
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")

			for _, c := range cmds {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(fmt.Sprintf("%-10s", c.Name)))
				sb.WriteString("  ")
				sb.WriteString(c.Help)
				sb.WriteString("\n")
			}
		}

		if len(node.Positional) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")

			for _, arg := range node.Positional {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(arg.Summary()))

				if arg.Help != "" {
					sb.WriteString("  ")
					sb.WriteString(arg.Help)
				}

				sb.WriteString("\n")
			}
		}

		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")

		for _, f := range flags(ctx.Model.Node, node) {
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(f.flags))

			if f.help != "" {
				sb.WriteString("  ")
				sb.WriteString(f.help)
			}

			if f.defaultVal != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("(default: " + f.defaultVal + ")"))
			}

			sb.WriteString("\n")
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

func usage(app string, node *kong.Node) string {
	var parts []string

	if node.Type == kong.ApplicationNode {
		parts = append(parts, app, "<command>")
	} else {
		parts = append(parts, app, node.Path())
	}

	parts = append(parts, "[flags]")

	for _, arg := range node.Positional {
		parts = append(parts, arg.Summary())
	}

	return strings.Join(parts, " ")
}

func commands(node *kong.Node) []*kong.Node {
	var out []*kong.Node

	for _, c := range node.Children {
		if c.Hidden || c.Type != kong.CommandNode {
			continue
		}

		out = append(out, c)
	}

	return out
}

// flags lists the help flag, the global flags and, for a subcommand, its own.
func flags(root, node *kong.Node) []flag {
	out := []flag{{flags: "-h, --help", help: "Show context-sensitive help."}}

	groups := [][]*kong.Flag{root.Flags}
	if node != root {
		groups = append(groups, node.Flags)
	}

	for _, group := range groups {
		for _, f := range group {
			if f.Name == "help" || f.Hidden {
				continue
			}

			s := fmt.Sprintf("--%s", f.Name)
			if f.Short != 0 {
				s = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}

			if !f.IsBool() {
				s += "=" + strings.ToUpper(f.FormatPlaceHolder())
			}

			out = append(out, flag{flags: s, help: f.Help, defaultVal: f.Default})
		}
	}

	return out
}
