package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-mms/internal/cli"
)

var (
	queuedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0883E")).Bold(true)
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DA3633")).Bold(true)
)

func renderHeader(m Model) string {
	title := cli.TitleStyle.UnsetMarginBottom().Render("mms")
	subtitle := cli.KeyStyle.Italic(true).Render(fmt.Sprintf("%s, %d stage(s)", filepath.Base(m.Input), len(m.Stages)))

	return title + "\n" + subtitle
}

func renderProgress(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	for i, s := range m.Stages {
		b.WriteString(renderStage(i, s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.KeyStyle.Render(fmt.Sprintf("%d/%d done, %s elapsed, q to cancel",
		completed(m.Stages), len(m.Stages), time.Since(m.StartTime).Round(time.Second))))

	return b.String()
}

func renderStage(i int, s StageProgress) string {
	label := fmt.Sprintf("%2d. %s", i+1, s.ID)

	switch s.Status {
	case StatusRunning:
		return runningStyle.Render("▶ " + label)
	case StatusComplete:
		return completeStyle.Render("✓ "+label) + cli.KeyStyle.Render(" "+s.Elapsed.Round(time.Millisecond).String())
	case StatusError:
		return errorStyle.Render("✗ " + label)
	default:
		return queuedStyle.Render("  " + label)
	}
}

func completed(stages []StageProgress) int {
	n := 0

	for _, s := range stages {
		if s.Status == StatusComplete {
			n++
		}
	}

	return n
}

func renderSummary(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	for i, s := range m.Stages {
		b.WriteString(renderStage(i, s))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(cli.ErrorStyle.Render("Failed: "))
		b.WriteString(cli.FormatError(m.Err))
		b.WriteString("\n")

		return b.String()
	}

	b.WriteString(completeStyle.Render("Written to " + m.Output))
	b.WriteString("\n")

	if m.Comparison != nil {
		b.WriteString("\n")
		b.WriteString(cli.ComparisonTable(*m.Comparison))
		b.WriteString("\n")
	}

	return b.String()
}
