package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cwbudde/algo-mms/internal/analysis"
	"github.com/cwbudde/algo-mms/internal/media"
)

// MissingValue is shown for values that cannot be formatted.
const MissingValue = "-"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})
}

// FiltersTable renders the filter catalog.
func FiltersTable(filters []media.FilterInfo) string {
	t := newTable("Filter", "Domain", "Parameters", "Description")

	for _, f := range filters {
		t.Row(f.ID, f.Domain, formatParams(f.Params), f.Description)
	}

	return t.String()
}

func formatParams(params []media.ParamInfo) string {
	if len(params) == 0 {
		return MissingValue
	}

	lines := make([]string, len(params))
	for i, p := range params {
		closing := "]"
		if p.OpenMax {
			closing = ")"
		}

		line := fmt.Sprintf("%s=%g %s [%g,%g%s", p.Name, p.Default, p.Type, p.Min, p.Max, closing)
		if p.Unit != "" {
			line += " " + p.Unit
		}

		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

// ComparisonTable renders per-channel input and output measurements.
func ComparisonTable(c analysis.Comparison) string {
	t := newTable("Ch", "Metric", "Input", "Output", "Change")

	for i, d := range c.Deltas {
		in, out := c.Input.Channels[i], c.Output.Channels[i]
		ch := fmt.Sprint(i)

		t.Row(ch, "Peak", formatMetric(in.Level.PeakDB, 1, "dBFS"), formatMetric(out.Level.PeakDB, 1, "dBFS"), formatSigned(d.PeakDB, 1, "dB"))
		t.Row(ch, "RMS", formatMetric(in.Level.RMSDB, 1, "dBFS"), formatMetric(out.Level.RMSDB, 1, "dBFS"), formatSigned(d.RMSDB, 1, "dB"))
		t.Row(ch, "Crest", formatMetric(in.Level.CrestDB, 1, "dB"), formatMetric(out.Level.CrestDB, 1, "dB"), formatSigned(d.CrestDB, 1, "dB"))
		t.Row(ch, "Centroid", formatMetric(in.Shape.Centroid, 0, "Hz"), formatMetric(out.Shape.Centroid, 0, "Hz"), formatSigned(d.CentroidShift, 0, "Hz"))
	}

	return t.String()
}

func formatMetric(v float64, decimals int, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingValue
	}

	return fmt.Sprintf("%.*f %s", decimals, v, unit)
}

func formatSigned(v float64, decimals int, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingValue
	}

	return fmt.Sprintf("%+.*f %s", decimals, v, unit)
}
