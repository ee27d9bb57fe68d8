package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/horacio12345/image-compressor/internal/compressor"
)

type SummaryRow struct {
	Label string
	Value string
}

// SummaryRows lays out a finished batch for RenderSummary.
func SummaryRows(info compressor.ProgressInfo, outputDir string) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Total images", Value: fmt.Sprintf("%d", info.TotalImages)},
		{Label: "Successful", Value: fmt.Sprintf("%d", info.Successful)},
		{Label: "Failed", Value: fmt.Sprintf("%d", info.Failed)},
	}
	if info.CurrentFile != "" {
		rows = append(rows, SummaryRow{Label: "Last file", Value: info.CurrentFile})
	}
	rows = append(rows, SummaryRow{Label: "Output directory", Value: outputDir})
	return rows
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", summaryLabelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Foreground(ColorDim)
	valueStyle        = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
