package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/David-Botos/transit-ingress/pkg/export"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/pipeline"
	"github.com/David-Botos/transit-ingress/pkg/scoring"
)

var (
	colorCP     = lipgloss.Color("#8BC34A")
	colorPC     = lipgloss.Color("#FFC107")
	colorAPC    = lipgloss.Color("#e57373")
	colorBorder = lipgloss.Color("#2a3850")
	colorMuted  = lipgloss.Color("#9aa5b1")

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	statsStyle  = lipgloss.NewStyle().Bold(true)
)

func labelColor(l model.Label) lipgloss.Color {
	switch l {
	case model.LabelCP:
		return colorCP
	case model.LabelPC:
		return colorPC
	default:
		return colorAPC
	}
}

// report prints res in the chosen format. Table output shows at most n rows;
// stats always cover every record.
func report(w io.Writer, res *pipeline.Result, format string, n int) error {
	switch format {
	case "json":
		return export.WriteJSON(w, res.Records, res.Stats)
	case "csv":
		return export.WriteCSV(w, res.Records)
	}

	shown := res.Top(n)
	if len(shown) > 0 {
		if _, err := fmt.Fprintln(w, renderTable(shown)); err != nil {
			return err
		}
	}
	if len(shown) < len(res.Records) {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("showing %d of %d candidates", len(shown), len(res.Records))))
	}
	fmt.Fprintln(w, renderStats(res.Stats))
	if dropped := renderDropped(res.Dropped); dropped != "" {
		fmt.Fprintln(w, mutedStyle.Render(dropped))
	}
	return nil
}

func renderTable(records []model.CandidateRecord) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.ID,
			formatNumber(r.Period),
			formatNumber(r.Duration),
			formatNumber(r.Depth),
			formatNumber(r.StarMag),
			strconv.FormatFloat(r.Score, 'f', 1, 64),
			r.Label.String(),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("ID", "PERIOD (d)", "DURATION (h)", "DEPTH (ppm)", "MAG", "SCORE", "LABEL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 6:
				return cellStyle.Foreground(labelColor(records[row].Label)).Bold(true)
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	return t.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func renderStats(s model.DatasetStats) string {
	return statsStyle.Render(fmt.Sprintf(
		"total %d  mean %.2f  median %.2f  std %.2f  pass rate %.2f%%",
		s.Total, s.Mean, s.Median, s.Std, s.PassRate))
}

func renderDropped(dropped map[model.DropReason]int) string {
	var parts []string
	for _, reason := range model.DropReasons {
		if n := dropped[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", reason, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "dropped: " + strings.Join(parts, ", ")
}

func renderEvaluation(ev scoring.Evaluation) string {
	label := lipgloss.NewStyle().Foreground(labelColor(ev.Label)).Bold(true).
		Render(fmt.Sprintf("%s (%s)", ev.Label, ev.Label.Description()))
	return fmt.Sprintf("score %.1f  %s", ev.Score, label)
}
