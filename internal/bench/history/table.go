package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Color palette shared with the rest of the CLI output
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	NumberStyle = CellStyle.
			Foreground(ColorSecondary).
			Align(lipgloss.Right)

	BestStyle = NumberStyle.
			Foreground(ColorSuccess).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

var headers = []string{"STARTED", "DIGITS", "REPS", "THREADS", "MODE", "TIME (ms)", "CALC/s", "HOST"}

// numeric columns are right aligned
var numericColumns = map[int]bool{1: true, 2: true, 3: true, 5: true, 6: true}

const throughputColumn = 6

// Render formats runs as a bordered table followed by a one-line summary.
// The row with the highest throughput is highlighted.
func Render(runs []*Run, sum Summary) string {
	if len(runs) == 0 {
		return SummaryStyle.Render("no recorded runs") + "\n"
	}

	best := 0
	for i, r := range runs {
		if r.CalcsPerSec > runs[best].CalcsPerSec {
			best = i
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row == best && col == throughputColumn:
				return BestStyle
			case numericColumns[col]:
				return NumberStyle
			default:
				return CellStyle
			}
		})

	for _, r := range runs {
		t.Row(
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Digits),
			strconv.Itoa(r.RepsPerThread),
			strconv.Itoa(r.Workers),
			r.Mode,
			fmt.Sprintf("%.2f", r.TotalTimeMs),
			fmt.Sprintf("%.2f", r.CalcsPerSec),
			r.Host,
		)
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(SummaryStyle.Render(fmt.Sprintf("%d runs, best %.2f calc/s, mean %.2f calc/s, time %.2f..%.2f ms",
		sum.Runs, sum.BestPerSec, sum.MeanPerSec, sum.FastestTimeMs, sum.SlowestTimeMs)))
	b.WriteString("\n")
	return b.String()
}
