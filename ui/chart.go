package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Klaijan/rootin/model"
)

const (
	chartLabelW = 16
	chartBarW   = 30
)

// axisMax computes the chart ceiling from the score data: one unit of
// headroom above the highest value, never below 5.
func axisMax(res *model.ScoreResult) float64 {
	max := res.TotalScore
	for _, v := range res.CategoryScores {
		if v > max {
			max = v
		}
	}
	return math.Max(5, math.Floor(max)+1)
}

// shortLabel abbreviates a category name for the chart axis. Names with an
// " &" suffix keep only the part before it; otherwise long names are cut to
// 12 characters plus ellipsis.
func shortLabel(name string) string {
	if i := strings.Index(name, " &"); i >= 0 {
		return name[:i]
	}
	r := []rune(name)
	if len(r) > 15 {
		return string(r[:12]) + "..."
	}
	return name
}

// scoreBar renders a horizontal bar for one score against the axis ceiling.
func scoreBar(val, ceiling float64, width int) string {
	if width < 1 {
		width = chartBarW
	}
	if val < 0 {
		val = 0
	}
	if val > ceiling {
		val = ceiling
	}
	filled := int(math.Round(val / ceiling * float64(width)))
	if filled > width {
		filled = width
	}
	b := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return scoreStyle(val).Render(b)
}

// renderScoreChart renders the per-category score bars plus the total row.
// Categories are sorted by name so the chart is stable across refreshes.
func renderScoreChart(res *model.ScoreResult, width int) string {
	barW := width - chartLabelW - 8
	if barW < 10 || barW > chartBarW {
		barW = chartBarW
	}
	ceiling := axisMax(res)

	cats := make([]string, 0, len(res.CategoryScores))
	for name := range res.CategoryScores {
		cats = append(cats, name)
	}
	sort.Strings(cats)

	var sb strings.Builder
	for _, name := range cats {
		v := res.CategoryScores[name]
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			styledPad(dimStyle.Render(padRight(shortLabel(name), chartLabelW)), chartLabelW),
			scoreBar(v, ceiling, barW),
			valueStyle.Render(fmt.Sprintf("%4.1f", v))))
	}
	sb.WriteString(fmt.Sprintf("%s %s %s\n",
		styledPad(headerStyle.Render(padRight("Total", chartLabelW)), chartLabelW),
		scoreBar(res.TotalScore, ceiling, barW),
		scoreStyle(res.TotalScore).Render(fmt.Sprintf("%4.1f", res.TotalScore))))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%s 0%s%.0f",
		strings.Repeat(" ", chartLabelW+1), strings.Repeat(" ", barW-3), ceiling)))
	return sb.String()
}
