package ui

import (
	"strings"

	"github.com/Klaijan/rootin/model"
)

// renderTreatmentsPage renders the treatment picker for post-treatment
// safety analysis.
func renderTreatmentsPage(treatments []model.Treatment, cursor, selectedID int, width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Treatments"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("pick the cosmetic procedure to screen your routine against") + "\n\n")
	for i, t := range treatments {
		line := padRight(t.Label(), 36)
		if t.TreatmentID == selectedID {
			line += okStyle.Render(" selected")
		}
		sb.WriteString(cursorLine(line, i == cursor) + "\n")
	}
	sb.WriteString("\n" + helpStyle.Render("enter:select  3:analyze tab"))
	return panelStyle.Render(sb.String())
}
