package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Klaijan/rootin/model"
	"github.com/Klaijan/rootin/routine"
)

// renderRoutinesPage renders the saved-routine list and, when one has been
// opened, its step-grouped detail.
func renderRoutinesPage(routines []model.SavedRoutine, cursor int,
	detail *model.SavedRoutine, groups []routine.StepGroup, detailErr string,
	loadingView bool, spinnerView, confirmDeleteID string, width int) string {

	left := renderRoutineList(routines, cursor, confirmDeleteID)

	var right string
	switch {
	case loadingView:
		right = panelStyle.Render(spinnerView + " loading routine...")
	case detail != nil:
		right = renderRoutineDetail(detail, groups, detailErr)
	default:
		right = panelStyle.Render(dimStyle.Render("enter to view a routine's steps"))
	}

	if width >= 100 {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}
	return left + "\n" + right
}

func renderRoutineList(routines []model.SavedRoutine, cursor int, confirmDeleteID string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Saved Routines"))
	sb.WriteString("\n")
	if len(routines) == 0 {
		sb.WriteString(dimStyle.Render("none yet — save a draft with b") + "\n")
	}
	for i, rt := range routines {
		line := padRight(rt.Name, 28)
		if rt.TimeOfDay != "" {
			line += dimStyle.Render(" " + rt.TimeOfDay)
		}
		sb.WriteString(cursorLine(line, i == cursor) + "\n")
		if confirmDeleteID != "" && rt.RoutineID == confirmDeleteID {
			sb.WriteString("  " + critStyle.Render("delete? y/n") + "\n")
		}
	}
	sb.WriteString(helpStyle.Render("enter:view  x:delete  r:reload"))
	return panelStyle.Render(sb.String())
}

func renderRoutineDetail(rt *model.SavedRoutine, groups []routine.StepGroup, detailErr string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(truncate(rt.Name, 40)))
	sb.WriteString("\n")
	if detailErr != "" {
		sb.WriteString(critStyle.Render(detailErr))
		return panelStyle.Render(sb.String())
	}
	for _, g := range groups {
		if g.StepNumber == model.AdditionalCareStep {
			sb.WriteString(headerStyle.Render(g.StepName) + "\n")
		} else {
			sb.WriteString(headerStyle.Render(fmt.Sprintf("Step %d — %s", g.StepNumber, g.StepName)) + "\n")
		}
		for _, it := range g.Products {
			line := "  " + it.DisplayLabel()
			if it.ProductTexture != "" {
				line += dimStyle.Render(" (" + it.ProductTexture + ")")
			}
			sb.WriteString(line + "\n")
		}
	}
	return panelStyle.Render(sb.String())
}
