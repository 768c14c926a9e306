package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Klaijan/rootin/catalog"
	"github.com/Klaijan/rootin/model"
	"github.com/Klaijan/rootin/routine"
)

// renderProductsPage renders the catalog list next to the current draft.
func renderProductsPage(cache *catalog.Cache, draft *routine.Draft,
	productCursor, draftCursor int, typingIngredients bool, ingredientInput string, width int) string {

	left := renderCatalogPanel(cache, productCursor)
	right := renderDraftPanel(cache, draft, draftCursor, typingIngredients, ingredientInput)

	if width >= 100 {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}
	return left + "\n" + right
}

func renderCatalogPanel(cache *catalog.Cache, cursor int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Products"))
	if cache.Degraded() {
		sb.WriteString("  " + warnStyle.Render("(built-in sample catalog)"))
	}
	sb.WriteString("\n")
	for i, p := range cache.Products() {
		line := padRight(p.DisplayLabel(), 44)
		if p.ProductType != "" {
			line += dimStyle.Render(" " + p.ProductType)
		}
		sb.WriteString(cursorLine(line, i == cursor) + "\n")
	}
	sb.WriteString(helpStyle.Render("enter:add  i:custom ingredients"))
	return panelStyle.Render(sb.String())
}

func renderDraftPanel(cache *catalog.Cache, draft *routine.Draft,
	cursor int, typingIngredients bool, ingredientInput string) string {

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Current Draft"))
	sb.WriteString("\n")
	entries := draft.Entries()
	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("empty — add products or custom ingredients") + "\n")
	}
	for i, e := range entries {
		sb.WriteString(cursorLine(draftEntryLine(cache, e, i), i == cursor) + "\n")
	}
	if typingIngredients {
		sb.WriteString("\n" + headerStyle.Render("Custom ingredients") + "\n")
		sb.WriteString(ingredientInput + "\n")
		sb.WriteString(helpStyle.Render("enter:add  esc:cancel"))
	} else {
		sb.WriteString(helpStyle.Render("J/K:select  x:remove  b:save  C:clear"))
	}
	return panelStyle.Render(sb.String())
}

// draftEntryLine shows one draft entry with a short ingredient preview for
// products, matching what the saved routine will contain.
func draftEntryLine(cache *catalog.Cache, e model.RoutineEntry, idx int) string {
	line := fmt.Sprintf("%d. %s", idx+1, e.Label)
	if e.ItemType == model.EntryProduct {
		if p, ok := cache.ProductByID(e.ProductID); ok {
			if key, more := p.KeyIngredients(4); len(key) > 0 {
				preview := strings.Join(key, ", ")
				if more {
					preview += ", ..."
				}
				line += dimStyle.Render("  (" + preview + ")")
			}
		}
	}
	return line
}

// renderBuilder is the save prompt shown once the draft has content.
func renderBuilder(draft *routine.Draft, nameInput string, width int) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Save routine"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d entries, %d saveable products\n",
		draft.Len(), len(draft.ProductIDs())))
	if len(draft.ProductIDs()) == 0 {
		sb.WriteString(warnStyle.Render("custom-only drafts cannot be saved") + "\n")
	}
	sb.WriteString("Name: " + nameInput + "\n")
	sb.WriteString(helpStyle.Render("enter:save  esc:cancel"))
	return activePanelStyle.Render(sb.String())
}
