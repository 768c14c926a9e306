package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Klaijan/rootin/analysis"
	"github.com/Klaijan/rootin/model"
)

// analyzeView is everything the analyze page needs to render; the model
// never reaches past it.
type analyzeView struct {
	savedMode       bool
	savedName       string
	draftCount      int
	treatmentLabel  string
	loading         map[analysis.Kind]bool
	panelErr        map[analysis.Kind]string
	interactions    []analysis.InteractionGroup
	hasInteractions bool
	score           *model.ScoreResult
	treatment       *model.TreatmentResult
	spinner         string
}

func renderAnalyzePage(v analyzeView, width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Analyze"))
	sb.WriteString("  ")
	if v.savedMode {
		src := v.savedName
		if src == "" {
			src = "no routine selected"
		}
		sb.WriteString(dimStyle.Render("source: saved routine — ") + valueStyle.Render(src))
	} else {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("source: current draft (%d entries)", v.draftCount)))
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("m:toggle source  i:interactions  s:score  t:treatment  a:all"))
	sb.WriteString("\n\n")

	sb.WriteString(renderInteractionsPanel(v) + "\n")
	sb.WriteString(renderScorePanel(v, width) + "\n")
	sb.WriteString(renderTreatmentPanel(v))
	return sb.String()
}

func renderInteractionsPanel(v analyzeView) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Ingredient Interactions"))
	sb.WriteString("\n")
	switch {
	case v.loading[analysis.KindInteractions]:
		sb.WriteString(v.spinner + " checking interactions...")
	case v.panelErr[analysis.KindInteractions] != "":
		sb.WriteString(critStyle.Render(v.panelErr[analysis.KindInteractions]))
	case !v.hasInteractions:
		sb.WriteString(dimStyle.Render("press i to check the selected routine"))
	case len(v.interactions) == 0:
		sb.WriteString(okStyle.Render("no interactions found"))
	default:
		for _, g := range v.interactions {
			sb.WriteString(interactionStyle(g.Type).Render(
				fmt.Sprintf("%s (%d)", strings.ToUpper(string(g.Type)), len(g.Items))) + "\n")
			for _, in := range g.Items {
				sb.WriteString(fmt.Sprintf("  %s + %s", in.IngredientAName, in.IngredientBName))
				if in.Effect != "" {
					sb.WriteString(dimStyle.Render(" — " + in.Effect))
				}
				sb.WriteString("\n")
				if in.ProductA != "" && in.ProductB != "" {
					sb.WriteString(dimStyle.Render(fmt.Sprintf("    %s / %s", in.ProductA, in.ProductB)) + "\n")
				}
			}
		}
	}
	return panelStyle.Render(sb.String())
}

func renderScorePanel(v analyzeView, width int) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Routine Score"))
	sb.WriteString("\n")
	switch {
	case v.loading[analysis.KindScore]:
		sb.WriteString(v.spinner + " scoring routine...")
	case v.panelErr[analysis.KindScore] != "":
		sb.WriteString(critStyle.Render(v.panelErr[analysis.KindScore]))
	case v.score == nil:
		sb.WriteString(dimStyle.Render("press s to score the selected routine"))
	default:
		sb.WriteString(renderScoreChart(v.score, width-4))
	}
	return panelStyle.Render(sb.String())
}

func renderTreatmentPanel(v analyzeView) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Post-Treatment Safety"))
	if v.treatmentLabel != "" {
		sb.WriteString("  " + dimStyle.Render(v.treatmentLabel))
	}
	sb.WriteString("\n")
	switch {
	case v.loading[analysis.KindTreatment]:
		sb.WriteString(v.spinner + " screening routine...")
	case v.panelErr[analysis.KindTreatment] != "":
		sb.WriteString(critStyle.Render(v.panelErr[analysis.KindTreatment]))
	case v.treatment == nil:
		sb.WriteString(dimStyle.Render("pick a treatment on tab 4, then press t"))
	case len(v.treatment.FlaggedProducts) == 0:
		sb.WriteString(okStyle.Render("no flagged products for " + v.treatment.Title()))
	default:
		sb.WriteString(valueStyle.Render(v.treatment.Title()) + "\n")
		products := make([]string, 0, len(v.treatment.FlaggedProducts))
		for product := range v.treatment.FlaggedProducts {
			products = append(products, product)
		}
		sort.Strings(products)
		for _, product := range products {
			warnings := v.treatment.FlaggedProducts[product]
			sb.WriteString(valueStyle.Render(product) + "\n")
			for _, w := range warnings {
				style := warnStyle
				if w.Action == model.ActionAvoid {
					style = critStyle
				}
				sb.WriteString(fmt.Sprintf("  %s %s", style.Render(strings.ToUpper(string(w.Action))), w.Ingredient))
				if w.DurationDays > 0 {
					sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%d days)", w.DurationDays)))
				}
				sb.WriteString("\n")
				if w.Reason != "" {
					sb.WriteString(dimStyle.Render("    "+w.Reason) + "\n")
				}
			}
		}
	}
	return panelStyle.Render(sb.String())
}
