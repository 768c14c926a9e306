package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Klaijan/rootin/analysis"
	"github.com/Klaijan/rootin/model"
	"github.com/Klaijan/rootin/routine"
)

// reportData is everything the markdown report renders, collected up front
// so rendering stays pure and testable.
type reportData struct {
	routine   *model.SavedRoutine
	groups    []routine.StepGroup
	groupsErr error

	interactions    []analysis.InteractionGroup
	interactionsErr error

	score    *model.ScoreResult
	scoreErr error

	treatmentRequested bool
	treatment          *model.TreatmentResult
	treatmentErr       error

	generatedAt time.Time
}

// runReport fetches a saved routine, runs the three analyses against it, and
// prints a markdown report to stdout.
func runReport(sess *session, id string, treatmentID int) error {
	ctx := context.Background()

	if err := sess.catalog.Load(ctx, sess.client); err != nil {
		fmt.Fprintf(os.Stderr, "warning: catalog unavailable, using built-in step names: %v\n", err)
	}

	rt, err := sess.library.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch routine %s: %w", id, err)
	}

	data := reportData{routine: rt, generatedAt: time.Now()}
	data.groups, data.groupsErr = routine.GroupSteps(rt.Items, sess.catalog.StepName)

	if res, err := sess.runAnalysis(ctx, analysis.KindInteractions, id, 0); err != nil {
		data.interactionsErr = err
	} else {
		data.interactions = analysis.GroupInteractions(res.Interactions)
	}

	if res, err := sess.runAnalysis(ctx, analysis.KindScore, id, 0); err != nil {
		data.scoreErr = err
	} else {
		data.score = res.Score
	}

	if treatmentID > 0 {
		data.treatmentRequested = true
		if res, err := sess.runAnalysis(ctx, analysis.KindTreatment, id, treatmentID); err != nil {
			data.treatmentErr = err
		} else {
			data.treatment = res.Treatment
		}
	}

	fmt.Println(renderReport(data))
	return nil
}

func (s *session) runAnalysis(ctx context.Context, kind analysis.Kind, id string, treatmentID int) (*analysis.Result, error) {
	ticket, err := s.orch.Dispatch(kind, analysis.SavedSource(id), treatmentID)
	if err != nil {
		return nil, err
	}
	return s.orch.Execute(ctx, ticket)
}

// renderReport generates the markdown analysis report.
func renderReport(d reportData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Routine Report: %s\n\n", d.routine.Name))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", d.generatedAt.Format(time.RFC3339)))
	if d.routine.TimeOfDay != "" {
		sb.WriteString(fmt.Sprintf("**Time of day:** %s\n", d.routine.TimeOfDay))
	}
	if d.routine.Description != "" {
		sb.WriteString(fmt.Sprintf("**Description:** %s\n", d.routine.Description))
	}
	sb.WriteString("\n## Steps\n\n")
	switch {
	case d.groupsErr != nil:
		sb.WriteString(fmt.Sprintf("_%s_\n", d.groupsErr))
	default:
		for _, g := range d.groups {
			if g.StepNumber == model.AdditionalCareStep {
				sb.WriteString(fmt.Sprintf("### %s\n\n", g.StepName))
			} else {
				sb.WriteString(fmt.Sprintf("### Step %d — %s\n\n", g.StepNumber, g.StepName))
			}
			for _, it := range g.Products {
				line := "- " + it.DisplayLabel()
				if it.ProductTexture != "" {
					line += fmt.Sprintf(" (%s)", it.ProductTexture)
				}
				sb.WriteString(line + "\n")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Ingredient Interactions\n\n")
	switch {
	case d.interactionsErr != nil:
		sb.WriteString(fmt.Sprintf("_analysis failed: %s_\n", d.interactionsErr))
	case len(d.interactions) == 0:
		sb.WriteString("No interactions found.\n")
	default:
		for _, g := range d.interactions {
			sb.WriteString(fmt.Sprintf("### %s (%d)\n\n", strings.ToUpper(string(g.Type)), len(g.Items)))
			for _, in := range g.Items {
				sb.WriteString(fmt.Sprintf("- **%s + %s**", in.IngredientAName, in.IngredientBName))
				if in.Effect != "" {
					sb.WriteString(" — " + in.Effect)
				}
				sb.WriteString("\n")
				if in.ProductA != "" && in.ProductB != "" {
					sb.WriteString(fmt.Sprintf("  - %s / %s\n", in.ProductA, in.ProductB))
				}
				if in.Details != "" {
					sb.WriteString(fmt.Sprintf("  - %s\n", in.Details))
				}
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Score\n\n")
	switch {
	case d.scoreErr != nil:
		sb.WriteString(fmt.Sprintf("_analysis failed: %s_\n", d.scoreErr))
	case d.score == nil:
		sb.WriteString("_no score returned_\n")
	default:
		sb.WriteString("| Category | Score |\n")
		sb.WriteString("|----------|-------|\n")
		cats := make([]string, 0, len(d.score.CategoryScores))
		for name := range d.score.CategoryScores {
			cats = append(cats, name)
		}
		sort.Strings(cats)
		for _, name := range cats {
			sb.WriteString(fmt.Sprintf("| %s | %.1f |\n", name, d.score.CategoryScores[name]))
		}
		sb.WriteString(fmt.Sprintf("| **Total** | **%.1f** |\n", d.score.TotalScore))
	}

	if d.treatmentRequested {
		sb.WriteString("\n## Post-Treatment Safety\n\n")
		switch {
		case d.treatmentErr != nil:
			sb.WriteString(fmt.Sprintf("_analysis failed: %s_\n", d.treatmentErr))
		case d.treatment == nil:
			sb.WriteString("_no result returned_\n")
		case len(d.treatment.FlaggedProducts) == 0:
			sb.WriteString(fmt.Sprintf("No flagged products for %s.\n", d.treatment.Title()))
		default:
			sb.WriteString(fmt.Sprintf("Screening against **%s**:\n\n", d.treatment.Title()))
			products := make([]string, 0, len(d.treatment.FlaggedProducts))
			for name := range d.treatment.FlaggedProducts {
				products = append(products, name)
			}
			sort.Strings(products)
			for _, name := range products {
				sb.WriteString(fmt.Sprintf("### %s\n\n", name))
				for _, w := range d.treatment.FlaggedProducts[name] {
					sb.WriteString(fmt.Sprintf("- **%s** %s", strings.ToUpper(string(w.Action)), w.Ingredient))
					if w.DurationDays > 0 {
						sb.WriteString(fmt.Sprintf(" — wait %d days", w.DurationDays))
					}
					sb.WriteString("\n")
					if w.Reason != "" {
						sb.WriteString(fmt.Sprintf("  - %s\n", w.Reason))
					}
				}
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\n---\n*Generated by rootin*\n")
	return sb.String()
}
