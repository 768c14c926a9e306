package routine

import (
	"sort"

	"github.com/Klaijan/rootin/model"
)

// StepGroup is one display row of a grouped routine: a step number, its
// display name and the items assigned to it in their original relative
// order.
type StepGroup struct {
	StepNumber int
	StepName   string
	Products   []model.RoutineItem
}

// StepNameFunc resolves a step number to a display name.
type StepNameFunc func(step int) string

// GroupSteps derives the grouped, ordered presentation of a saved routine's
// flat item list. Per item the step number is routine_step_order when
// present, the legacy step_order otherwise, or the sentinel bucket; the
// step name is the item's own when set, resolved through lookup otherwise.
// Groups are ordered by ascending step number with the sentinel bucket
// placed last by rule, not by numeric magnitude. An empty item list is an
// explicit error so callers can distinguish "empty routine" from "no
// groups".
func GroupSteps(items []model.RoutineItem, stepName StepNameFunc) ([]StepGroup, error) {
	if len(items) == 0 {
		return nil, model.ErrEmptyRoutine
	}

	byStep := make(map[int]*StepGroup)
	var order []int // first-seen group creation order
	for _, it := range items {
		step := resolveStepNumber(it)
		g, ok := byStep[step]
		if !ok {
			g = &StepGroup{StepNumber: step, StepName: resolveStepName(it, step, stepName)}
			byStep[step] = g
			order = append(order, step)
		}
		g.Products = append(g.Products, it)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		// The additional-care bucket is a terminal marker, always last.
		if a == model.AdditionalCareStep {
			return false
		}
		if b == model.AdditionalCareStep {
			return true
		}
		return a < b
	})

	groups := make([]StepGroup, 0, len(order))
	for _, step := range order {
		groups = append(groups, *byStep[step])
	}
	return groups, nil
}

func resolveStepNumber(it model.RoutineItem) int {
	switch {
	case it.RoutineStepOrder != nil:
		return *it.RoutineStepOrder
	case it.StepOrder != nil:
		return *it.StepOrder
	default:
		return model.AdditionalCareStep
	}
}

func resolveStepName(it model.RoutineItem, step int, lookup StepNameFunc) string {
	if it.StepName != "" {
		return it.StepName
	}
	// The name table is keyed by the legacy step_order; prefer it when the
	// group key came from routine_step_order.
	if it.StepOrder != nil {
		return lookup(*it.StepOrder)
	}
	return lookup(step)
}
