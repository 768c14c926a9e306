package routine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Klaijan/rootin/model"
)

func intPtr(v int) *int { return &v }

func lookupNames(step int) string {
	names := model.StepNameMap{
		1:   "Cleanser",
		2:   "Exfoliator",
		5:   "Treatment",
		999: "Additional Care",
	}
	return names.Name(step)
}

func stepItem(name string, routineStep, legacyStep *int) model.RoutineItem {
	return model.RoutineItem{
		ProductName:      name,
		BrandName:        "Brand",
		RoutineStepOrder: routineStep,
		StepOrder:        legacyStep,
	}
}

func TestGroupStepsOrdersNumericallyWithSentinelLast(t *testing.T) {
	items := []model.RoutineItem{
		stepItem("serum", intPtr(5), intPtr(5)),
		stepItem("scrub", intPtr(2), intPtr(2)),
		stepItem("mystery", nil, nil),
		stepItem("peel", intPtr(2), intPtr(2)),
	}

	groups, err := GroupSteps(items, lookupNames)
	if err != nil {
		t.Fatalf("GroupSteps: %v", err)
	}

	gotSteps := make([]int, len(groups))
	for i, g := range groups {
		gotSteps[i] = g.StepNumber
	}
	if !reflect.DeepEqual(gotSteps, []int{2, 5, 999}) {
		t.Fatalf("group order = %v, want [2 5 999]", gotSteps)
	}

	// Items within a group keep their original relative order.
	two := groups[0]
	if len(two.Products) != 2 || two.Products[0].ProductName != "scrub" || two.Products[1].ProductName != "peel" {
		t.Errorf("step-2 group items = %v", two.Products)
	}
}

func TestGroupStepsSentinelLastByRuleNotMagnitude(t *testing.T) {
	// A step number above the sentinel would break magnitude-based ordering;
	// the bucket must still come last.
	items := []model.RoutineItem{
		stepItem("experimental", intPtr(1500), intPtr(1500)),
		stepItem("mystery", nil, nil),
		stepItem("wash", intPtr(1), intPtr(1)),
	}
	groups, err := GroupSteps(items, lookupNames)
	if err != nil {
		t.Fatalf("GroupSteps: %v", err)
	}
	gotSteps := make([]int, len(groups))
	for i, g := range groups {
		gotSteps[i] = g.StepNumber
	}
	if !reflect.DeepEqual(gotSteps, []int{1, 1500, 999}) {
		t.Fatalf("group order = %v, want sentinel bucket last", gotSteps)
	}
}

func TestGroupStepsResolvesNamesAndNumbers(t *testing.T) {
	tests := []struct {
		name     string
		item     model.RoutineItem
		wantStep int
		wantName string
	}{
		{
			"explicit routine step order preferred",
			model.RoutineItem{ProductName: "a", RoutineStepOrder: intPtr(2), StepOrder: intPtr(5)},
			2,
			"Treatment", // name table is keyed by the legacy step_order
		},
		{
			"legacy step order fallback",
			model.RoutineItem{ProductName: "b", StepOrder: intPtr(1)},
			1,
			"Cleanser",
		},
		{
			"own step name wins over lookup",
			model.RoutineItem{ProductName: "c", StepOrder: intPtr(1), StepName: "Morning Wash"},
			1,
			"Morning Wash",
		},
		{
			"no designator lands in sentinel bucket",
			model.RoutineItem{ProductName: "d"},
			999,
			"Additional Care",
		},
	}
	for _, tt := range tests {
		groups, err := GroupSteps([]model.RoutineItem{tt.item}, lookupNames)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(groups) != 1 {
			t.Fatalf("%s: expected one group, got %d", tt.name, len(groups))
		}
		if groups[0].StepNumber != tt.wantStep || groups[0].StepName != tt.wantName {
			t.Errorf("%s: got (%d, %q), want (%d, %q)",
				tt.name, groups[0].StepNumber, groups[0].StepName, tt.wantStep, tt.wantName)
		}
	}
}

func TestGroupStepsIdempotent(t *testing.T) {
	items := []model.RoutineItem{
		stepItem("serum", intPtr(5), intPtr(5)),
		stepItem("wash", intPtr(1), intPtr(1)),
		stepItem("mystery", nil, nil),
	}
	first, err := GroupSteps(items, lookupNames)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := GroupSteps(items, lookupNames)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("grouping the same items twice must yield identical output")
	}
}

func TestGroupStepsEmptyRoutine(t *testing.T) {
	_, err := GroupSteps(nil, lookupNames)
	if !errors.Is(err, model.ErrEmptyRoutine) {
		t.Fatalf("expected ErrEmptyRoutine, got %v", err)
	}
}
