package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/Klaijan/rootin/model"
)

type fakeAnalysisGateway struct {
	interactions []model.Interaction
	score        *model.ScoreResult
	treatment    *model.TreatmentResult
	err          error

	adHocCalls int
	savedCalls int
	lastSaved  string
}

func (g *fakeAnalysisGateway) AnalyzeInteractions(context.Context, model.AnalysisRequest) ([]model.Interaction, error) {
	g.adHocCalls++
	return g.interactions, g.err
}

func (g *fakeAnalysisGateway) AnalyzeScore(context.Context, model.AnalysisRequest) (*model.ScoreResult, error) {
	g.adHocCalls++
	return g.score, g.err
}

func (g *fakeAnalysisGateway) AnalyzePostTreatment(context.Context, model.AnalysisRequest, int) (*model.TreatmentResult, error) {
	g.adHocCalls++
	return g.treatment, g.err
}

func (g *fakeAnalysisGateway) RoutineInteractions(_ context.Context, id string) ([]model.Interaction, error) {
	g.savedCalls++
	g.lastSaved = id
	return g.interactions, g.err
}

func (g *fakeAnalysisGateway) RoutineScore(_ context.Context, id string) (*model.ScoreResult, error) {
	g.savedCalls++
	g.lastSaved = id
	return g.score, g.err
}

func (g *fakeAnalysisGateway) RoutineTreatment(_ context.Context, id string, _ int) (*model.TreatmentResult, error) {
	g.savedCalls++
	g.lastSaved = id
	return g.treatment, g.err
}

func draftReq() model.AnalysisRequest {
	return model.AnalysisRequest{
		Name:      "My Routine",
		TimeOfDay: "morning",
		Items:     []model.RoutineEntry{{ItemType: model.EntryCustom, IngredientNames: []string{"Retinol"}, Label: "Custom: Retinol"}},
	}
}

func TestDispatchValidatesSource(t *testing.T) {
	o := New(&fakeAnalysisGateway{})

	if _, err := o.Dispatch(KindInteractions, Source{}, 0); !errors.Is(err, model.ErrNoSelection) {
		t.Errorf("no source: got %v", err)
	}
	if _, err := o.Dispatch(KindScore, DraftSource(model.AnalysisRequest{}), 0); !errors.Is(err, model.ErrEmptyDraft) {
		t.Errorf("empty draft: got %v", err)
	}
	if _, err := o.Dispatch(KindTreatment, DraftSource(draftReq()), 0); !errors.Is(err, model.ErrNoSelection) {
		t.Errorf("missing treatment id: got %v", err)
	}
}

func TestExecuteRoutesDraftAndSavedModes(t *testing.T) {
	gw := &fakeAnalysisGateway{score: &model.ScoreResult{TotalScore: 4.2}}
	o := New(gw)

	tk, err := o.Dispatch(KindScore, DraftSource(draftReq()), 0)
	if err != nil {
		t.Fatalf("dispatch draft: %v", err)
	}
	res, err := o.Execute(context.Background(), tk)
	if err != nil {
		t.Fatalf("execute draft: %v", err)
	}
	if res.Score == nil || res.Score.TotalScore != 4.2 {
		t.Errorf("draft score result = %+v", res)
	}
	if gw.adHocCalls != 1 || gw.savedCalls != 0 {
		t.Errorf("draft mode used wrong endpoints: adhoc=%d saved=%d", gw.adHocCalls, gw.savedCalls)
	}

	tk, err = o.Dispatch(KindScore, SavedSource("r1"), 0)
	if err != nil {
		t.Fatalf("dispatch saved: %v", err)
	}
	if _, err := o.Execute(context.Background(), tk); err != nil {
		t.Fatalf("execute saved: %v", err)
	}
	if gw.savedCalls != 1 || gw.lastSaved != "r1" {
		t.Errorf("saved mode routing: calls=%d id=%q", gw.savedCalls, gw.lastSaved)
	}
}

func TestNewerDispatchSupersedesOlder(t *testing.T) {
	o := New(&fakeAnalysisGateway{})

	first, err := o.Dispatch(KindInteractions, SavedSource("r1"), 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := o.Dispatch(KindInteractions, SavedSource("r1"), 0)
	if err != nil {
		t.Fatal(err)
	}

	if o.Current(first) {
		t.Error("older dispatch must be stale once a newer one exists")
	}
	if !o.Current(second) {
		t.Error("newest dispatch must be current")
	}
}

func TestDispatchSlotsAreIndependent(t *testing.T) {
	o := New(&fakeAnalysisGateway{})

	interactions, _ := o.Dispatch(KindInteractions, SavedSource("r1"), 0)
	score, _ := o.Dispatch(KindScore, SavedSource("r1"), 0)
	other, _ := o.Dispatch(KindInteractions, SavedSource("r2"), 0)

	if !o.Current(interactions) || !o.Current(score) || !o.Current(other) {
		t.Error("dispatches for distinct (source, kind) slots must not supersede each other")
	}
}

func TestExecutePropagatesGatewayError(t *testing.T) {
	gw := &fakeAnalysisGateway{err: errors.New("boom")}
	o := New(gw)
	tk, err := o.Dispatch(KindInteractions, SavedSource("r1"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Execute(context.Background(), tk); err == nil {
		t.Fatal("expected gateway error")
	}
}

func TestGroupInteractionsOrdersBySeverity(t *testing.T) {
	interactions := []model.Interaction{
		{IngredientAName: "AHA", IngredientBName: "BHA", InteractionType: model.InteractionNeutral},
		{IngredientAName: "Retinol", IngredientBName: "AHA", InteractionType: model.InteractionClash},
		{IngredientAName: "Niacinamide", IngredientBName: "Vitamin C", InteractionType: model.InteractionCaution},
		{IngredientAName: "Retinol", IngredientBName: "BHA", InteractionType: model.InteractionClash},
	}

	groups := GroupInteractions(interactions)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Type != model.InteractionClash || len(groups[0].Items) != 2 {
		t.Errorf("first group = %+v, want two clashes", groups[0])
	}
	if groups[1].Type != model.InteractionCaution || groups[2].Type != model.InteractionNeutral {
		t.Errorf("severity order wrong: %v, %v", groups[1].Type, groups[2].Type)
	}
	if groups[0].Items[0].IngredientBName != "AHA" {
		t.Error("within a group, server order must be preserved")
	}
}

func TestGroupInteractionsEmpty(t *testing.T) {
	if got := GroupInteractions(nil); len(got) != 0 {
		t.Errorf("expected no groups, got %v", got)
	}
}
