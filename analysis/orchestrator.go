// Package analysis drives the three analysis operations against a selected
// routine — the in-progress draft or a saved routine — and guards against
// the stale-response race: each dispatch gets a sequence token per
// (source, kind) and only the newest dispatch's result is accepted.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Klaijan/rootin/model"
)

// Kind identifies one of the three analysis operations.
type Kind string

const (
	KindInteractions Kind = "interactions"
	KindScore        Kind = "score"
	KindTreatment    Kind = "treatment"
)

// Gateway is the subset of the api client the orchestrator needs.
type Gateway interface {
	AnalyzeInteractions(ctx context.Context, req model.AnalysisRequest) ([]model.Interaction, error)
	AnalyzeScore(ctx context.Context, req model.AnalysisRequest) (*model.ScoreResult, error)
	AnalyzePostTreatment(ctx context.Context, req model.AnalysisRequest, treatmentID int) (*model.TreatmentResult, error)
	RoutineInteractions(ctx context.Context, id string) ([]model.Interaction, error)
	RoutineScore(ctx context.Context, id string) (*model.ScoreResult, error)
	RoutineTreatment(ctx context.Context, id string, treatmentID int) (*model.TreatmentResult, error)
}

// Source selects the analysis entry mode: an ad-hoc draft payload or a
// saved routine id.
type Source struct {
	RoutineID string
	Request   *model.AnalysisRequest
}

// DraftSource analyzes an unsaved draft payload.
func DraftSource(req model.AnalysisRequest) Source {
	return Source{Request: &req}
}

// SavedSource analyzes a saved routine by id.
func SavedSource(id string) Source {
	return Source{RoutineID: id}
}

func (s Source) key() string {
	if s.RoutineID != "" {
		return "saved:" + s.RoutineID
	}
	return "draft"
}

// Result is the typed payload of a completed analysis; exactly one field
// matching Kind is set.
type Result struct {
	Kind         Kind
	Interactions []model.Interaction
	Score        *model.ScoreResult
	Treatment    *model.TreatmentResult
}

// Ticket identifies one dispatch. A ticket whose sequence number has been
// overtaken by a newer dispatch for the same (source, kind) is stale and
// its result must be dropped.
type Ticket struct {
	Kind        Kind
	Source      Source
	TreatmentID int
	seq         uint64
	slot        string
}

// Orchestrator validates, sequences and executes analysis dispatches.
type Orchestrator struct {
	gw  Gateway
	mu  sync.Mutex
	seq map[string]uint64
}

// New returns an orchestrator over gw.
func New(gw Gateway) *Orchestrator {
	return &Orchestrator{gw: gw, seq: make(map[string]uint64)}
}

// Dispatch validates the request and claims the newest sequence slot for
// its (source, kind). Validation failures are user-input errors; nothing
// reaches the network.
func (o *Orchestrator) Dispatch(kind Kind, src Source, treatmentID int) (Ticket, error) {
	switch {
	case src.RoutineID == "" && src.Request == nil:
		return Ticket{}, model.ErrNoSelection
	case src.Request != nil && len(src.Request.Items) == 0:
		return Ticket{}, model.ErrEmptyDraft
	case kind == KindTreatment && treatmentID <= 0:
		return Ticket{}, fmt.Errorf("%w: treatment", model.ErrNoSelection)
	}

	slot := src.key() + "/" + string(kind)
	o.mu.Lock()
	o.seq[slot]++
	t := Ticket{Kind: kind, Source: src, TreatmentID: treatmentID, seq: o.seq[slot], slot: slot}
	o.mu.Unlock()
	return t, nil
}

// Execute runs the gateway call for a ticket. No retries; the failure is
// terminal for this dispatch.
func (o *Orchestrator) Execute(ctx context.Context, t Ticket) (*Result, error) {
	res := &Result{Kind: t.Kind}
	var err error
	if t.Source.RoutineID != "" {
		switch t.Kind {
		case KindInteractions:
			res.Interactions, err = o.gw.RoutineInteractions(ctx, t.Source.RoutineID)
		case KindScore:
			res.Score, err = o.gw.RoutineScore(ctx, t.Source.RoutineID)
		case KindTreatment:
			res.Treatment, err = o.gw.RoutineTreatment(ctx, t.Source.RoutineID, t.TreatmentID)
		}
	} else {
		switch t.Kind {
		case KindInteractions:
			res.Interactions, err = o.gw.AnalyzeInteractions(ctx, *t.Source.Request)
		case KindScore:
			res.Score, err = o.gw.AnalyzeScore(ctx, *t.Source.Request)
		case KindTreatment:
			res.Treatment, err = o.gw.AnalyzePostTreatment(ctx, *t.Source.Request, t.TreatmentID)
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Current reports whether t is still the newest dispatch for its slot.
func (o *Orchestrator) Current(t Ticket) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return t.seq == o.seq[t.slot]
}

// InteractionGroup is one display bucket of interactions sharing a type.
type InteractionGroup struct {
	Type  model.InteractionType
	Items []model.Interaction
}

// GroupInteractions buckets interactions by type, most severe type first,
// preserving server order within each bucket.
func GroupInteractions(interactions []model.Interaction) []InteractionGroup {
	byType := make(map[model.InteractionType]*InteractionGroup)
	var order []model.InteractionType
	for _, in := range interactions {
		g, ok := byType[in.InteractionType]
		if !ok {
			g = &InteractionGroup{Type: in.InteractionType}
			byType[in.InteractionType] = g
			order = append(order, in.InteractionType)
		}
		g.Items = append(g.Items, in)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].DisplayRank() < order[j].DisplayRank()
	})
	groups := make([]InteractionGroup, 0, len(order))
	for _, tp := range order {
		groups = append(groups, *byType[tp])
	}
	return groups
}
