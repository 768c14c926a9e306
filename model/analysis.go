package model

// InteractionType classifies a flagged ingredient pair.
type InteractionType string

const (
	InteractionClash   InteractionType = "clash"
	InteractionCaution InteractionType = "caution"
	InteractionNeutral InteractionType = "neutral"
)

// interactionTypeOrder ranks interaction types for display, most severe
// first. Unknown types sort after all known ones.
var interactionTypeOrder = map[InteractionType]int{
	InteractionClash:   0,
	InteractionCaution: 1,
	InteractionNeutral: 2,
}

// DisplayRank returns the display position of an interaction type.
func (t InteractionType) DisplayRank() int {
	if r, ok := interactionTypeOrder[t]; ok {
		return r
	}
	return len(interactionTypeOrder)
}

// Interaction is a flagged relationship between two ingredients across two
// products of a routine.
type Interaction struct {
	IngredientA     int             `json:"ingredient_a,omitempty"`
	IngredientB     int             `json:"ingredient_b,omitempty"`
	IngredientAName string          `json:"ingredient_a_name"`
	IngredientBName string          `json:"ingredient_b_name"`
	ProductA        string          `json:"product_a"`
	ProductB        string          `json:"product_b"`
	InteractionType InteractionType `json:"interaction_type"`
	Effect          string          `json:"effect"`
	Details         string          `json:"details"`
}

// ScoreResult is the multi-category scoring payload.
type ScoreResult struct {
	CategoryScores map[string]float64 `json:"category_scores"`
	TotalScore     float64            `json:"total_score"`
}

// WarningAction is the severity of a post-treatment warning.
type WarningAction string

const (
	ActionAvoid   WarningAction = "avoid"
	ActionCaution WarningAction = "caution"
)

// TreatmentWarning flags one ingredient of a product against a treatment's
// post-procedure restrictions.
type TreatmentWarning struct {
	Action       WarningAction `json:"action"`
	Ingredient   string        `json:"ingredient"`
	Reason       string        `json:"reason"`
	DurationDays int           `json:"duration_days"`
}

// TreatmentResult is the post-treatment safety screening payload, keyed by
// product display name.
type TreatmentResult struct {
	TreatmentName   string                        `json:"treatment_name"`
	DisplayName     string                        `json:"display_name,omitempty"`
	FlaggedProducts map[string][]TreatmentWarning `json:"flagged_products"`
}

// Title returns the human-facing treatment name, preferring DisplayName.
func (r TreatmentResult) Title() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.TreatmentName
}
