package model

// EntryType distinguishes the two kinds of draft entries.
type EntryType string

const (
	EntryProduct EntryType = "product"
	EntryCustom  EntryType = "custom"
)

// AdditionalCareStep is the sentinel step bucket for items that carry no
// resolvable step designator. The backend guarantees a display name for it
// in the step-name map.
const AdditionalCareStep = 999

// RoutineEntry is one item of an unsaved draft: either a reference to a
// catalog product or a free-text ingredient group. Entries are append-ordered
// and the order is the draft's step sequence until the server assigns steps.
type RoutineEntry struct {
	ItemType        EntryType `json:"item_type"`
	ProductID       int       `json:"product_id,omitempty"`
	IngredientNames []string  `json:"ingredient_names,omitempty"`
	Label           string    `json:"label"`
}

// RoutineItem is a server-resolved routine step member. The step designator
// is RoutineStepOrder when present, the legacy StepOrder otherwise, or
// neither (sentinel bucket).
type RoutineItem struct {
	ProductID        int    `json:"product_id"`
	BrandName        string `json:"brand_name"`
	ProductName      string `json:"product_name"`
	ProductType      string `json:"product_type,omitempty"`
	ProductTexture   string `json:"product_texture,omitempty"`
	StepOrder        *int   `json:"step_order,omitempty"`
	TextureOrder     int    `json:"texture_order,omitempty"`
	StepName         string `json:"step_name,omitempty"`
	RoutineStepOrder *int   `json:"routine_step_order,omitempty"`
	Amount           string `json:"amount,omitempty"`
	Notes            string `json:"notes,omitempty"`
	WaitTimeAfter    int    `json:"wait_time_after,omitempty"`
}

// DisplayLabel mirrors Product.DisplayLabel for resolved items.
func (it RoutineItem) DisplayLabel() string {
	return it.BrandName + " - " + it.ProductName
}

// SavedRoutine is a routine persisted by the backend. It is never mutated
// locally except by wholesale replacement (re-fetch) or removal (delete).
type SavedRoutine struct {
	RoutineID   string        `json:"routine_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	ProductIDs  []int         `json:"product_ids,omitempty"`
	TimeOfDay   string        `json:"time_of_day,omitempty"`
	Items       []RoutineItem `json:"items,omitempty"`
	CreatedAt   string        `json:"created_at,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
	UserID      string        `json:"user_id,omitempty"`
}

// CreateRoutineRequest is the POST /routines body.
type CreateRoutineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ProductIDs  []int  `json:"product_ids"`
	TimeOfDay   string `json:"time_of_day,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// AnalysisRequest is the wire shape for ad-hoc (unsaved) analysis.
type AnalysisRequest struct {
	Name      string         `json:"name"`
	Items     []RoutineEntry `json:"items"`
	TimeOfDay string         `json:"time_of_day"`
}

// StepNameMap maps a step number to its display name. Key 999 is always
// present and names the fallback bucket.
type StepNameMap map[int]string

// Name resolves a step number, defaulting to the sentinel bucket name.
func (m StepNameMap) Name(step int) string {
	if name, ok := m[step]; ok {
		return name
	}
	return m[AdditionalCareStep]
}
