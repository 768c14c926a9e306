package model

// Treatment is a cosmetic procedure the routine can be screened against.
type Treatment struct {
	TreatmentID int    `json:"treatment_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// Label returns the picker label for a treatment.
func (t Treatment) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}
