// Package routine holds the client-side routine state: the in-progress
// draft, the library of saved routines and the pure step-grouping used for
// display.
package routine

import (
	"fmt"
	"strings"

	"github.com/Klaijan/rootin/catalog"
	"github.com/Klaijan/rootin/model"
)

// Draft is the unsaved, in-progress routine. Entries are append-ordered and
// live only in memory; a save persists the product-id subset and clears the
// draft.
type Draft struct {
	entries []model.RoutineEntry
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// AddProduct appends a product entry. The id must resolve in the catalog;
// an unresolvable id is an error, never a silently dropped entry.
func (d *Draft) AddProduct(cache *catalog.Cache, productID int) error {
	if productID <= 0 {
		return model.ErrNoSelection
	}
	p, ok := cache.ProductByID(productID)
	if !ok {
		return fmt.Errorf("%w: id %d", model.ErrProductNotFound, productID)
	}
	d.entries = append(d.entries, model.RoutineEntry{
		ItemType:  model.EntryProduct,
		ProductID: productID,
		Label:     p.DisplayLabel(),
	})
	return nil
}

// AddCustomIngredients appends a free-text ingredient group. The raw text is
// split on commas, tokens are trimmed and empty tokens dropped.
func (d *Draft) AddCustomIngredients(raw string) error {
	var names []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			names = append(names, tok)
		}
	}
	if len(names) == 0 {
		return model.ErrNoIngredients
	}
	d.entries = append(d.entries, model.RoutineEntry{
		ItemType:        model.EntryCustom,
		IngredientNames: names,
		Label:           "Custom: " + strings.Join(names, ", "),
	})
	return nil
}

// RemoveAt drops the entry at index i. Out-of-range indexes are ignored;
// the UI cannot produce them.
func (d *Draft) RemoveAt(i int) {
	if i < 0 || i >= len(d.entries) {
		return
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
}

// Clear empties the draft. Callers owning rendered analysis results must
// drop them too; stale results for a cleared routine are misleading.
func (d *Draft) Clear() {
	d.entries = nil
}

// Entries returns a copy of the draft in insertion order.
func (d *Draft) Entries() []model.RoutineEntry {
	out := make([]model.RoutineEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries.
func (d *Draft) Len() int {
	return len(d.entries)
}

// HasUnsaved reports whether the draft holds unsaved content.
func (d *Draft) HasUnsaved() bool {
	return len(d.entries) > 0
}

// ProductIDs returns the ids of product entries in order; custom ingredient
// groups have no persistable id and are skipped.
func (d *Draft) ProductIDs() []int {
	var ids []int
	for _, e := range d.entries {
		if e.ItemType == model.EntryProduct {
			ids = append(ids, e.ProductID)
		}
	}
	return ids
}

// AnalysisRequest builds the ad-hoc analysis payload for the draft.
func (d *Draft) AnalysisRequest(name, timeOfDay string) model.AnalysisRequest {
	return model.AnalysisRequest{
		Name:      name,
		Items:     d.Entries(),
		TimeOfDay: timeOfDay,
	}
}
