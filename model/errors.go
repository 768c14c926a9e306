package model

import "errors"

var (
	// ErrNoSelection is returned when an operation requires a selected
	// product, routine or treatment and none is selected.
	ErrNoSelection = errors.New("nothing selected")

	// ErrProductNotFound is returned when a product id does not resolve in
	// the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrRoutineNotFound is returned when a routine id is not known.
	ErrRoutineNotFound = errors.New("routine not found")

	// ErrNoIngredients is returned when custom ingredient text contains no
	// usable tokens.
	ErrNoIngredients = errors.New("no ingredient names given")

	// ErrEmptyName is returned when saving a routine without a name.
	ErrEmptyName = errors.New("routine name is empty")

	// ErrNoProducts is returned when saving a draft that references no
	// catalog products; custom-only drafts cannot be persisted.
	ErrNoProducts = errors.New("routine has no products")

	// ErrEmptyDraft is returned when analysis is requested on an empty draft.
	ErrEmptyDraft = errors.New("routine is empty")

	// ErrEmptyRoutine is returned by step grouping when a saved routine has
	// no items, so callers can tell an empty routine from no groups.
	ErrEmptyRoutine = errors.New("no products found in routine")
)
