package routine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Klaijan/rootin/model"
)

// Gateway is the subset of the api client the library needs. Tests supply
// fakes.
type Gateway interface {
	ListRoutines(ctx context.Context) ([]model.SavedRoutine, error)
	GetRoutine(ctx context.Context, id string) (*model.SavedRoutine, error)
	CreateRoutine(ctx context.Context, req model.CreateRoutineRequest) (*model.SavedRoutine, error)
	DeleteRoutine(ctx context.Context, id string) error
}

// Library is the set of previously saved routines and the source of truth
// for selection lists. It is fetched lazily and mutated only through save
// and delete. Load, Save and Delete run off the event loop (they block on
// the network), so access is guarded the same way the catalog cache is.
type Library struct {
	gw Gateway

	mu       sync.RWMutex
	routines []model.SavedRoutine
}

// NewLibrary returns an empty library backed by gw.
func NewLibrary(gw Gateway) *Library {
	return &Library{gw: gw}
}

// Load fetches the saved routines. On failure the library stays empty and
// the error is returned; the app remains usable for ad-hoc analysis.
func (l *Library) Load(ctx context.Context) error {
	routines, err := l.gw.ListRoutines(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.routines = nil
		return err
	}
	l.routines = routines
	return nil
}

// Routines returns a copy of the saved routines in server order.
func (l *Library) Routines() []model.SavedRoutine {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.SavedRoutine, len(l.routines))
	copy(out, l.routines)
	return out
}

// Len returns the number of saved routines.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.routines)
}

// ByID finds a routine summary locally.
func (l *Library) ByID(id string) (model.SavedRoutine, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.routines {
		if r.RoutineID == id {
			return r, true
		}
	}
	return model.SavedRoutine{}, false
}

// Save validates and persists a routine built from product ids. Validation
// failures abort before any network call: the name must be non-blank and
// the id list non-empty (custom-only drafts cannot be saved — a backend
// contract constraint, not a client nicety). On success the server's copy
// is appended locally.
func (l *Library) Save(ctx context.Context, name, description string, productIDs []int, timeOfDay, userID string) (*model.SavedRoutine, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrEmptyName
	}
	if len(productIDs) == 0 {
		return nil, model.ErrNoProducts
	}
	saved, err := l.gw.CreateRoutine(ctx, model.CreateRoutineRequest{
		Name:        strings.TrimSpace(name),
		Description: description,
		ProductIDs:  productIDs,
		TimeOfDay:   timeOfDay,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.routines = append(l.routines, *saved)
	l.mu.Unlock()
	return saved, nil
}

// Delete removes a routine. An id not present locally is reported as not
// found without touching the backend; on a backend failure local state is
// left untouched.
func (l *Library) Delete(ctx context.Context, id string) error {
	if _, ok := l.ByID(id); !ok {
		return fmt.Errorf("%w: %s", model.ErrRoutineNotFound, id)
	}
	if err := l.gw.DeleteRoutine(ctx, id); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := make([]model.SavedRoutine, 0, len(l.routines))
	for _, r := range l.routines {
		if r.RoutineID != id {
			kept = append(kept, r)
		}
	}
	l.routines = kept
	return nil
}

// Get fetches the full routine fresh from the server; summaries held
// locally do not carry resolved items.
func (l *Library) Get(ctx context.Context, id string) (*model.SavedRoutine, error) {
	return l.gw.GetRoutine(ctx, id)
}
