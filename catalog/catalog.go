// Package catalog holds the session-immutable reference data: the product
// list, the step-name map and the treatment list. When the backend is down
// it serves built-in fallbacks so the rest of the app never observes an
// empty catalog — availability over accuracy.
package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/Klaijan/rootin/model"
)

// Gateway is the subset of the api client the cache needs.
type Gateway interface {
	Products(ctx context.Context) ([]model.Product, error)
	StepNames(ctx context.Context) (model.StepNameMap, error)
	Treatments(ctx context.Context) ([]model.Treatment, error)
}

// Cache is loaded once at startup and read for the rest of the session.
type Cache struct {
	mu         sync.RWMutex
	products   []model.Product
	byID       map[int]model.Product
	stepNames  model.StepNameMap
	treatments []model.Treatment
	degraded   bool
}

// New returns a cache pre-seeded with the built-in fallbacks. Load replaces
// them with live data when the backend answers.
func New() *Cache {
	c := &Cache{}
	c.setProducts(fallbackProducts)
	c.stepNames = fallbackStepNames
	c.treatments = fallbackTreatments
	c.degraded = true
	return c
}

// Load fetches the catalog, step names and treatments. Each fetch falls back
// independently; Load only errors on a total failure so callers can surface
// a connectivity warning without aborting startup.
func (c *Cache) Load(ctx context.Context, gw Gateway) error {
	var firstErr error

	products, err := gw.Products(ctx)
	if err != nil {
		log.Printf("rootin: product catalog unavailable, using samples: %v", err)
		firstErr = err
	}
	stepNames, err := gw.StepNames(ctx)
	if err != nil {
		log.Printf("rootin: step names unavailable, using defaults: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	treatments, err := gw.Treatments(ctx)
	if err != nil {
		log.Printf("rootin: treatment list unavailable, using defaults: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(products) > 0 {
		c.setProducts(products)
	}
	if len(stepNames) > 0 {
		// The sentinel bucket must always resolve, even against a server
		// that omits it.
		if _, ok := stepNames[model.AdditionalCareStep]; !ok {
			stepNames[model.AdditionalCareStep] = fallbackStepNames[model.AdditionalCareStep]
		}
		c.stepNames = stepNames
	}
	if len(treatments) > 0 {
		c.treatments = treatments
	}
	c.degraded = firstErr != nil
	return firstErr
}

func (c *Cache) setProducts(products []model.Product) {
	c.products = products
	c.byID = make(map[int]model.Product, len(products))
	for _, p := range products {
		c.byID[p.ProductID] = p
	}
}

// Products returns the catalog in server order.
func (c *Cache) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// ProductByID resolves a product id.
func (c *Cache) ProductByID(id int) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

// StepName resolves a step number, defaulting to the sentinel bucket name.
func (c *Cache) StepName(step int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stepNames.Name(step)
}

// Treatments returns the treatment picker list.
func (c *Cache) Treatments() []model.Treatment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.treatments
}

// Degraded reports whether any part of the catalog is running on fallbacks.
func (c *Cache) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}
