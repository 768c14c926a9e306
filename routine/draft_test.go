package routine

import (
	"context"
	"errors"
	"testing"

	"github.com/Klaijan/rootin/catalog"
	"github.com/Klaijan/rootin/model"
)

type staticGateway struct {
	products []model.Product
}

func (g *staticGateway) Products(context.Context) ([]model.Product, error) {
	return g.products, nil
}

func (g *staticGateway) StepNames(context.Context) (model.StepNameMap, error) {
	return model.StepNameMap{999: "Additional Care"}, nil
}

func (g *staticGateway) Treatments(context.Context) ([]model.Treatment, error) {
	return nil, nil
}

func testCache(t *testing.T, products ...model.Product) *catalog.Cache {
	t.Helper()
	c := catalog.New()
	if err := c.Load(context.Background(), &staticGateway{products: products}); err != nil {
		t.Fatalf("load cache: %v", err)
	}
	return c
}

func TestDraftAddProduct(t *testing.T) {
	cache := testCache(t, model.Product{ProductID: 5, BrandName: "Kiehl's", ProductName: "Micro-Dose Retinol Serum"})
	d := NewDraft()

	if err := d.AddProduct(cache, 5); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", d.Len())
	}
	e := d.Entries()[0]
	if e.ItemType != model.EntryProduct {
		t.Errorf("item type = %q, want product", e.ItemType)
	}
	if e.Label != "Kiehl's - Micro-Dose Retinol Serum" {
		t.Errorf("label = %q, want brand - product", e.Label)
	}
}

func TestDraftAddProductNoSelection(t *testing.T) {
	d := NewDraft()
	if err := d.AddProduct(testCache(t), 0); !errors.Is(err, model.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if d.HasUnsaved() {
		t.Error("failed add must not mutate the draft")
	}
}

func TestDraftAddProductUnknownID(t *testing.T) {
	cache := testCache(t, model.Product{ProductID: 1, BrandName: "A", ProductName: "B"})
	d := NewDraft()
	if err := d.AddProduct(cache, 42); !errors.Is(err, model.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDraftAddCustomIngredientsDropsEmptyTokens(t *testing.T) {
	d := NewDraft()
	if err := d.AddCustomIngredients("Niacinamide, , Zinc"); err != nil {
		t.Fatalf("AddCustomIngredients: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", d.Len())
	}
	e := d.Entries()[0]
	if len(e.IngredientNames) != 2 || e.IngredientNames[0] != "Niacinamide" || e.IngredientNames[1] != "Zinc" {
		t.Errorf("ingredient names = %v, want [Niacinamide Zinc]", e.IngredientNames)
	}
	if e.Label != "Custom: Niacinamide, Zinc" {
		t.Errorf("label = %q", e.Label)
	}
}

func TestDraftAddCustomIngredientsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", ",,,", " , , "} {
		d := NewDraft()
		if err := d.AddCustomIngredients(raw); !errors.Is(err, model.ErrNoIngredients) {
			t.Errorf("AddCustomIngredients(%q): expected ErrNoIngredients, got %v", raw, err)
		}
	}
}

func TestDraftRemoveAt(t *testing.T) {
	d := NewDraft()
	_ = d.AddCustomIngredients("A")
	_ = d.AddCustomIngredients("B")
	_ = d.AddCustomIngredients("C")

	d.RemoveAt(1)
	entries := d.Entries()
	if len(entries) != 2 || entries[0].Label != "Custom: A" || entries[1].Label != "Custom: C" {
		t.Errorf("after RemoveAt(1): %v", entries)
	}

	// Out-of-range removals are silent no-ops.
	d.RemoveAt(-1)
	d.RemoveAt(99)
	if d.Len() != 2 {
		t.Errorf("out-of-range RemoveAt must not mutate; len = %d", d.Len())
	}
}

func TestDraftClear(t *testing.T) {
	cache := testCache(t, model.Product{ProductID: 1, BrandName: "A", ProductName: "B"})
	d := NewDraft()
	_ = d.AddProduct(cache, 1)
	_ = d.AddCustomIngredients("Retinol")

	d.Clear()
	if d.HasUnsaved() || d.Len() != 0 {
		t.Error("Clear must empty the draft")
	}
}

func TestDraftProductIDsSkipsCustomEntries(t *testing.T) {
	cache := testCache(t,
		model.Product{ProductID: 1, BrandName: "A", ProductName: "B"},
		model.Product{ProductID: 2, BrandName: "C", ProductName: "D"},
	)
	d := NewDraft()
	_ = d.AddProduct(cache, 1)
	_ = d.AddCustomIngredients("Retinol")
	_ = d.AddProduct(cache, 2)

	ids := d.ProductIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("ProductIDs = %v, want [1 2]", ids)
	}
}

func TestDraftAnalysisRequest(t *testing.T) {
	d := NewDraft()
	_ = d.AddCustomIngredients("Retinol, Ceramides")

	req := d.AnalysisRequest("My Routine", "morning")
	if req.Name != "My Routine" || req.TimeOfDay != "morning" {
		t.Errorf("request header = %+v", req)
	}
	if len(req.Items) != 1 {
		t.Fatalf("expected draft entries in request, got %d", len(req.Items))
	}
}
