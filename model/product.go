package model

// Product is a catalog product as served by the backend. Products are
// immutable for the session once fetched.
type Product struct {
	ProductID       int      `json:"product_id"`
	BrandName       string   `json:"brand_name"`
	ProductName     string   `json:"product_name"`
	ProductType     string   `json:"product_type,omitempty"`
	ProductTexture  string   `json:"product_texture,omitempty"`
	TargetArea      string   `json:"target_area,omitempty"`
	IngredientIDs   []int    `json:"ingredient_ids,omitempty"`
	InciIngredients []string `json:"inci_ingredients"`
}

// DisplayLabel is the label shown for a product in routine lists.
func (p Product) DisplayLabel() string {
	return p.BrandName + " - " + p.ProductName
}

// KeyIngredients returns up to n leading INCI ingredients for preview,
// reporting whether the list was truncated.
func (p Product) KeyIngredients(n int) ([]string, bool) {
	if len(p.InciIngredients) <= n {
		return p.InciIngredients, false
	}
	return p.InciIngredients[:n], true
}
